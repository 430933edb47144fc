package kspdiv

import (
	"fmt"

	"github.com/kspdiv/kspdiv/core"
)

// Algorithm tags one of the four path-finding strategies New can construct.
type Algorithm int

const (
	// KSPD is the full class-indexed branching engine with LB1+LB2 pruning.
	KSPD Algorithm = iota
	// KSPDMinus is KSPD without LB2 pruning and without class-adjustment
	// propagation; the ablation baseline.
	KSPDMinus
	// Yen is classical Yen enumeration with a Jaccard diversity post-filter.
	Yen
	// IterBound is top-k shortest paths via iterative-bounding subspace
	// decomposition; it applies no diversity filtering at all.
	IterBound
)

// String renders the Algorithm as the CLI flag value that selects it.
func (a Algorithm) String() string {
	switch a {
	case KSPD:
		return "kspd"
	case KSPDMinus:
		return "kspd-"
	case Yen:
		return "yen"
	case IterBound:
		return "iterbound"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Engine is the capability contract shared by all four strategies.
//
// FindPaths returns up to k diverse (or, for IterBound, merely short)
// src→dest paths ordered by non-decreasing length. An unreachable
// destination is not an error: FindPaths returns an empty, non-nil slice.
// PathsExplored reports how many candidate paths the most recent FindPaths
// call popped off its internal queues, reset at the start of every call.
type Engine interface {
	FindPaths(src, dest string, k int) ([]*Path, error)
	PathsExplored() int64
}

// New constructs the Engine for the requested Algorithm over g, using tau as
// the diversity similarity threshold (ignored by IterBound, which applies no
// diversity filtering but still validates tau for interface uniformity with
// the other three strategies).
func New(alg Algorithm, g *core.Graph, tau float64) (Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Weighted() {
		return nil, ErrUnweightedGraph
	}
	if !(tau > 0 && tau < 1) {
		return nil, ErrInvalidTau
	}

	switch alg {
	case KSPD:
		return &KSPDEngine{core: &kspdCore{graph: g, tau: tau, useLB2: true, useClassAdjustment: true}}, nil
	case KSPDMinus:
		return &KSPDMinusEngine{core: &kspdCore{graph: g, tau: tau, useLB2: false, useClassAdjustment: false}}, nil
	case Yen:
		return newYenEngine(g, tau), nil
	case IterBound:
		return newIterBoundEngine(g, tau), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
}

// validateQuery applies the input-error checks shared by every engine's
// FindPaths entry point.
func validateQuery(g *core.Graph, src, dest string, k int) error {
	if k < 1 {
		return ErrInvalidK
	}
	if !g.HasVertex(src) || !g.HasVertex(dest) {
		return ErrVertexNotFound
	}
	return nil
}
