package kspdiv

import "errors"

// Sentinel errors for kspdiv engine construction and queries. Check them with
// errors.Is; engine-returned errors may wrap these via fmt.Errorf("%w: ...").
var (
	// ErrNilGraph indicates a nil *core.Graph was passed to New.
	ErrNilGraph = errors.New("kspdiv: graph is nil")

	// ErrUnweightedGraph indicates the supplied graph was not built with
	// core.WithWeighted(); every kspdiv engine needs real edge weights.
	ErrUnweightedGraph = errors.New("kspdiv: graph must be weighted")

	// ErrInvalidTau indicates tau is outside the open interval (0,1).
	ErrInvalidTau = errors.New("kspdiv: tau must be in (0,1)")

	// ErrInvalidK indicates k < 1 was requested.
	ErrInvalidK = errors.New("kspdiv: k must be >= 1")

	// ErrVertexNotFound indicates src or dest is absent from the graph.
	ErrVertexNotFound = errors.New("kspdiv: vertex not found")

	// ErrUnknownAlgorithm indicates New was called with an Algorithm value
	// outside {KSPD, KSPDMinus, Yen, IterBound}.
	ErrUnknownAlgorithm = errors.New("kspdiv: unknown algorithm")
)
