// Package synthgraph builds small, reproducible weighted directed graphs
// for the benchmark CLI's -synthetic self-check mode.
// Generation is seeded through golang.org/x/exp/rand's Rand rather than
// math/rand, so a fixed seed reproduces a byte-identical graph across runs
// and hosts, matching the deterministic-PRNG convention the wider
// graph-toolkit ecosystem uses for reproducible synthetic inputs.
package synthgraph

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/rand"

	"github.com/kspdiv/kspdiv/core"
)

// Options configures Generate.
type Options struct {
	Seed uint64 // PRNG seed; same seed + same Options always produces the same graph.

	Vertices int // number of vertices, labeled "0".."Vertices-1"
	EdgesOut int // outgoing edges attempted per vertex (best effort; duplicates are skipped)

	MinWeight int64 // inclusive lower bound on edge weight
	MaxWeight int64 // inclusive upper bound on edge weight
}

// DefaultOptions returns a small, densely-connected configuration suitable
// for exercising all four kspdiv engines without a long-running test.
func DefaultOptions(seed uint64) Options {
	return Options{
		Seed:      seed,
		Vertices:  12,
		EdgesOut:  3,
		MinWeight: 1,
		MaxWeight: 10,
	}
}

// Generate lays out a random sparse topology over a fresh *core.Graph:
// every vertex gets up to EdgesOut outgoing edges to distinct, randomly
// chosen other vertices, each with a weight uniformly drawn from
// [MinWeight, MaxWeight]. The result is always weighted and directed.
func Generate(opts Options) (*core.Graph, error) {
	if opts.Vertices < 2 {
		return nil, fmt.Errorf("synthgraph: Vertices must be >= 2, got %d", opts.Vertices)
	}
	if opts.MaxWeight < opts.MinWeight {
		return nil, fmt.Errorf("synthgraph: MaxWeight (%d) < MinWeight (%d)", opts.MaxWeight, opts.MinWeight)
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	rng := rand.New(rand.NewSource(opts.Seed))

	ids := make([]string, opts.Vertices)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
		if err := g.AddVertex(ids[i]); err != nil {
			return nil, fmt.Errorf("synthgraph: %w", err)
		}
	}

	spread := opts.MaxWeight - opts.MinWeight + 1
	for _, u := range ids {
		attempted := make(map[string]bool, opts.EdgesOut)
		for attempts := 0; len(attempted) < opts.EdgesOut && attempts < opts.EdgesOut*4; attempts++ {
			v := ids[rng.Intn(len(ids))]
			if v == u || attempted[v] {
				continue
			}
			attempted[v] = true
			weight := opts.MinWeight + int64(rng.Intn(int(spread)))
			if _, err := g.AddEdge(u, v, weight); err != nil {
				return nil, fmt.Errorf("synthgraph: add edge %s->%s: %w", u, v, err)
			}
		}
	}
	return g, nil
}
