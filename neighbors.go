package kspdiv

import (
	"fmt"

	"github.com/kspdiv/kspdiv/core"
	"github.com/kspdiv/kspdiv/dijkstra"
)

// neighborIndex is a query-scoped adjacency snapshot: u -> v -> weight.
// Building it once per query, instead of calling core.Graph's locked
// Neighbors repeatedly, also resolves parallel edges between the same pair
// of vertices down to a single (u,v) key holding the lightest of them,
// matching this package's multi-edge-collapsing convention.
type neighborIndex map[string]map[string]int64

func buildNeighborIndex(g *core.Graph) (neighborIndex, error) {
	idx := make(neighborIndex)
	for _, e := range g.Edges() {
		addToIndex(idx, e.From, e.To, e.Weight)
		if !e.Directed && e.From != e.To {
			addToIndex(idx, e.To, e.From, e.Weight)
		}
	}
	return idx, nil
}

func addToIndex(idx neighborIndex, from, to string, weight int64) {
	if idx[from] == nil {
		idx[from] = make(map[string]int64)
	}
	if cur, ok := idx[from][to]; !ok || weight < cur {
		idx[from][to] = weight
	}
}

// reverseOf builds the reversed form of idx: an edge u->v in idx becomes
// v->u in the result.
func reverseOf(idx neighborIndex) neighborIndex {
	rev := make(neighborIndex, len(idx))
	for u, nbrs := range idx {
		for v, w := range nbrs {
			addToIndex(rev, v, u, w)
		}
	}
	return rev
}

// seedPath computes the shortest src->dest path (the KSPD family's P1) by
// reusing the package's own single-shot Dijkstra, then reconstructs it as
// a *Path using idx for edge weights. Returns (nil, nil) if dest is
// unreachable from src.
func seedPath(g *core.Graph, idx neighborIndex, src, dest string) (*Path, error) {
	if src == dest {
		return newTrivialPath(src), nil
	}

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(src), dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("kspdiv: seed dijkstra: %w", err)
	}
	d, ok := dist[dest]
	if !ok || d >= infinity {
		return nil, nil
	}

	route := []string{dest}
	cur := dest
	for cur != src {
		p, ok := prev[cur]
		if !ok || p == "" {
			return nil, nil
		}
		route = append(route, p)
		cur = p
	}
	reverseStrings(route)

	edges := make(map[edgeKey]int64, len(route)-1)
	var length int64
	for i := 0; i < len(route)-1; i++ {
		w := idx[route[i]][route[i+1]]
		edges[edgeKey{route[i], route[i+1]}] = w
		length += w
	}

	return &Path{
		Route:               route,
		Edges:               edges,
		Length:              length,
		LB:                  length,
		Active:              true,
		cachedIntersections: make(map[*Path]int64),
	}, nil
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func routeKey(route []string) string {
	return prefixKey(route)
}
