package kspdiv

import (
	"container/heap"

	"github.com/kspdiv/kspdiv/core"
)

// YenEngine finds the top-k shortest diverse paths with classical Yen
// enumeration (spur search with node/edge exclusion) followed by a
// weighted-Jaccard diversity post-filter. Construct one through
// New(Yen, g, tau).
type YenEngine struct {
	graph *core.Graph
	tau   float64

	explored int64
}

func newYenEngine(g *core.Graph, tau float64) *YenEngine {
	return &YenEngine{graph: g, tau: tau}
}

// PathsExplored implements Engine.
func (e *YenEngine) PathsExplored() int64 { return e.explored }

// FindPaths implements Engine.
func (e *YenEngine) FindPaths(src, dest string, k int) ([]*Path, error) {
	if err := validateQuery(e.graph, src, dest, k); err != nil {
		return nil, err
	}
	e.explored = 0
	if src == dest {
		return []*Path{newTrivialPath(src)}, nil
	}

	idx, err := buildNeighborIndex(e.graph)
	if err != nil {
		return nil, err
	}

	p1, err := restrictedDijkstra(idx, src, dest, nil, nil)
	if err != nil {
		return nil, err
	}
	if p1 == nil {
		return []*Path{}, nil
	}

	result := []*Path{p1}
	accepted := []*Path{p1}
	seen := map[string]bool{routeKey(p1.Route): true}

	var candidates yenHeap
	var seq int64
	nextSeq := func() int64 { seq++; return seq }

	generateSpurs := func(base *Path) {
		for i := 0; i < len(base.Route)-1; i++ {
			spurNode := base.Route[i]
			rootRoute := base.Route[:i+1]

			rootEdges := make(map[edgeKey]int64, i)
			var rootLength int64
			for j := 0; j < i; j++ {
				k := edgeKey{rootRoute[j], rootRoute[j+1]}
				w := base.Edges[k]
				rootEdges[k] = w
				rootLength += w
			}

			excludedEdges := make(map[edgeKey]bool)
			for _, p := range accepted {
				if len(p.Route) > i+1 && routesEqualPrefix(p.Route, rootRoute) {
					excludedEdges[edgeKey{p.Route[i], p.Route[i+1]}] = true
				}
			}
			excludedNodes := make(map[string]bool, i)
			for _, v := range rootRoute[:len(rootRoute)-1] {
				excludedNodes[v] = true
			}

			spur, err := restrictedDijkstra(idx, spurNode, dest, excludedNodes, excludedEdges)
			if err != nil || spur == nil {
				continue
			}

			totalRoute := append(append([]string{}, rootRoute[:len(rootRoute)-1]...), spur.Route...)
			key := routeKey(totalRoute)
			if seen[key] {
				continue
			}
			seen[key] = true

			totalEdges := make(map[edgeKey]int64, len(rootEdges)+len(spur.Edges))
			for k, w := range rootEdges {
				totalEdges[k] = w
			}
			for k, w := range spur.Edges {
				totalEdges[k] = w
			}
			total := &Path{
				Route:               totalRoute,
				Edges:               totalEdges,
				Length:              rootLength + spur.Length,
				LB:                  rootLength + spur.Length,
				Active:              true,
				cachedIntersections: make(map[*Path]int64),
			}
			heap.Push(&candidates, &yenItem{path: total, seq: nextSeq()})
		}
	}

	generateSpurs(p1)

	for len(result) < k && candidates.Len() > 0 {
		item := heap.Pop(&candidates).(*yenItem)
		e.explored++
		current := item.path
		accepted = append(accepted, current)
		generateSpurs(current)
		if current.similarityOK(e.tau, result) {
			result = append(result, current)
		}
	}
	return result, nil
}

// routesEqualPrefix reports whether route and prefix agree on their first
// len(prefix) vertices.
func routesEqualPrefix(route, prefix []string) bool {
	if len(route) < len(prefix) {
		return false
	}
	for i := range prefix {
		if route[i] != prefix[i] {
			return false
		}
	}
	return true
}

// yenItem is one candidate sitting in a YenEngine's candidate heap.
type yenItem struct {
	path *Path
	seq  int64
}

type yenHeap []*yenItem

func (h yenHeap) Len() int { return len(h) }
func (h yenHeap) Less(i, j int) bool {
	if h[i].path.Length != h[j].path.Length {
		return h[i].path.Length < h[j].path.Length
	}
	return h[i].seq < h[j].seq
}
func (h yenHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *yenHeap) Push(x interface{}) { *h = append(*h, x.(*yenItem)) }
func (h *yenHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// distItem is one frontier entry in restrictedDijkstra's search.
type distItem struct {
	vertex string
	dist   int64
}

type distHeap []*distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(*distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// restrictedDijkstra runs Dijkstra from src to dest over idx, treating
// excludedNodes and excludedEdges as absent from the graph. It is Yen's
// spur search, and (with nil exclusions) also computes the initial
// shortest path P1.
func restrictedDijkstra(idx neighborIndex, src, dest string, excludedNodes map[string]bool, excludedEdges map[edgeKey]bool) (*Path, error) {
	if src == dest {
		return newTrivialPath(src), nil
	}

	dist := map[string]int64{src: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	var pq distHeap
	heap.Push(&pq, &distItem{vertex: src, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*distItem)
		if visited[item.vertex] || item.dist > dist[item.vertex] {
			continue
		}
		visited[item.vertex] = true
		if item.vertex == dest {
			break
		}
		if excludedNodes[item.vertex] {
			continue
		}
		for n, w := range idx[item.vertex] {
			if excludedNodes[n] || excludedEdges[edgeKey{item.vertex, n}] {
				continue
			}
			nd := item.dist + w
			if cur, ok := dist[n]; !ok || nd < cur {
				dist[n] = nd
				prev[n] = item.vertex
				heap.Push(&pq, &distItem{vertex: n, dist: nd})
			}
		}
	}

	if _, ok := dist[dest]; !ok {
		return nil, nil
	}

	route := []string{dest}
	cur := dest
	for cur != src {
		p, ok := prev[cur]
		if !ok {
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
