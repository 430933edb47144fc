package kspdiv

import (
	"container/heap"
	"math"

	"github.com/kspdiv/kspdiv/core"
)

// iterBoundMaxIterations bounds the main loop: past this many subspace
// pops without reaching k results, FindPathsIterBound gives up and reports
// Exhausted instead of looping (in principle) forever on a pathological
// graph/k combination.
const iterBoundMaxIterations = 10000

// iterBoundAlpha grows each probed length bound beyond the best known
// candidate, trading a slightly looser bound for fewer probe rounds.
const iterBoundAlpha = 1.1

// IterBoundResult is FindPathsIterBound's return value: the paths found so
// far, plus whether the iteration cap was hit before k of them were found.
// Exhausted is a diagnostic, not an error — a caller that only wants
// k-or-fewer paths can ignore it via Engine.FindPaths.
type IterBoundResult struct {
	Paths     []*Path
	Exhausted bool
}

// IterBoundEngine finds the top-k shortest src->dest paths via iterative
// subspace decomposition, with no diversity filtering at all. tau is
// accepted only so New can construct it uniformly with the other three
// engines; IterBoundEngine never uses it. Construct one through
// New(IterBound, g, tau), or call newIterBoundEngine directly in tests.
type IterBoundEngine struct {
	graph *core.Graph
	tau   float64

	explored int64
}

func newIterBoundEngine(g *core.Graph, tau float64) *IterBoundEngine {
	return &IterBoundEngine{graph: g, tau: tau}
}

// PathsExplored implements Engine.
func (e *IterBoundEngine) PathsExplored() int64 { return e.explored }

// FindPaths implements Engine, discarding the Exhausted diagnostic. Use
// FindPathsIterBound directly to observe it.
func (e *IterBoundEngine) FindPaths(src, dest string, k int) ([]*Path, error) {
	res, err := e.FindPathsIterBound(src, dest, k)
	if err != nil {
		return nil, err
	}
	return res.Paths, nil
}

// subspace is one node of the decomposition tree: a fixed route prefix,
// plus the set of edges forbidden as its first step beyond that prefix.
// computed holds the cheapest completion found for this subspace so far,
// or nil if only a lower bound (prefix.LB) is known.
type subspace struct {
	prefix   *Path
	excluded map[edgeKey]bool
	computed *Path
}

type subspaceItem struct {
	sub *subspace
	key int64
	seq int64
}

type subspaceHeap []*subspaceItem

func (h subspaceHeap) Len() int { return len(h) }
func (h subspaceHeap) Less(i, j int) bool {
	if h[i].key != h[j].key {
		return h[i].key < h[j].key
	}
	return h[i].seq < h[j].seq
}
func (h subspaceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *subspaceHeap) Push(x interface{}) { *h = append(*h, x.(*subspaceItem)) }
func (h *subspaceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// FindPathsIterBound runs the iterative-bounding main loop: repeatedly pop
// the subspace with the smallest known bound, either accept its computed
// completion as the next result and split it into children, or spend one
// bounded A* probe (TestLB) tightening its bound.
func (e *IterBoundEngine) FindPathsIterBound(src, dest string, k int) (*IterBoundResult, error) {
	if err := validateQuery(e.graph, src, dest, k); err != nil {
		return nil, err
	}
	e.explored = 0
	if src == dest {
		return &IterBoundResult{Paths: []*Path{newTrivialPath(src)}}, nil
	}

	idx, err := buildNeighborIndex(e.graph)
	if err != nil {
		return nil, err
	}
	revIdx := reverseOf(idx)
	gs := newGraphState(revIdx, e.graph.Vertices(), dest)

	p0, err := seedPath(e.graph, idx, src, dest)
	if err != nil {
		return nil, err
	}
	if p0 == nil {
		return &IterBoundResult{Paths: []*Path{}}, nil
	}

	root := &subspace{
		prefix:   newTrivialPath(src),
		excluded: make(map[edgeKey]bool),
		computed: p0,
	}

	var pq subspaceHeap
	var seq int64
	nextSeq := func() int64 { seq++; return seq }
	heap.Push(&pq, &subspaceItem{sub: root, key: p0.Length, seq: nextSeq()})

	var result []*Path
	nextPathID := 1
	iterations := 0
	exhausted := false

	for len(result) < k && pq.Len() > 0 {
		if iterations >= iterBoundMaxIterations {
			exhausted = true
			break
		}
		iterations++
		item := heap.Pop(&pq).(*subspaceItem)
		sub := item.sub
		if item.key >= infinity {
			continue
		}

		if sub.computed != nil {
			path := sub.computed
			result = append(result, path)
			pathID := nextPathID
			nextPathID++

			for _, child := range divideSubspace(sub, path, pathID, idx) {
				childLB := computeSubspaceLB(child, idx, gs)
				if childLB >= infinity {
					continue
				}
				if childLB < path.Length {
					childLB = path.Length
				}
				child.prefix.LB = childLB
				heap.Push(&pq, &subspaceItem{sub: child, key: childLB, seq: nextSeq()})
			}
			continue
		}

		topLB := int64(infinity)
		if pq.Len() > 0 {
			topLB = pq[0].key
		}
		candidate := item.key
		if topLB > candidate {
			candidate = topLB
		}
		lengthBound := int64(infinity)
		if candidate < infinity {
			lengthBound = int64(math.Ceil(iterBoundAlpha * float64(candidate)))
		}

		found := e.testLowerBound(sub, gs, idx, lengthBound, dest)
		if found != nil {
			sub.computed = found
			heap.Push(&pq, &subspaceItem{sub: sub, key: found.Length, seq: nextSeq()})
		} else {
			sub.prefix.LB = lengthBound
			heap.Push(&pq, &subspaceItem{sub: sub, key: lengthBound, seq: nextSeq()})
		}
	}

	return &IterBoundResult{Paths: result, Exhausted: exhausted}, nil
}

// computeSubspaceLB (CompLB) is the cheap, non-exhaustive lower bound for a
// subspace: the best single-hop extension off its tail whose neighbour can
// still reach dest, estimated via the shared reverse-SPT.
func computeSubspaceLB(sub *subspace, idx neighborIndex, gs *graphState) int64 {
	u := sub.prefix.Tail()
	if u == "" {
		return infinity
	}
	best := int64(infinity)
	for n, w := range idx[u] {
		if containsVertex(sub.prefix.Route, n) || sub.excluded[edgeKey{u, n}] {
			continue
		}
		d := gs.ensureSettled(n)
		if d >= infinity {
			continue
		}
		if estimate := sub.prefix.Length + w + d; estimate < best {
			best = estimate
		}
	}
	return best
}

// testLowerBound (TestLB) runs a bound-limited Dijkstra/A* from the
// subspace's tail: every frontier entry whose f = g + reverse-SPT-distance
// exceeds bound is pruned, so this either finds the true cheapest
// completion within the bound or proves none exists that cheap.
func (e *IterBoundEngine) testLowerBound(sub *subspace, gs *graphState, idx neighborIndex, bound int64, dest string) *Path {
	u := sub.prefix.Tail()
	prefixRoute := sub.prefix.Route
	prefixLength := sub.prefix.Length

	dist := map[string]int64{u: prefixLength}
	parent := make(map[string]string, len(prefixRoute))
	for i := 0; i < len(prefixRoute)-1; i++ {
		parent[prefixRoute[i+1]] = prefixRoute[i]
	}

	var pq estHeap
	var seq int64
	d0 := gs.ensureSettled(u)
	heap.Push(&pq, &estItem{est: prefixLength + d0, actual: prefixLength, vertex: u, seq: seq})
	visited := make(map[string]bool)

	for pq.Len() > 0 {
		it := heap.Pop(&pq).(*estItem)
		if visited[it.vertex] {
			continue
		}
		visited[it.vertex] = true
		e.explored++

		if it.vertex == dest {
			routeRev := []string{dest}
			cur := dest
			for cur != u {
				p, ok := parent[cur]
				if !ok {
					break
				}
				routeRev = append(routeRev, p)
				cur = p
			}
			reverseStrings(routeRev)
			full := append(append([]string{}, prefixRoute[:len(prefixRoute)-1]...), routeRev...)
			edges := make(map[edgeKey]int64, len(full)-1)
			var length int64
			for i := 0; i < len(full)-1; i++ {
				w := idx[full[i]][full[i+1]]
				edges[edgeKey{full[i], full[i+1]}] = w
				length += w
			}
			return &Path{
				Route:               full,
				Edges:               edges,
				Length:              length,
				LB:                  length,
				Active:              true,
				cachedIntersections: make(map[*Path]int64),
			}
		}

		for n, w := range idx[it.vertex] {
			if containsVertex(prefixRoute, n) || sub.excluded[edgeKey{it.vertex, n}] {
				continue
			}
			nd := it.actual + w
			dn := gs.ensureSettled(n)
			if dn >= infinity {
				continue
			}
			estTo := nd + dn
			if estTo > bound {
				continue
			}
			if cur, ok := dist[n]; !ok || nd < cur {
				dist[n] = nd
				parent[n] = it.vertex
				seq++
				heap.Push(&pq, &estItem{est: estTo, actual: nd, vertex: n, seq: seq})
			}
		}
	}
	return nil
}

// divideSubspace (DivideSubspace) splits a subspace whose cheapest
// completion is path into children covering every other path of the
// subspace: for each vertex of path from the subspace's own tail onward,
// and each neighbour of it other than path's own next hop (and, at the
// tail, other than the subspace's forbidden edges), one child fixes the
// route up through that vertex followed by that neighbour, forcing it to
// explore a genuinely different continuation.
func divideSubspace(sub *subspace, path *Path, pathID int, idx neighborIndex) []*subspace {
	var children []*subspace
	route := path.Route
	start := len(sub.prefix.Route) - 1
	for i := start; i < len(route)-1; i++ {
		vertex := route[i]
		nextVertex := route[i+1]

		edges := make(map[edgeKey]int64, i)
		var length int64
		for j := 0; j < i; j++ {
			ek := edgeKey{route[j], route[j+1]}
			w := path.Edges[ek]
			edges[ek] = w
			length += w
		}

		for n, w := range idx[vertex] {
			if n == nextVertex || containsVertex(route[:i+1], n) {
				continue
			}
			if i == start && sub.excluded[edgeKey{vertex, n}] {
				continue
			}
			childRoute := append(append([]string{}, route[:i+1]...), n)
			childEdges := make(map[edgeKey]int64, len(edges)+1)
			for k, v := range edges {
				childEdges[k] = v
			}
			childEdges[edgeKey{vertex, n}] = w

			childPrefix := &Path{
				Route:               childRoute,
				Edges:               childEdges,
				Length:              length + w,
				Class:               &pathClass{PathID: pathID, Vertex: vertex},
				Active:              true,
				cachedIntersections: make(map[*Path]int64),
			}
			children = append(children, &subspace{
				prefix:   childPrefix,
				excluded: map[edgeKey]bool{{vertex, nextVertex}: true},
			})
		}
	}
	return children
}

// estItem is a frontier entry in testLowerBound's search: est is f = g+h
// used for ordering, actual is g (the true path length so far).
type estItem struct {
	est, actual int64
	vertex      string
	seq         int64
}

type estHeap []*estItem

func (h estHeap) Len() int { return len(h) }
func (h estHeap) Less(i, j int) bool {
	if h[i].est != h[j].est {
		return h[i].est < h[j].est
	}
	return h[i].seq < h[j].seq
}
func (h estHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *estHeap) Push(x interface{}) { *h = append(*h, x.(*estItem)) }
func (h *estHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
