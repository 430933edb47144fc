package kspdiv

import "container/heap"

// sptItem is one entry in a graphState's frontier: a candidate distance to
// vertex, valid only if it still matches distance[vertex] when popped.
type sptItem struct {
	vertex string
	dist   int64
}

type sptHeap []*sptItem

func (h sptHeap) Len() int            { return len(h) }
func (h sptHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h sptHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sptHeap) Push(x interface{}) { *h = append(*h, x.(*sptItem)) }
func (h *sptHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// graphState is the reverse single-source shortest-path tree rooted at a
// query's destination, built over the reversed adjacency so that distance
// to any settled vertex equals the length of the shortest completion from
// that vertex to the destination in the original graph.
//
// It settles vertices lazily: ensureSettled runs Dijkstra's relaxation loop
// only as far as needed to answer the vertex it was asked about, and never
// revisits an already-settled vertex on a later call. This lets many Path
// lower-bound queries share one monotonically growing tree across a single
// FindPaths call instead of rerunning Dijkstra from scratch each time.
type graphState struct {
	reverse  neighborIndex
	dest     string
	distance map[string]int64
	settled  map[string]bool
	parent   map[string]string
	pq       sptHeap
}

// newGraphState builds a graphState over reverseIdx (the reversed adjacency
// of the query graph), seeded from dest. vertices lists every vertex the
// query graph knows about, so distance lookups for unreached vertices
// return infinity rather than zero-valuing to a wrong answer.
func newGraphState(reverseIdx neighborIndex, vertices []string, dest string) *graphState {
	gs := &graphState{
		reverse:  reverseIdx,
		dest:     dest,
		distance: make(map[string]int64, len(vertices)),
		settled:  make(map[string]bool, len(vertices)),
		parent:   make(map[string]string),
	}
	for _, v := range vertices {
		gs.distance[v] = infinity
	}
	gs.distance[dest] = 0
	heap.Push(&gs.pq, &sptItem{vertex: dest, dist: 0})
	return gs
}

// ensureSettled returns the shortest distance from v to dest, running the
// reverse-SPT relaxation loop forward only as far as necessary. Returns
// infinity if v cannot reach dest.
func (gs *graphState) ensureSettled(v string) int64 {
	if gs.settled[v] {
		return gs.distance[v]
	}
	for gs.pq.Len() > 0 {
		item := heap.Pop(&gs.pq).(*sptItem)
		if gs.settled[item.vertex] || item.dist > gs.distance[item.vertex] {
			continue
		}
		gs.settled[item.vertex] = true
		for neighbor, w := range gs.reverse[item.vertex] {
			if gs.settled[neighbor] {
				continue
			}
			nd := item.dist + w
			if nd < gs.distance[neighbor] {
				gs.distance[neighbor] = nd
				gs.parent[neighbor] = item.vertex
				heap.Push(&gs.pq, &sptItem{vertex: neighbor, dist: nd})
			}
		}
		if item.vertex == v {
			return gs.distance[v]
		}
	}
	return gs.distance[v]
}
