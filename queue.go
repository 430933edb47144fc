package kspdiv

import "container/heap"

// pathLess implements the shared ordering: active paths sort before
// inactive ones, then by ascending lower bound, then by insertion order so
// ties never reorder nondeterministically.
func pathLess(a, b *Path) bool {
	aInactive, bInactive := !a.Active, !b.Active
	if aInactive != bInactive {
		return !aInactive
	}
	if a.LB != b.LB {
		return a.LB < b.LB
	}
	return a.seq < b.seq
}

// pathHeap is a container/heap.Interface over *Path ordered by pathLess.
// It backs each per-vertex local queue.
type pathHeap []*Path

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return pathLess(h[i], h[j]) }
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(*Path)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// localQueue (LQ in the design notes) holds every live candidate path whose
// tail is vertex, ordered by pathLess.
type localQueue struct {
	vertex string
	items  pathHeap

	// gqIndex is this queue's current slot in globalQueue, or -1 while it is
	// not registered there. globalQueue's Swap/Push/Pop keep it current so a
	// push that changes this queue's front can heap.Fix its exact position
	// instead of rebuilding the whole outer heap.
	gqIndex int
}

func newLocalQueue(vertex string) *localQueue {
	return &localQueue{vertex: vertex, gqIndex: -1}
}

func (lq *localQueue) push(p *Path) {
	heap.Push(&lq.items, p)
}

// front returns the best-ordered path without popping it, or nil if empty.
func (lq *localQueue) front() *Path {
	if len(lq.items) == 0 {
		return nil
	}
	return lq.items[0]
}

// globalQueue is a heap of *localQueue ordered by each queue's current
// front. Its Less reads live queue state rather than a cached key, so a
// bulk class-adjustment pass can simply call heap.Init to restore the heap
// invariant after mutating many queues' fronts at once. Swap/Push/Pop keep
// each localQueue's gqIndex current so a single queue's front changing can
// instead be corrected cheaply with heap.Fix.
type globalQueue []*localQueue

func (gq globalQueue) Len() int { return len(gq) }
func (gq globalQueue) Less(i, j int) bool {
	fi, fj := gq[i].front(), gq[j].front()
	if fi == nil {
		return false
	}
	if fj == nil {
		return true
	}
	return pathLess(fi, fj)
}
func (gq globalQueue) Swap(i, j int) {
	gq[i], gq[j] = gq[j], gq[i]
	gq[i].gqIndex = i
	gq[j].gqIndex = j
}
func (gq *globalQueue) Push(x interface{}) {
	lq := x.(*localQueue)
	lq.gqIndex = len(*gq)
	*gq = append(*gq, lq)
}
func (gq *globalQueue) Pop() interface{} {
	old := *gq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.gqIndex = -1
	*gq = old[:n-1]
	return item
}
