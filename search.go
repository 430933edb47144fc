package kspdiv

import (
	"container/heap"

	"github.com/kspdiv/kspdiv/core"
)

// kspdCore holds the query-independent configuration shared by the KSPD and
// KSPD⁻ engines. The two differ only in which of these flags they set: KSPD
// enables both LB2 pruning and class-adjustment propagation, KSPD⁻ (the
// ablation baseline) enables neither.
type kspdCore struct {
	graph              *core.Graph
	tau                float64
	useLB2             bool
	useClassAdjustment bool
	explored           int64
}

// kspdSearch holds all per-query mutable state for one FindPaths call.
type kspdSearch struct {
	core *kspdCore
	dest string

	idx neighborIndex
	gs  *graphState

	pm         *prefixMap
	lqs        map[string]*localQueue
	gq         globalQueue
	registered map[*localQueue]bool
	covered    map[pathClass]map[string]bool

	result []*Path
	seq    int64
}

func (s *kspdSearch) nextSeq() int64 {
	s.seq++
	return s.seq
}

func (s *kspdSearch) getLQ(v string) *localQueue {
	lq, ok := s.lqs[v]
	if !ok {
		lq = newLocalQueue(v)
		s.lqs[v] = lq
	}
	return lq
}

// register makes sure lq's position in the global queue reflects its
// current front. A queue not yet registered is pushed in; a queue already
// registered whose front just changed (a fresh push landed ahead of, or
// behind, its previous front) is repositioned in place with heap.Fix rather
// than left stale until some unrelated mutation happens to rebuild the
// whole heap.
func (s *kspdSearch) register(lq *localQueue) {
	if lq.front() == nil {
		return
	}
	if !s.registered[lq] {
		heap.Push(&s.gq, lq)
		s.registered[lq] = true
		return
	}
	if lq.gqIndex >= 0 {
		heap.Fix(&s.gq, lq.gqIndex)
	}
}

// computeLB returns LB1, or max(LB1,LB2) when the engine uses LB2.
func (s *kspdSearch) computeLB(p *Path) int64 {
	lb1 := p.LB1(s.gs)
	if !s.core.useLB2 {
		return lb1
	}
	lb2 := p.LB2(s.core.tau, s.result)
	if lb2 > lb1 {
		return lb2
	}
	return lb1
}

// generateInitialPaths builds the seed-deviation candidates: for every
// non-terminal vertex on the seed path and every outgoing neighbour not
// already on its prefix and not the seed's own next hop, a one-edge
// deviation is queued with class (1, u).
func (s *kspdSearch) generateInitialPaths(seed *Path) {
	route := seed.Route
	for i := 0; i < len(route)-1; i++ {
		u := route[i]
		nextOnSeed := route[i+1]
		for w, weight := range s.idx[u] {
			if w == nextOnSeed || containsVertex(route[:i+1], w) {
				continue
			}
			child := prefixPath(seed, i)
			child.appendEdge(u, w, weight)
			child.Class = &pathClass{PathID: 1, Vertex: u}
			child.seq = s.nextSeq()
			child.LB = s.computeLB(child)

			lq := s.getLQ(w)
			lq.push(child)
			s.pm.insert(child)
			s.register(lq)
		}
	}
}

// extendPath performs one step of the deviation-tree search starting at p:
// it fans out every legal sibling deviation from p.Tail() into fresh
// candidates, deactivates same-class siblings at this vertex that p
// already dominates by length, then advances p itself one hop along the
// reverse-SPT tree edge toward dest. Returns false if p is a dead end (no
// tree edge out of its tail, or the tree edge would revisit its own
// route), in which case p has already been removed from the prefix map.
func (s *kspdSearch) extendPath(p *Path) bool {
	tail := p.Tail()

	if lq, ok := s.lqs[tail]; ok {
		for _, sib := range lq.items {
			if sib == p || sib.Class == nil || p.Class == nil {
				continue
			}
			if *sib.Class == *p.Class && sib.Length >= p.Length {
				sib.Active = false
			}
		}
	}

	classKey := pathClass{}
	if p.Class != nil {
		classKey = *p.Class
	}
	if s.covered[classKey] == nil {
		s.covered[classKey] = make(map[string]bool)
	}

	parent := s.gs.parent[tail]
	for w, weight := range s.idx[tail] {
		if containsVertex(p.Route, w) || w == parent {
			continue
		}
		child := p.deepCopy()
		child.appendEdge(tail, w, weight)
		child.seq = s.nextSeq()

		if s.covered[classKey][w] {
			child.Active = false
		} else {
			s.covered[classKey][w] = true
		}
		child.LB = s.computeLB(child)

		lq := s.getLQ(w)
		lq.push(child)
		s.pm.insert(child)
		s.register(lq)
	}

	if parent == "" || containsVertex(p.Route, parent) {
		s.pm.remove(p)
		return false
	}
	pw := s.idx[tail][parent]
	p.appendEdge(tail, parent, pw)
	return true
}

// findNextPath pops candidates until one reaches dest and survives the
// engine's admission checks, or the global queue is exhausted (nil).
func (s *kspdSearch) findNextPath() *Path {
	for s.gq.Len() > 0 {
		s.core.explored++
		lq := heap.Pop(&s.gq).(*localQueue)
		s.registered[lq] = false

		current := s.popActive(lq)
		if lq.front() != nil {
			heap.Push(&s.gq, lq)
			s.registered[lq] = true
		}
		if current == nil {
			continue
		}

		for current.Tail() != s.dest {
			if !s.extendPath(current) {
				break
			}
		}
		if current.Tail() != s.dest {
			continue
		}

		if s.core.useLB2 {
			lb2 := current.LB2(s.core.tau, s.result)
			if current.Length < lb2 {
				s.pm.remove(current)
				continue
			}
		}

		if current.Class != nil {
			if set, ok := s.covered[*current.Class]; ok {
				for v := range set {
					delete(set, v)
				}
			}
		}
		s.pm.remove(current)

		if s.core.useClassAdjustment {
			s.adjustClasses(current)
		}
		return current
	}
	return nil
}

// popActive pops entries off lq until it finds an active one (returned) or
// exhausts the queue (nil). Inactive entries popped along the way are
// re-stashed back into lq rather than discarded, since class-adjustment can
// still reactivate them later; they must remain reachable through the same
// local queue for that reactivation to have anywhere to land.
func (s *kspdSearch) popActive(lq *localQueue) *Path {
	var inactive []*Path
	var active *Path
	for len(lq.items) > 0 {
		cand := heap.Pop(&lq.items).(*Path)
		if cand.Active {
			active = cand
			break
		}
		inactive = append(inactive, cand)
	}
	for _, cand := range inactive {
		heap.Push(&lq.items, cand)
	}
	return active
}

// adjustClasses runs class-adjustment after accepting p as the
// (len(result)+1)-th path: it reactivates inactive candidates sharing p's
// class anywhere along p's route, then reclassifies every live descendant
// of each prefix of p under the new path's identity.
func (s *kspdSearch) adjustClasses(p *Path) {
	if p.Class == nil {
		return
	}
	reactivated := false
	for _, v := range p.Route {
		lq, ok := s.lqs[v]
		if !ok {
			continue
		}
		for _, cand := range lq.items {
			if !cand.Active && cand.Class != nil && *cand.Class == *p.Class {
				cand.Active = true
				reactivated = true
			}
		}
	}

	pathID := len(s.result) + 1
	for i, v := range p.Route {
		if i == 0 {
			continue
		}
		prefix := p.Route[:i+1]
		for _, cand := range s.pm.findWithPrefix(prefix) {
			if len(cand.Route) > len(prefix) {
				cls := pathClass{PathID: pathID, Vertex: v}
				cand.Class = &cls
			}
		}
	}

	if reactivated {
		heap.Init(&s.gq)
	}
}

// findPaths runs one KSPD/KSPD⁻ query end to end.
func (c *kspdCore) findPaths(src, dest string, k int) ([]*Path, error) {
	if err := validateQuery(c.graph, src, dest, k); err != nil {
		return nil, err
	}
	c.explored = 0
	if src == dest {
		return []*Path{newTrivialPath(src)}, nil
	}

	idx, err := buildNeighborIndex(c.graph)
	if err != nil {
		return nil, err
	}
	revIdx := reverseOf(idx)
	gs := newGraphState(revIdx, c.graph.Vertices(), dest)

	seed, err := seedPath(c.graph, idx, src, dest)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return []*Path{}, nil
	}

	s := &kspdSearch{
		core:       c,
		dest:       dest,
		idx:        idx,
		gs:         gs,
		pm:         newPrefixMap(),
		lqs:        make(map[string]*localQueue),
		registered: make(map[*localQueue]bool),
		covered:    make(map[pathClass]map[string]bool),
		result:     []*Path{seed},
	}
	s.generateInitialPaths(seed)

	for len(s.result) < k && s.gq.Len() > 0 {
		next := s.findNextPath()
		if next == nil {
			break
		}
		if next.similarityOK(c.tau, s.result) {
			s.result = append(s.result, next)
		}
	}
	return s.result, nil
}
