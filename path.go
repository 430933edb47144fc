package kspdiv

import "math"

// infinity stands in for an unreachable distance. It is kept well below
// math.MaxInt64 so that adding a path length to it can never overflow.
const infinity int64 = math.MaxInt64 / 4

// edgeKey identifies a single directed edge by its endpoints. Parallel
// edges between the same pair of vertices collapse to one edgeKey,
// matching the neighborIndex's own multi-edge collapsing.
type edgeKey struct {
	from, to string
}

// pathClass tags a candidate path with the deviation point that produced
// it: the index of the accepted path it branched from (PathID, 1-based)
// and the vertex at which the branch occurred.
type pathClass struct {
	PathID int
	Vertex string
}

// Path is a simple src→…→dest route under construction or already accepted.
//
// Route lists vertices in order. Edges maps each consecutive (from,to) pair
// to its weight, so Length and diversity comparisons never need to touch
// the graph again. LB holds the path's current lower bound on its eventual
// completed length (LB1, or max(LB1,LB2) for engines that use LB2). Active
// is the soft-delete flag used by class-propagation: an inactive path is
// skipped by the search but stays in its queue and the prefix map until a
// later class adjustment reactivates it; popActive pushes inactive entries
// back into their queue rather than discarding them.
type Path struct {
	Route  []string
	Edges  map[edgeKey]int64
	Length int64
	LB     int64
	Class  *pathClass
	Active bool

	seq                 int64
	cachedIntersections map[*Path]int64
}

// newTrivialPath builds the zero-length path consisting of a single vertex,
// returned when src == dest.
func newTrivialPath(v string) *Path {
	return &Path{
		Route:               []string{v},
		Edges:               make(map[edgeKey]int64),
		Active:              true,
		cachedIntersections: make(map[*Path]int64),
	}
}

// Tail returns the last vertex on the route, or "" if the route is empty.
func (p *Path) Tail() string {
	if len(p.Route) == 0 {
		return ""
	}
	return p.Route[len(p.Route)-1]
}

// Head returns the first vertex on the route, or "" if the route is empty.
func (p *Path) Head() string {
	if len(p.Route) == 0 {
		return ""
	}
	return p.Route[0]
}

// prefixPath builds a new Path holding Route[:i+1] and the edges spanning
// it, copied out of src so further mutation of src (or of the result)
// never aliases the other's backing storage.
func prefixPath(src *Path, i int) *Path {
	route := append([]string(nil), src.Route[:i+1]...)
	edges := make(map[edgeKey]int64, i)
	var length int64
	for j := 0; j < i; j++ {
		k := edgeKey{route[j], route[j+1]}
		w := src.Edges[k]
		edges[k] = w
		length += w
	}
	return &Path{
		Route:               route,
		Edges:               edges,
		Length:              length,
		Active:              true,
		cachedIntersections: make(map[*Path]int64),
	}
}

// deepCopy duplicates p's route and edge set into an independent Path.
// The new copy starts with an empty intersection cache: it is a distinct
// candidate with a distinct edge set, so any cached intersection from p
// would be stale.
func (p *Path) deepCopy() *Path {
	route := append([]string(nil), p.Route...)
	edges := make(map[edgeKey]int64, len(p.Edges))
	for k, w := range p.Edges {
		edges[k] = w
	}
	return &Path{
		Route:               route,
		Edges:               edges,
		Length:              p.Length,
		Class:               p.Class,
		Active:              p.Active,
		cachedIntersections: make(map[*Path]int64),
	}
}

// appendEdge extends the route by one vertex via the edge (u,v) of the
// given weight. u must equal p.Tail() before the call.
func (p *Path) appendEdge(u, v string, weight int64) {
	p.Route = append(p.Route, v)
	p.Edges[edgeKey{u, v}] = weight
	p.Length += weight
}

// LB1 is the admissible length+reverse-SPT-distance lower bound: the
// path's own length so far, plus the shortest possible completion to gs's
// destination as found by the reverse shortest-path tree.
func (p *Path) LB1(gs *graphState) int64 {
	tail := p.Tail()
	if tail == "" {
		return 0
	}
	d := gs.ensureSettled(tail)
	if d >= infinity {
		return infinity
	}
	return p.Length + d
}

// LB2 is the diversity-induced lower bound against the accepted set R: for
// every already-accepted path, the minimum length p would need to still
// satisfy the similarity threshold against it, maximized over R. LB2 is 0
// when R is empty. Intersection weights are memoized per accepted path so
// repeated LB2 calls against a growing R stay close to O(|R|) instead of
// rescanning both edge sets each time.
func (p *Path) LB2(tau float64, accepted []*Path) int64 {
	if len(accepted) == 0 {
		return 0
	}
	var best float64
	for _, old := range accepted {
		inter, ok := p.cachedIntersections[old]
		if !ok {
			inter = intersectionWeight(p, old)
			p.cachedIntersections[old] = inter
		}
		candidate := float64(inter)*(1+1/tau) - float64(old.Length)
		if candidate > best {
			best = candidate
		}
	}
	if best <= 0 {
		return 0
	}
	return int64(math.Ceil(best))
}

// similarityOK reports whether p's weighted Jaccard edge-similarity against
// every path in accepted is at or below tau (the diversity admission test).
func (p *Path) similarityOK(tau float64, accepted []*Path) bool {
	for _, old := range accepted {
		inter := intersectionWeight(p, old)
		union := p.Length + old.Length - inter
		if union <= 0 {
			continue
		}
		if float64(inter)/float64(union) > tau {
			return false
		}
	}
	return true
}

// intersectionWeight sums the weights of edges shared by both paths' edge
// sets, iterating over whichever of the two has fewer edges.
func intersectionWeight(a, b *Path) int64 {
	small, big := a.Edges, b.Edges
	if len(b.Edges) < len(a.Edges) {
		small, big = b.Edges, a.Edges
	}
	var sum int64
	for k, w := range small {
		if _, ok := big[k]; ok {
			sum += w
		}
	}
	return sum
}

// containsVertex reports whether v appears anywhere in route.
func containsVertex(route []string, v string) bool {
	for _, x := range route {
		if x == v {
			return true
		}
	}
	return false
}
