package kspdiv

import "strings"

// prefixSep separates route vertices when building a prefixMap bucket key.
// Vertex IDs may contain arbitrary printable characters but never the unit
// separator, so this never produces a colliding key.
const prefixSep = "\x1f"

// prefixMap indexes every live candidate path by each of its route
// prefixes, so class-adjustment can find "every candidate whose route
// begins with P[0..v]" without scanning every local queue. It holds
// non-owning references into the queues; removing an entry here never
// frees the underlying Path, it only stops it from being found by prefix.
type prefixMap struct {
	buckets map[string][]*Path
}

func newPrefixMap() *prefixMap {
	return &prefixMap{buckets: make(map[string][]*Path)}
}

func prefixKey(route []string) string {
	return strings.Join(route, prefixSep)
}

// insert registers p under every prefix of its route.
func (m *prefixMap) insert(p *Path) {
	for i := range p.Route {
		k := prefixKey(p.Route[:i+1])
		m.buckets[k] = append(m.buckets[k], p)
	}
}

// remove unregisters p from every prefix bucket it was inserted under.
// Removal is by pointer identity, matching prefixMap.insert's bookkeeping.
func (m *prefixMap) remove(p *Path) {
	for i := range p.Route {
		k := prefixKey(p.Route[:i+1])
		bucket := m.buckets[k]
		for j, q := range bucket {
			if q == p {
				m.buckets[k] = append(bucket[:j], bucket[j+1:]...)
				break
			}
		}
	}
}

// findWithPrefix returns every live candidate whose route begins with the
// given prefix (including candidates whose route equals the prefix).
func (m *prefixMap) findWithPrefix(route []string) []*Path {
	return m.buckets[prefixKey(route)]
}
