package kspdiv

// KSPDEngine finds the top-k shortest diverse paths using class-indexed
// branching with both LB1 (length) and LB2 (diversity-induced) pruning,
// and class-adjustment propagation when an accepted path reactivates
// dominated siblings. Construct one through New(KSPD, g, tau).
type KSPDEngine struct {
	core *kspdCore
}

// FindPaths implements Engine.
func (e *KSPDEngine) FindPaths(src, dest string, k int) ([]*Path, error) {
	return e.core.findPaths(src, dest, k)
}

// PathsExplored implements Engine.
func (e *KSPDEngine) PathsExplored() int64 {
	return e.core.explored
}
