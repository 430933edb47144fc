package kspdiv

// KSPDMinusEngine is the KSPD ablation baseline: identical deviation-tree
// search and prefix-map bookkeeping as KSPDEngine, but with LB2 pruning and
// class-adjustment propagation both disabled, so candidates are ranked by
// LB1 alone and a dominated sibling never gets reactivated. Construct one
// through New(KSPDMinus, g, tau).
type KSPDMinusEngine struct {
	core *kspdCore
}

// FindPaths implements Engine.
func (e *KSPDMinusEngine) FindPaths(src, dest string, k int) ([]*Path, error) {
	return e.core.findPaths(src, dest, k)
}

// PathsExplored implements Engine.
func (e *KSPDMinusEngine) PathsExplored() int64 {
	return e.core.explored
}
