// Package kspdiv computes top-k shortest diverse paths between a source and
// destination in a weighted directed graph.
//
// "Diverse" means every returned path has weighted Jaccard edge-similarity
// at or below a caller-supplied threshold τ with every previously accepted
// path. Four strategies share one path-enumeration core:
//
//   - KSPD          — class-indexed branching with LB1 (length) and LB2
//     (diversity-induced) lower bounds, deviation trees materialised through
//     a prefix map.
//   - KSPD⁻         — KSPD without LB2 and without class-adjustment
//     propagation; the ablation baseline.
//   - KSPD-Yen      — classical Yen enumeration with a Jaccard post-filter.
//   - IterBound     — top-k shortest paths with no diversity filtering,
//     using iterative-bounding subspace decomposition.
//
// Under the hood, everything builds on:
//
//	core/       — thread-safe Graph/Vertex/Edge primitives (shared with dijkstra)
//	dijkstra/   — one-shot shortest path, reused as the seed path for every engine
//	loader/     — edge-list / DIMACS graph file parsing
//	cmd/kspdiv-bench/ — a small CLI driver over the four engines
//
// Construct an engine with New, then call FindPaths:
//
//	eng, err := kspdiv.New(kspdiv.KSPD, g, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := eng.FindPaths("1", "4", 3)
//
// Every engine query is single-threaded and synchronous; all per-query state
// (reverse shortest-path tree, priority queues, prefix map) is owned by the
// call and discarded when it returns. A *core.Graph may safely be shared
// read-only across concurrently running queries.
package kspdiv
