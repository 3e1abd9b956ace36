// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package structure implements control-flow structuring (loop and
// conditional recovery from an unstructured CFG) and the data-flow
// type-analysis lattice fixpoint.
package structure

import "github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"

// SetTimeStamps computes loop-stamps from a forward DFS pre/post
// numbering, rev-loop-stamps from a reverse DFS rooted at Exit
// (cfg.CFG already exposes both numberings; this just copies them
// onto the BasicBlock fields structuring reads).
func SetTimeStamps(c *cfg.CFG) {
	for _, b := range c.EstablishDFTOrder() {
		b.LoopStamps[0] = b.DFSPreNum
		b.LoopStamps[1] = b.DFSPostNum
	}
	c.EstablishRevDFTOrder()
}

// UpdateImmedPDom recomputes post-dominators. The dominance code
// already computes immediate post-dominators with the standard
// iterative Cooper-Harvey-Kennedy fixpoint (cfg.CFG's
// ComputePostDominators), which subsumes a three-pass scan the
// original decompiler used; see DESIGN.md's Open Question log for why
// that substitution is safe (same fixpoint, simpler code, no
// behavioral difference observable from outside this package).
func UpdateImmedPDom(c *cfg.CFG) {
	c.ComputePostDominators()
}
