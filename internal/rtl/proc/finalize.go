// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import "github.com/5l1v3r1/boomerang-go/internal/rtl/structure"

// finalize runs the two analyses that only make sense once a
// procedure's dataflow has stabilised: control-flow structuring
// (loop/conditional recognition, the input a textual decompiled
// rendering walks) and the data-flow type lattice's fixpoint. Skipped
// entirely for a NoDecompile procedure, whose CFG (if any) is never
// brought to SSA form in the first place.
func (p *Procedure) finalize() {
	if p.NoDecompile || p.CFG == nil {
		return
	}
	p.CFG.CompressCfg()
	p.CFG.ComputeDominators()
	if !structure.RunTypeAnalysis(p.CFG) {
		if sink := p.sink(); sink != nil {
			sink.Warning((&TypeAnalysisInconsistencyError{Proc: p.Name}).Error())
		}
	}
	structure.SetTimeStamps(p.CFG)
	structure.UpdateImmedPDom(p.CFG)
	structure.StructConds(p.CFG)
	structure.StructLoops(p.CFG)
	structure.CheckConds(p.CFG)
	p.Structured = true
}
