// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

// PropagateStatements runs one full pass of the
// propagateStatements(pass-number): compute dest-counts and the
// dominating-phi-used set, then offer every non-phi statement's used
// Refs to stmt.PropagateTo, re-simplifying whatever changed. Reports
// whether anything changed this pass.
func PropagateStatements(c *cfg.CFG, n *Numbering) bool {
	budget := destCounts(c)
	usedByDomPhi := domPhiUses(c)

	changed := false
	for _, b := range c.Blocks {
		for _, s := range b.Statements() {
			if s.PropagateTo(n, budget, usedByDomPhi) {
				changed = true
				s.Simplify()
			}
		}
	}
	return changed
}

// destCounts counts, for every statement number, how many use sites
// reference it — the conservatism budget step 3 of the propagation
// pass describes ("at most one copy ... beyond a budget").
func destCounts(c *cfg.CFG) map[int]int {
	counts := map[int]int{}
	for _, b := range c.Blocks {
		for _, s := range b.AllStatements() {
			forEachRef(s, func(ref *exp.Expr) {
				if sr, ok := ref.Def.(interface{ StmtNumber() int }); ok {
					counts[sr.StmtNumber()]++
				}
			})
		}
	}
	return counts
}

// domPhiUses returns the set of location keys consumed as a live phi
// operand anywhere in the CFG, so propagation never substitutes away
// a value a phi still needs.
func domPhiUses(c *cfg.CFG) map[string]bool {
	out := map[string]bool{}
	for _, b := range c.Blocks {
		for _, phi := range b.Phis {
			for _, op := range phi.PhiOperands {
				if op.Val != nil && op.Val.Base() != nil {
					out[locKey(op.Val.Base())] = true
				}
			}
		}
	}
	return out
}
