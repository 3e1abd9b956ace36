// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// locKey gives a stable map key for a location, collapsing
// structurally-equal-but-distinct Expr pointers.
func locKey(e *exp.Expr) string { return e.String() }

// PlacePhiFunctions inserts phi-assignments at the iterated dominance
// frontier of every location's definition sites, following the
// classic Cytron et al. worklist algorithm named here c's
// dominators must already be computed (cfg.CFG.ComputeDominators).
// Newly created phis are numbered through n and returned.
func PlacePhiFunctions(c *cfg.CFG, n *Numbering) []*stmt.Stmt {
	df := c.DominanceFrontier()

	defsites := map[string][]*cfg.BasicBlock{}
	locExample := map[string]*exp.Expr{}
	for _, b := range c.Blocks {
		seen := map[string]bool{}
		for _, s := range b.Statements() {
			var defs []*exp.Expr
			s.GetDefinitions(&defs)
			for _, d := range defs {
				key := locKey(d)
				if seen[key] {
					continue
				}
				seen[key] = true
				defsites[key] = append(defsites[key], b)
				locExample[key] = d
			}
		}
	}

	var inserted []*stmt.Stmt
	for key, sites := range defsites {
		loc := locExample[key]
		hasPhi := map[*cfg.BasicBlock]bool{}
		for _, b := range c.Blocks {
			for _, existing := range b.Phis {
				if locKey(existing.LHS) == key {
					hasPhi[b] = true
					break
				}
			}
		}
		onWorklist := map[*cfg.BasicBlock]bool{}
		worklist := append([]*cfg.BasicBlock(nil), sites...)
		for _, b := range sites {
			onWorklist[b] = true
		}
		for len(worklist) > 0 {
			b := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for _, d := range df[b] {
				if hasPhi[d] {
					continue
				}
				hasPhi[d] = true
				phi := newPhiFor(d, loc, n)
				d.Phis = append(d.Phis, phi)
				inserted = append(inserted, phi)
				if !onWorklist[d] {
					onWorklist[d] = true
					worklist = append(worklist, d)
				}
			}
		}
	}
	return inserted
}

// newPhiFor builds a bottom-initialised phi for loc at block d, one
// operand per predecessor, as the phi-placement step
// describes ("initially the location itself subscripted to ⊥").
func newPhiFor(d *cfg.BasicBlock, loc *exp.Expr, n *Numbering) *stmt.Stmt {
	phi := stmt.NewPhiAssign(nil, loc.Clone())
	for _, p := range d.Preds {
		phi.SetOperand(p, nil, nil)
	}
	n.Add(phi)
	return phi
}
