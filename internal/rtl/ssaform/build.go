// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

// BuildSSA computes dominators, places phi-functions at the iterated
// dominance frontier of every defined location, then renames each
// location in turn over the dominator tree — the three
// named steps run back to back, which is how the fixture frontend and
// proc's earlyDecompile both enter SSA form.
func BuildSSA(c *cfg.CFG, n *Numbering) {
	c.ComputeDominators()
	PlacePhiFunctions(c, n)
	for _, loc := range definedLocations(c) {
		RenameLocation(c, loc, n)
	}
}

// definedLocations returns one representative Expr per distinct
// location defined anywhere in c, used to drive the variable-by-
// variable renaming walk.
func definedLocations(c *cfg.CFG) []*exp.Expr {
	seen := map[string]bool{}
	var out []*exp.Expr
	for _, b := range c.Blocks {
		for _, s := range b.Statements() {
			var defs []*exp.Expr
			s.GetDefinitions(&defs)
			for _, d := range defs {
				key := locKey(d)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, d)
			}
		}
	}
	return out
}
