// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import "github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"

// StructConds classifies every BB with more than one
// outgoing edge becomes a conditional, whose follow node is its
// immediate post-dominator; an Nway (switch) conditional additionally
// tags every block inside its case body with CaseHead so later passes
// know they belong to the switch rather than to an enclosing
// structure. Dominance/post-dominance must already be computed.
func StructConds(c *cfg.CFG) {
	for _, b := range c.Blocks {
		if len(b.Succs) <= 1 {
			continue
		}
		b.CondFollow = b.ImmPDom
		if b.Kind == cfg.Nway {
			b.CondType = cfg.CondCase
			tagCaseBody(b, b.ImmPDom)
		} else {
			b.CondType = cfg.CondIfThen
			if len(b.Succs) == 2 && b.ImmPDom != nil && hasBothArms(b, b.ImmPDom) {
				b.CondType = cfg.CondIfThenElse
			}
		}
	}
}

// hasBothArms reports whether b has two successors and neither is
// follow itself — a rough if-then vs if-then-else discriminator; it
// does not check whether one arm reaches follow through the other.
func hasBothArms(b *cfg.BasicBlock, follow *cfg.BasicBlock) bool {
	return len(b.Succs) == 2 && b.Succs[0] != follow && b.Succs[1] != follow
}

// tagCaseBody marks every block reachable from head without crossing
// follow as belonging to head's case body.
func tagCaseBody(head, follow *cfg.BasicBlock) {
	visited := map[*cfg.BasicBlock]bool{head: true}
	var walk func(b *cfg.BasicBlock)
	walk = func(b *cfg.BasicBlock) {
		for _, s := range b.Succs {
			if s == nil || s == follow || visited[s] {
				continue
			}
			visited[s] = true
			s.CaseHead = head
			walk(s)
		}
	}
	walk(head)
}
