// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import "github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"

// CheckConds annotates conditionals whose
// branches jump in or out of a loop or into an existing case body —
// those cannot render as plain if/else — and give a back-edge-source
// Twoway conditional with no follow yet a follow (its non-back-edge
// child). StructLoops and StructConds must already have run.
func CheckConds(c *cfg.CFG) {
	for _, b := range c.Blocks {
		if b.CondType == cfg.CondNone {
			continue
		}
		for _, s := range b.Succs {
			if s == nil {
				continue
			}
			if crossesLoopBoundary(b, s) {
				b.CondType = cfg.CondUnstructuredJumpInOutLoop
			} else if s.CaseHead != nil && s.CaseHead != b.CaseHead && s != b.CondFollow {
				b.CondType = cfg.CondUnstructuredJumpIntoCase
			}
		}
		if b.Kind == cfg.Twoway && b.CondFollow == nil && b.LatchNode != nil {
			for _, s := range b.Succs {
				if s != b.LoopHead {
					b.CondFollow = s
					break
				}
			}
		}
	}
}

// crossesLoopBoundary reports whether the edge from b to s enters or
// leaves a loop membership it shouldn't (b and s disagree on
// LoopHead, and s is not simply the loop's recognised follow node).
func crossesLoopBoundary(b, s *cfg.BasicBlock) bool {
	if b.LoopHead == s.LoopHead {
		return false
	}
	if b.LoopHead != nil && b.LoopHead.LoopFollow == s {
		return false
	}
	if s.LoopHead != nil && s == s.LoopHead {
		return false // entering a loop header is a normal back-edge/entry, not a jump
	}
	return true
}
