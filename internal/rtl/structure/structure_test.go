// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

func reg(n int64) *exp.Expr { return exp.RegOf(exp.IntConst(n, 32, false)) }

// buildEndlessLoop builds a self-looping shape: BB0 -> BB1,
// BB1 -> BB1 (self loop), BB1 has no other exit.
func buildEndlessLoop(t *testing.T) (*cfg.CFG, *cfg.BasicBlock, *cfg.BasicBlock) {
	t.Helper()
	c := cfg.NewCFG()
	init := stmt.NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	bb0 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1000, init)}, cfg.Fall).BB
	incr := stmt.NewAssign(dtype.Int32, reg(24), exp.Binary(exp.OpPlus, reg(24), exp.IntConst(1, 32, false)))
	bb1 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1004, incr)}, cfg.Oneway).BB
	c.AddEdge(bb0, bb1)
	c.AddEdge(bb1, bb1)
	c.SetEntryAndExitBB(bb0, bb1)
	return c, bb0, bb1
}

// TestStructLoopsEndless checks that structuring marks BB1 as its own
// loop header with type Endless: the self-loop has no other exit
// edge, so neither the header nor the latch is a Twoway branch.
func TestStructLoopsEndless(t *testing.T) {
	c, _, bb1 := buildEndlessLoop(t)
	c.ComputeDominators()
	c.ComputePostDominators()
	SetTimeStamps(c)
	StructLoops(c)

	if bb1.LoopHead != bb1 {
		t.Fatalf("expected bb1 to be its own loop header, got %v", bb1.LoopHead)
	}
	if bb1.Type != cfg.LoopEndless {
		t.Errorf("loop type = %v, want LoopEndless", bb1.Type)
	}
	if bb1.LatchNode != bb1 {
		t.Errorf("latch = %v, want bb1 (self back-edge)", bb1.LatchNode)
	}
}

// buildDiamond builds entry -> (left, right) -> join -> exit.
func buildDiamond(t *testing.T) (c *cfg.CFG, entry, left, right, join *cfg.BasicBlock) {
	t.Helper()
	c = cfg.NewCFG()
	entry = c.NewBB(nil, cfg.Twoway).BB
	left = c.NewBB(nil, cfg.Fall).BB
	right = c.NewBB(nil, cfg.Fall).BB
	join = c.NewBB(nil, cfg.Ret).BB
	c.AddEdge(entry, left)
	c.AddEdge(entry, right)
	c.AddEdge(left, join)
	c.AddEdge(right, join)
	c.SetEntryAndExitBB(entry, join)
	return
}

// TestStructCondsIfThenElse checks a two-way branch whose arms both
// avoid the immediate post-dominator is classified if-then-else, with
// follow set to the post-dominator.
func TestStructCondsIfThenElse(t *testing.T) {
	c, entry, _, _, join := buildDiamond(t)
	c.ComputeDominators()
	c.ComputePostDominators()
	StructConds(c)

	if entry.CondType != cfg.CondIfThenElse {
		t.Errorf("CondType = %v, want CondIfThenElse", entry.CondType)
	}
	if entry.CondFollow != join {
		t.Errorf("CondFollow = %v, want join", entry.CondFollow)
	}
}

// TestRunTypeAnalysisMeetsAssignType checks that an untyped Assign of
// an int32 constant gets int32 as its recorded type and converges.
func TestRunTypeAnalysisMeetsAssignType(t *testing.T) {
	c := cfg.NewCFG()
	a := stmt.NewAssign(nil, reg(24), exp.IntConst(5, 32, false))
	c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1000, a)}, cfg.Ret)
	entry := c.Blocks[0]
	c.SetEntryAndExitBB(entry, entry)

	converged := RunTypeAnalysis(c)
	if !converged {
		t.Fatalf("expected type analysis to converge")
	}
	if a.Type == nil || a.Type.Kind != dtype.KindInt || a.Type.Size != 32 {
		t.Errorf("a.Type = %v, want int32", a.Type)
	}
}
