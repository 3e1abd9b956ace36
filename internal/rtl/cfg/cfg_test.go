// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

func rtlAt(addr uint64, s *stmt.Stmt) *RTL { return NewRTL(addr, s) }

func reg(n int64) *exp.Expr { return exp.RegOf(exp.IntConst(n, 32, false)) }

// TestNewBBDetectsAlreadyComplete mirrors a decode scenario: decoding
// the same address twice must not silently duplicate a BB.
func TestNewBBDetectsAlreadyComplete(t *testing.T) {
	c := NewCFG()
	a := stmt.NewAssign(dtype.Int32, reg(24), exp.IntConst(1, 32, false))
	res1 := c.NewBB([]*RTL{rtlAt(0x1000, a)}, Fall)
	if res1.Kind != Created {
		t.Fatalf("first NewBB = %v, want Created", res1.Kind)
	}
	res2 := c.NewBB([]*RTL{rtlAt(0x1000, a)}, Fall)
	if res2.Kind != AlreadyComplete {
		t.Fatalf("second NewBB at same addr = %v, want AlreadyComplete", res2.Kind)
	}
	if res2.BB != res1.BB {
		t.Errorf("AlreadyComplete should return the existing BB")
	}
}

// TestSplitBBPreservesSuccessors mirrors a decode scenario: splitting
// a BB must carry its outgoing edges to the new tail block and fix up
// the successor's predecessor list.
func TestSplitBBPreservesSuccessors(t *testing.T) {
	c := NewCFG()
	a1 := stmt.NewAssign(dtype.Int32, reg(24), exp.IntConst(1, 32, false))
	a2 := stmt.NewAssign(dtype.Int32, reg(28), exp.IntConst(2, 32, false))
	bb := c.addBlock(&BasicBlock{Kind: Fall, RTLs: []*RTL{rtlAt(0x1000, a1), rtlAt(0x1004, a2)}})
	succ := c.addBlock(&BasicBlock{Kind: Ret})
	c.AddEdge(bb, succ)

	bottom := c.SplitBB(bb, 0x1004, nil, false)
	if bottom == bb {
		t.Fatalf("SplitBB did not create a new tail block")
	}
	if len(bb.Succs) != 1 || bb.Succs[0] != bottom {
		t.Errorf("top half should fall through to bottom half, got %v", bb.Succs)
	}
	if len(bottom.Succs) != 1 || bottom.Succs[0] != succ {
		t.Errorf("bottom half should inherit original successor, got %v", bottom.Succs)
	}
	if succ.predIndex(bottom) < 0 || succ.predIndex(bb) >= 0 {
		t.Errorf("successor's predecessor list not fixed up: preds=%v", succ.Preds)
	}
}

// TestMergeBBRequiresSingleEdge mirrors: mergeBB must
// refuse when u has more than one successor.
func TestMergeBBRequiresSingleEdge(t *testing.T) {
	c := NewCFG()
	u := c.addBlock(&BasicBlock{Kind: Twoway})
	v := c.addBlock(&BasicBlock{Kind: Fall})
	w := c.addBlock(&BasicBlock{Kind: Ret})
	c.AddEdge(u, v)
	c.AddEdge(u, w)
	if c.MergeBB(u, v) {
		t.Errorf("MergeBB should refuse when u has two successors")
	}
}

// TestRemoveOrphanBBsDropsUnreachable checks the BFS-from-entry
// reachability invariant.
func TestRemoveOrphanBBsDropsUnreachable(t *testing.T) {
	c := NewCFG()
	entry := c.addBlock(&BasicBlock{Kind: Ret})
	c.addBlock(&BasicBlock{Kind: Ret}) // orphan, never wired in
	c.SetEntryAndExitBB(entry, entry)
	c.RemoveOrphanBBs()
	if len(c.Blocks) != 1 {
		t.Fatalf("RemoveOrphanBBs left %d blocks, want 1", len(c.Blocks))
	}
	if c.Blocks[0] != entry {
		t.Errorf("RemoveOrphanBBs kept the wrong block")
	}
}

// TestWellFormCfgRejectsIncomplete mirrors: a CFG with an
// unfinished placeholder BB must fail well-formedness.
func TestWellFormCfgRejectsIncomplete(t *testing.T) {
	c := NewCFG()
	c.addBlock(&BasicBlock{Kind: Ret})
	c.addBlock(&BasicBlock{incomplete: true})
	ok, err := c.WellFormCfg()
	if ok || err == nil {
		t.Fatalf("WellFormCfg should fail with an incomplete BB present")
	}
}

// TestWellFormCfgAcceptsConsistentEdges checks the success path.
func TestWellFormCfgAcceptsConsistentEdges(t *testing.T) {
	c := NewCFG()
	entry := c.addBlock(&BasicBlock{Kind: Fall})
	exit := c.addBlock(&BasicBlock{Kind: Ret})
	c.AddEdge(entry, exit)
	ok, err := c.WellFormCfg()
	if !ok || err != nil {
		t.Fatalf("WellFormCfg = %v, %v, want true, nil", ok, err)
	}
}

// buildDiamond builds entry -> (left, right) -> join -> exit, the
// textbook case that forces a two-predecessor dominance frontier.
func buildDiamond(t *testing.T) (c *CFG, entry, left, right, join, exit *BasicBlock) {
	t.Helper()
	c = NewCFG()
	entry = c.addBlock(&BasicBlock{Kind: Twoway})
	left = c.addBlock(&BasicBlock{Kind: Fall})
	right = c.addBlock(&BasicBlock{Kind: Fall})
	join = c.addBlock(&BasicBlock{Kind: Fall})
	exit = c.addBlock(&BasicBlock{Kind: Ret})
	c.AddEdge(entry, left)
	c.AddEdge(entry, right)
	c.AddEdge(left, join)
	c.AddEdge(right, join)
	c.AddEdge(join, exit)
	c.SetEntryAndExitBB(entry, exit)
	return
}

// TestDominanceFrontierAtJoin mirrors the phi-placement
// precondition: the join block must appear in the dominance frontier
// of both diamond arms but not of entry itself.
func TestDominanceFrontierAtJoin(t *testing.T) {
	c, entry, left, right, _, _ := buildDiamond(t)
	c.ComputeDominators()
	df := c.DominanceFrontier()

	if !contains(df[left], join(c)) || !contains(df[right], join(c)) {
		t.Fatalf("expected join in DF(left) and DF(right); got DF(left)=%v DF(right)=%v", df[left], df[right])
	}
	if len(df[entry]) != 0 {
		t.Errorf("DF(entry) should be empty in a single-entry diamond, got %v", df[entry])
	}
}

func join(c *CFG) *BasicBlock { return c.Blocks[3] }

func contains(set []*BasicBlock, b *BasicBlock) bool {
	for _, x := range set {
		if x == b {
			return true
		}
	}
	return false
}

// TestComputePostDominatorsDiamond checks the join block post-dominates
// both arms, needed before structure.StructConds can run.
func TestComputePostDominatorsDiamond(t *testing.T) {
	c, _, left, right, join, _ := buildDiamond(t)
	c.ComputePostDominators()
	if left.ImmPDom != join || right.ImmPDom != join {
		t.Fatalf("expected join to immediately post-dominate both arms, got left=%v right=%v", left.ImmPDom, right.ImmPDom)
	}
}
