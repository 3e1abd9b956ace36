// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

func reg(n int64) *exp.Expr { return exp.RegOf(exp.IntConst(n, 32, false)) }

// buildLinear builds a linear two-block shape: BB0 {r24 := 5} -> BB1
// {return r24}.
func buildLinear(t *testing.T) (*cfg.CFG, *stmt.Stmt) {
	t.Helper()
	c := cfg.NewCFG()
	assign := stmt.NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	bb0 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1000, assign)}, cfg.Fall).BB
	ret := stmt.NewReturn()
	ret.Returns = []*exp.Expr{reg(24)}
	bb1 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1004, ret)}, cfg.Ret).BB
	c.AddEdge(bb0, bb1)
	c.SetEntryAndExitBB(bb0, bb1)
	return c, assign
}

// TestPlacePhiFunctionsSkipsSinglePred checks the no-join case inserts
// no phis (dominance frontier of a straight-line CFG is empty).
func TestPlacePhiFunctionsSkipsSinglePred(t *testing.T) {
	c, _ := buildLinear(t)
	n := NewNumbering(c)
	c.ComputeDominators()
	inserted := PlacePhiFunctions(c, n)
	if len(inserted) != 0 {
		t.Fatalf("expected no phis in a single-predecessor CFG, got %d", len(inserted))
	}
}

// TestRenameThenPropagateLinear mirrors a decode scenario end to
// end: after renaming and one propagate pass, the return's operand
// becomes the constant 5 and the assign's RHS reference resolves back
// to the defining statement.
func TestRenameThenPropagateLinear(t *testing.T) {
	c, assignStmt := buildLinear(t)
	n := NewNumbering(c)
	BuildSSA(c, n)

	retBB := c.Blocks[1]
	ret := retBB.Statements()[0]
	if ret.Returns[0].Kind != exp.KindRef {
		t.Fatalf("expected renaming to wrap the return operand in a Ref, got %v", ret.Returns[0])
	}
	if ret.Returns[0].Def != exp.StmtRef(assignStmt) {
		t.Errorf("Ref def = %v, want the r24 := 5 assign", ret.Returns[0].Def)
	}

	if !PropagateStatements(c, n) {
		t.Fatalf("expected propagate to fire on the first pass")
	}
	if ret.Returns[0].Kind != exp.KindConst || ret.Returns[0].IntVal != 5 {
		t.Errorf("after propagate, Returns[0] = %v, want constant 5", ret.Returns[0])
	}
}

// buildEndlessLoop builds a self-looping shape: BB0 {r24 := 5} -> BB1
// {r24 := r24 + 1} -> BB1 (self loop), no exit edge out of BB1.
func buildEndlessLoop(t *testing.T) *cfg.CFG {
	t.Helper()
	c := cfg.NewCFG()
	init := stmt.NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	bb0 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1000, init)}, cfg.Fall).BB
	incr := stmt.NewAssign(dtype.Int32, reg(24), exp.Binary(exp.OpPlus, reg(24), exp.IntConst(1, 32, false)))
	bb1 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1004, incr)}, cfg.Oneway).BB
	c.AddEdge(bb0, bb1)
	c.AddEdge(bb1, bb1)
	c.SetEntryAndExitBB(bb0, bb1)
	return c
}

// TestPlacePhiFunctionsEndlessLoop mirrors S5: the loop header must
// receive exactly one phi for r24 with two operands (init, incr).
func TestPlacePhiFunctionsEndlessLoop(t *testing.T) {
	c := buildEndlessLoop(t)
	n := NewNumbering(c)
	c.ComputeDominators()
	PlacePhiFunctions(c, n)

	bb1 := c.Blocks[1]
	if len(bb1.Phis) != 1 {
		t.Fatalf("expected exactly one phi at the loop header, got %d", len(bb1.Phis))
	}
	phi := bb1.Phis[0]
	if len(phi.PhiOperands) != 2 {
		t.Fatalf("expected 2 phi operands (one per predecessor), got %d", len(phi.PhiOperands))
	}
}

// TestRenameEndlessLoopWiresBothOperands checks that after renaming,
// the phi's operand from bb0 resolves to the init assign and its
// operand from bb1 resolves to the incr assign (self-loop feedback).
func TestRenameEndlessLoopWiresBothOperands(t *testing.T) {
	c := buildEndlessLoop(t)
	n := NewNumbering(c)
	BuildSSA(c, n)

	bb0, bb1 := c.Blocks[0], c.Blocks[1]
	phi := bb1.Phis[0]
	fromInit := phi.PhiOperands[bb0.BBNumber()]
	fromIncr := phi.PhiOperands[bb1.BBNumber()]
	if fromInit == nil || fromInit.Val == nil {
		t.Fatalf("expected the bb0 operand to be wired")
	}
	if fromIncr == nil || fromIncr.Val == nil {
		t.Fatalf("expected the bb1 (self) operand to be wired")
	}
	incrStmt := bb1.Statements()[0]
	if fromIncr.Val.Def != exp.StmtRef(incrStmt) {
		t.Errorf("self-loop operand should resolve to the incr statement")
	}
}

// TestFixCallAndPhiRefsCollapsesUniformPhi checks that a phi whose
// surviving operands are all the same constant collapses to a plain
// assign.
func TestFixCallAndPhiRefsCollapsesUniformPhi(t *testing.T) {
	c := cfg.NewCFG()
	left := c.NewBB(nil, cfg.Fall).BB
	right := c.NewBB(nil, cfg.Fall).BB
	join := c.NewBB(nil, cfg.Ret).BB
	c.AddEdge(left, join)
	c.AddEdge(right, join)
	c.SetEntryAndExitBB(left, join)

	phi := stmt.NewPhiAssign(dtype.Int32, reg(24))
	phi.SetOperand(left, nil, exp.IntConst(7, 32, false))
	phi.SetOperand(right, nil, exp.IntConst(7, 32, false))
	join.Phis = append(join.Phis, phi)
	n := NewNumbering(c)

	changed := FixCallAndPhiRefs(c, n, nil, func(*stmt.Stmt, *exp.Expr) (*exp.Expr, bool) { return nil, false })
	if !changed {
		t.Fatalf("expected FixCallAndPhiRefs to report a change")
	}
	if len(join.Phis) != 1 || join.Phis[0].Kind != stmt.KindAssign {
		t.Fatalf("expected the uniform phi to collapse to an Assign, got %#v", join.Phis)
	}
	if join.Phis[0].RHS.IntVal != 7 {
		t.Errorf("collapsed assign RHS = %v, want 7", join.Phis[0].RHS)
	}
}

// TestFromSSAformRemovesAllPhis mirrors property 6.
func TestFromSSAformRemovesAllPhis(t *testing.T) {
	c := buildEndlessLoop(t)
	n := NewNumbering(c)
	BuildSSA(c, n)

	next := 0
	names := func() string { next++; return "local" + itoa(next) }
	typeOf := func(*exp.Expr) *dtype.Type { return dtype.Int32 }
	FromSSAform(c, n, typeOf, names)

	for _, b := range c.Blocks {
		if len(b.Phis) != 0 {
			t.Fatalf("expected no remaining phis after FromSSAform, bb has %d", len(b.Phis))
		}
		for _, s := range b.Statements() {
			if s.Kind == stmt.KindPhiAssign {
				t.Fatalf("found a PhiAssign statement after FromSSAform")
			}
		}
	}
}
