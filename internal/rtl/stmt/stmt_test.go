// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import (
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

func reg(n int64) *exp.Expr { return exp.RegOf(exp.IntConst(n, 32, false)) }

// TestAssignCloneIndependence mirrors StatementTest.cpp's clone case:
// mutating a clone's RHS must not mutate the original's.
func TestAssignCloneIndependence(t *testing.T) {
	s := NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	s.Number = 1
	c := s.Clone()
	c.RHS = exp.IntConst(99, 32, false)
	if s.RHS.IntVal != 5 {
		t.Errorf("cloning mutated original RHS: got %d, want 5", s.RHS.IntVal)
	}
}

func TestBoolAssignSimplify(t *testing.T) {
	cond := exp.Binary(exp.OpEquals, exp.IntConst(1, 32, false), exp.IntConst(1, 32, false))
	s := NewBoolAssign(dtype.Bool, 1, reg(0), cond, false)
	s.Simplify()
	if s.Cond.Kind != exp.KindTerminal || s.Cond.Op != exp.OpTrue {
		t.Errorf("Simplify(1==1) = %v, want true", s.Cond)
	}
}

func TestGetDefinitionsAssign(t *testing.T) {
	s := NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	var defs []*exp.Expr
	s.GetDefinitions(&defs)
	if len(defs) != 1 || !exp.Equal(defs[0], reg(24)) {
		t.Errorf("GetDefinitions = %v, want [r24]", defs)
	}
	if !s.DefinesLoc(reg(24)) {
		t.Errorf("DefinesLoc(r24) should be true")
	}
}

type stubResolver map[int]*Stmt

func (r stubResolver) ResolveDef(ref exp.StmtRef) *Stmt {
	if ref == nil {
		return nil
	}
	return r[ref.StmtNumber()]
}

// TestAddUsedLocsRoundTrip mirrors property 2: the used
// locations of a statement equal the subscripted locations
// syntactically appearing in its operands.
func TestAddUsedLocsRoundTrip(t *testing.T) {
	def := NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	def.Number = 1
	use := NewAssign(dtype.Int32, reg(28), exp.NewRef(reg(24), def))
	var used []*exp.Expr
	use.AddUsedLocs(&used, true)
	if len(used) != 1 || !exp.Equal(used[0], reg(24)) {
		t.Fatalf("AddUsedLocs = %v, want [r24]", used)
	}
	if !use.UsesExp(reg(24)) {
		t.Errorf("UsesExp(r24) should be true")
	}
}

// TestPropagateToSubstitutesSingleReachingDef checks a linear shape
// BB0 {r24 := 5} -> BB1 {return r24} propagates the def into use.
func TestPropagateToSubstitutesSingleReachingDef(t *testing.T) {
	def := NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	def.Number = 1
	ret := NewReturn()
	ret.Returns = []*exp.Expr{exp.NewRef(reg(24), def)}

	resolver := stubResolver{1: def}
	budget := map[int]int{1: 1}
	changed := ret.PropagateTo(resolver, budget, nil)
	if !changed {
		t.Fatalf("expected propagation to report a change")
	}
	if ret.Returns[0].Kind != exp.KindConst || ret.Returns[0].IntVal != 5 {
		t.Errorf("Returns[0] = %v, want constant 5", ret.Returns[0])
	}
}

func TestPropagateToRespectsDominatingPhiGuard(t *testing.T) {
	def := NewAssign(dtype.Int32, reg(24), exp.IntConst(5, 32, false))
	def.Number = 1
	ret := NewReturn()
	ret.Returns = []*exp.Expr{exp.NewRef(reg(24), def)}

	resolver := stubResolver{1: def}
	budget := map[int]int{1: 1}
	usedByDomPhi := map[string]bool{locKey(reg(24)): true}
	changed := ret.PropagateTo(resolver, budget, usedByDomPhi)
	if changed {
		t.Errorf("expected no propagation when the def is live at a dominating phi")
	}
}

func TestUpdateReturnsCollapsesPreserved(t *testing.T) {
	ret := NewReturn()
	entryVal := reg(29)
	ret.Returns = []*exp.Expr{reg(29), reg(24)}
	ret.UpdateReturns(func(e *exp.Expr) *exp.Expr {
		if exp.Equal(e, reg(29)) {
			return entryVal
		}
		return nil
	})
	if len(ret.Returns) != 1 || !exp.Equal(ret.Returns[0], reg(24)) {
		t.Errorf("UpdateReturns = %v, want [r24]", ret.Returns)
	}
}

func TestLocaliseExpSubstitutesArguments(t *testing.T) {
	call := NewCall(exp.FuncConst("callee"), nil, &Signature{Name: "callee"})
	param := exp.Location(exp.LocParam, nil, "p0", nil)
	call.Arguments = []*Stmt{NewAssign(dtype.Int32, param, reg(24))}
	callee := exp.Binary(exp.OpPlus, param, exp.IntConst(1, 32, false))
	got := call.LocaliseExp(callee)
	want := exp.Binary(exp.OpPlus, reg(24), exp.IntConst(1, 32, false))
	if !exp.Equal(got, want) {
		t.Errorf("LocaliseExp = %v, want %v", got, want)
	}
}
