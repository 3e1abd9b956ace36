// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

import "testing"

type fakeDef int

func (f fakeDef) StmtNumber() int { return int(f) }

func TestCloneEqualityAndIndependence(t *testing.T) {
	orig := Binary(OpPlus, IntConst(5, 32, false), MemOf(IntConst(8, 32, false)))
	clone := orig.Clone()
	if clone == orig {
		t.Fatalf("Clone returned the same pointer")
	}
	if !Equal(orig, clone) {
		t.Fatalf("clone not structurally equal to original")
	}
	clone.Child(0).IntVal = 99
	if orig.Child(0).IntVal == 99 {
		t.Errorf("mutating clone mutated original")
	}
}

func TestEqualWildcards(t *testing.T) {
	if !Equal(Wild(), IntConst(5, 32, false)) {
		t.Errorf("opWild should match anything")
	}
	if !Equal(WildIntConst(), IntConst(5, 32, false)) {
		t.Errorf("opWildIntConst should match an int constant")
	}
	if Equal(WildIntConst(), StrConst("x")) {
		t.Errorf("opWildIntConst should not match a string constant")
	}
	if !Equal(WildStrConst(), StrConst("x")) {
		t.Errorf("opWildStrConst should match a string constant")
	}
}

func TestSimplifyConstantFold(t *testing.T) {
	e := Binary(OpPlus, IntConst(2, 32, false), IntConst(3, 32, false))
	got := e.Simplify()
	if got.Kind != KindConst || got.IntVal != 5 {
		t.Errorf("Simplify(2+3) = %v, want 5", got)
	}
}

func TestSimplifyIdentity(t *testing.T) {
	loc := RegOf(IntConst(24, 32, false))
	e := Binary(OpPlus, loc, IntConst(0, 32, false))
	got := e.Simplify()
	if !Equal(got, loc) {
		t.Errorf("Simplify(x+0) = %v, want %v", got, loc)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	e := Binary(OpMult, Binary(OpPlus, IntConst(1, 32, false), IntConst(1, 32, false)), IntConst(1, 32, false))
	once := e.Simplify()
	twice := once.Simplify()
	if !Equal(once, twice) {
		t.Errorf("Simplify not idempotent: %v vs %v", once, twice)
	}
}

func TestSearchAndSearchAll(t *testing.T) {
	target := MemOf(IntConst(4, 32, false))
	e := Binary(OpPlus, target, MemOf(IntConst(4, 32, false)))
	var out *Expr
	if !e.Search(target, &out) {
		t.Fatalf("expected a match")
	}
	var all []*Expr
	e.SearchAll(target, &all)
	if len(all) != 2 {
		t.Errorf("SearchAll found %d matches, want 2", len(all))
	}
}

func TestSearchReplaceAll(t *testing.T) {
	pattern := RegOf(IntConst(24, 32, false))
	replacement := RegOf(IntConst(28, 32, false))
	e := Binary(OpPlus, pattern, IntConst(1, 32, false))
	var changed bool
	got := e.SearchReplaceAll(pattern, replacement, &changed)
	if !changed {
		t.Fatalf("expected a substitution")
	}
	if !Equal(got.Child(0), replacement) {
		t.Errorf("got %v, want replacement in position 0", got)
	}
}

func TestExpSubscriptVarAndRemove(t *testing.T) {
	loc := RegOf(IntConst(24, 32, false))
	e := Binary(OpPlus, loc, IntConst(1, 32, false))
	subscripted := e.ExpSubscriptVar(loc, fakeDef(7))
	if subscripted.Child(0).Kind != KindRef {
		t.Fatalf("expected position 0 to become a Ref")
	}
	if subscripted.Child(0).Def.StmtNumber() != 7 {
		t.Errorf("Ref.Def = %d, want 7", subscripted.Child(0).Def.StmtNumber())
	}

	var allZero bool
	stripped := subscripted.RemoveSubscripts(&allZero)
	if allZero {
		t.Errorf("allZero should be false: Ref pointed at stmt 7, not implicit")
	}
	if !Equal(stripped, e) {
		t.Errorf("RemoveSubscripts(subscript(e)) = %v, want %v", stripped, e)
	}
}

func TestRemoveSubscriptsAllImplicit(t *testing.T) {
	loc := RegOf(IntConst(28, 32, false))
	r := NewRef(loc, nil)
	var allZero bool
	got := r.RemoveSubscripts(&allZero)
	if !allZero {
		t.Errorf("expected allZero true for an implicit-only Ref")
	}
	if !Equal(got, loc) {
		t.Errorf("got %v, want %v", got, loc)
	}
}

func TestAscendTypeMemOfAddrOf(t *testing.T) {
	inner := RegOf(IntConst(24, 32, false))
	m := MemOf(AddrOf(inner))
	got := m.AscendType()
	if got == nil || got.Kind.String() == "" {
		t.Fatalf("AscendType returned unusable type %v", got)
	}
}

func TestAscendTypeComparisonIsBool(t *testing.T) {
	cmp := Binary(OpEquals, IntConst(1, 32, false), IntConst(2, 32, false))
	got := cmp.AscendType()
	if got.Kind.String() != "bool" {
		t.Errorf("AscendType(a==b) = %v, want bool", got)
	}
}
