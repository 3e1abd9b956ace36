// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// Simplify performs constant folding and identity elimination to a
// fixpoint and returns a new tree (the receiver is never mutated).
// Simplify never fails.
func (e *Expr) Simplify() *Expr {
	cur := e
	for {
		next := cur.simplifyOnce()
		if Equal(next, cur) {
			return next
		}
		cur = next
	}
}

// SimplifyArith is Simplify restricted to arithmetic identities and
// sign-carrying associativity normalization (e.g. a+(-b) -> a-b),
// without the broader recursive identity elimination; used by passes
// that only want numeric folding.
func (e *Expr) SimplifyArith() *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindBinary:
		l := e.Child(0).SimplifyArith()
		r := e.Child(1).SimplifyArith()
		if folded := foldArith(e.Op, l, r); folded != nil {
			return folded
		}
		if ra := reassocConst(e.Op, l, r); ra != nil {
			return ra
		}
		return normalizeAssoc(e.Op, l, r)
	case KindUnary:
		c := e.Child(0).SimplifyArith()
		if folded := foldUnary(e.Op, c); folded != nil {
			return folded
		}
		return Unary(e.Op, c)
	default:
		return e.Clone()
	}
}

func (e *Expr) simplifyOnce() *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindUnary:
		c := e.Child(0).simplifyOnce()
		if folded := foldUnary(e.Op, c); folded != nil {
			return folded
		}
		return Unary(e.Op, c)
	case KindBinary:
		l := e.Child(0).simplifyOnce()
		r := e.Child(1).simplifyOnce()
		if folded := foldArith(e.Op, l, r); folded != nil {
			return folded
		}
		if id := identityElim(e.Op, l, r); id != nil {
			return id
		}
		if ra := reassocConst(e.Op, l, r); ra != nil {
			return ra
		}
		return normalizeAssoc(e.Op, l, r)
	case KindTernary:
		a := e.Child(0).simplifyOnce()
		b := e.Child(1).simplifyOnce()
		c := e.Child(2).simplifyOnce()
		return Ternary(e.Op, a, b, c)
	case KindTyped:
		c := e.Child(0).simplifyOnce()
		if c.Kind == KindConst && e.Type != nil {
			return c
		}
		return Typed(e.Type, c)
	case KindRef:
		return NewRef(e.Base().simplifyOnce(), e.Def)
	case KindFlagCall:
		args := make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.simplifyOnce()
		}
		return FlagCall(e.Name, args...)
	case KindLocation:
		c := e.Clone()
		if base := e.Base(); base != nil {
			c.Kids = []*Expr{base.simplifyOnce()}
		}
		return c
	default:
		return e.Clone()
	}
}

func foldUnary(op Op, c *Expr) *Expr {
	if c == nil || c.Kind != KindConst {
		return nil
	}
	switch op {
	case OpNeg:
		if c.ConstTag == ConstFloat {
			return FloatConst(-c.FloatVal, c.Width)
		}
		return &Expr{Kind: KindConst, ConstTag: c.ConstTag, IntVal: -c.IntVal, Width: c.Width, Unsigned: c.Unsigned}
	case OpNot:
		if c.IntVal == 0 {
			return True()
		}
		return False()
	}
	return nil
}

func foldArith(op Op, l, r *Expr) *Expr {
	if l == nil || r == nil || l.Kind != KindConst || r.Kind != KindConst {
		return nil
	}
	if l.ConstTag == ConstFloat || r.ConstTag == ConstFloat {
		lf, rf := constFloat(l), constFloat(r)
		switch op {
		case OpPlus:
			return FloatConst(lf+rf, maxWidth(l, r))
		case OpMinus:
			return FloatConst(lf-rf, maxWidth(l, r))
		case OpMult:
			return FloatConst(lf*rf, maxWidth(l, r))
		case OpDiv:
			if rf != 0 {
				return FloatConst(lf/rf, maxWidth(l, r))
			}
		}
		return nil
	}
	li, ri := l.IntVal, r.IntVal
	width := maxWidth(l, r)
	unsigned := l.Unsigned || r.Unsigned
	mk := func(v int64) *Expr { return IntConst(v, width, unsigned) }
	switch op {
	case OpPlus:
		return mk(li + ri)
	case OpMinus:
		return mk(li - ri)
	case OpMult:
		return mk(li * ri)
	case OpDiv:
		if ri != 0 {
			return mk(li / ri)
		}
	case OpMod:
		if ri != 0 {
			return mk(li % ri)
		}
	case OpBitAnd:
		return mk(li & ri)
	case OpBitOr:
		return mk(li | ri)
	case OpBitXor:
		return mk(li ^ ri)
	case OpShiftL:
		return mk(li << uint(ri))
	case OpShiftR, OpShiftRA:
		return mk(li >> uint(ri))
	case OpEquals:
		return boolExpr(li == ri)
	case OpNotEqual:
		return boolExpr(li != ri)
	case OpLess:
		return boolExpr(li < ri)
	case OpLessEq:
		return boolExpr(li <= ri)
	case OpGtr:
		return boolExpr(li > ri)
	case OpGtrEq:
		return boolExpr(li >= ri)
	}
	return nil
}

func boolExpr(v bool) *Expr {
	if v {
		return True()
	}
	return False()
}

func constFloat(e *Expr) float64 {
	if e.ConstTag == ConstFloat {
		return e.FloatVal
	}
	return float64(e.IntVal)
}

func maxWidth(a, b *Expr) int {
	if a.Width > b.Width {
		return a.Width
	}
	return b.Width
}

// identityElim eliminates x+0, x-0, x*1, x*0, x|0, x&-1 and similar
// algebraic identities.
func identityElim(op Op, l, r *Expr) *Expr {
	isZero := func(e *Expr) bool {
		return e != nil && e.Kind == KindConst && e.ConstTag != ConstFloat && e.IntVal == 0
	}
	isOne := func(e *Expr) bool {
		return e != nil && e.Kind == KindConst && e.ConstTag != ConstFloat && e.IntVal == 1
	}
	switch op {
	case OpPlus:
		if isZero(r) {
			return l
		}
		if isZero(l) {
			return r
		}
	case OpMinus:
		if isZero(r) {
			return l
		}
	case OpMult:
		if isOne(r) {
			return l
		}
		if isOne(l) {
			return r
		}
		if isZero(l) || isZero(r) {
			return IntConst(0, maxWidth(l, r), false)
		}
	case OpBitOr:
		if isZero(r) {
			return l
		}
		if isZero(l) {
			return r
		}
	case OpBitAnd:
		isAllOnes := func(e *Expr) bool {
			return e != nil && e.Kind == KindConst && e.ConstTag != ConstFloat && e.IntVal == -1
		}
		if isAllOnes(r) {
			return l
		}
		if isAllOnes(l) {
			return r
		}
	case OpBitXor:
		if isZero(r) {
			return l
		}
		if isZero(l) {
			return r
		}
	}
	return nil
}

// splitConstOffset decomposes e's spine of top-level Plus/Minus nodes
// with a constant operand into a non-arithmetic base and the net
// offset accumulated against it, e.g. (r28-4)+4 splits into (r28, 0)
// over a chain of length 2. chainLen counts how many such nodes were
// consumed, so a caller can tell "nothing to reassociate" (0 or 1)
// from a genuine multi-level chain worth rewriting.
func splitConstOffset(e *Expr) (base *Expr, offset int64, chainLen int) {
	base = e
	for base != nil && base.Kind == KindBinary && (base.Op == OpPlus || base.Op == OpMinus) {
		r := base.Child(1)
		if r == nil || r.Kind != KindConst || r.ConstTag == ConstFloat {
			break
		}
		delta := r.IntVal
		if base.Op == OpMinus {
			delta = -delta
		}
		offset += delta
		chainLen++
		base = base.Child(0)
	}
	return base, offset, chainLen
}

// reassocConst reassociates a chain of nested constant-offset
// Plus/Minus nodes so a push/pop pair like (base-4)+4 collapses back
// to base, rather than surviving as dead arithmetic the prover (which
// only chases bare Refs) can never see through.
func reassocConst(op Op, l, r *Expr) *Expr {
	if op != OpPlus && op != OpMinus {
		return nil
	}
	base, offset, chainLen := splitConstOffset(Binary(op, l, r))
	if chainLen < 2 {
		return nil
	}
	if offset == 0 {
		return base
	}
	width := l.Width
	if r.Width > width {
		width = r.Width
	}
	unsigned := l.Unsigned || r.Unsigned
	if offset < 0 {
		return Binary(OpMinus, base, IntConst(-offset, width, unsigned))
	}
	return Binary(OpPlus, base, IntConst(offset, width, unsigned))
}

// normalizeAssoc rewrites a+(-b) as a-b and (-a)+b as b-a, a sign-
// carrying associativity normalization.
func normalizeAssoc(op Op, l, r *Expr) *Expr {
	if op == OpPlus {
		if r != nil && r.Kind == KindUnary && r.Op == OpNeg {
			return Binary(OpMinus, l, r.Child(0))
		}
		if l != nil && l.Kind == KindUnary && l.Op == OpNeg {
			return Binary(OpMinus, r, l.Child(0))
		}
	}
	return Binary(op, l, r)
}
