// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import "github.com/5l1v3r1/boomerang-go/internal/rtl/exp"

// DefResolver looks a Ref's defining statement back up by identity,
// letting PropagateTo/Bypass inspect the def's own Kind and RHS
// without stmt depending on the procedure/CFG layer that owns the
// statement table (ssaform and proc implement this over their own
// per-procedure statement arenas).
type DefResolver interface {
	ResolveDef(ref exp.StmtRef) *Stmt
}

// locKey gives a string identity for a location good enough to use as
// a map key for budgets and dominating-phi-use sets; it collapses
// distinct-but-equal locations together, which is exactly what those
// sets want.
func locKey(e *exp.Expr) string { return e.String() }

// PropagateTo performs an in-place substitution: for every Ref within
// s's used operands whose def resolves (via resolver) to a single
// reaching simple Assign, replace
// the Ref with that Assign's RHS, provided:
//
//   - the def is an ordinary Assign, never a Call or PhiAssign;
//   - the def's location is not in usedByDomPhi (a live dominating
//     phi's operand — propagating it away would orphan the phi);
//   - budget[def] allows at least one more copy, decremented on use,
//     a conservative guard against unbounded term growth from
//     propagating one def into many use sites.
//
// Reports whether anything changed.
func (s *Stmt) PropagateTo(resolver DefResolver, budget map[int]int, usedByDomPhi map[string]bool) bool {
	changed := false
	apply := func(e *exp.Expr) *exp.Expr {
		return propagateExpr(e, resolver, budget, usedByDomPhi, &changed)
	}
	switch s.Kind {
	case KindAssign:
		s.RHS = apply(s.RHS)
	case KindBoolAssign:
		s.Cond = apply(s.Cond)
	case KindCall:
		s.DestExpr = apply(s.DestExpr)
		for _, a := range s.Arguments {
			a.RHS = apply(a.RHS)
		}
	case KindBranch:
		s.BranchCond = apply(s.BranchCond)
	case KindCase:
		s.CaseDest = apply(s.CaseDest)
	case KindReturn:
		for i, r := range s.Returns {
			s.Returns[i] = apply(r)
		}
	case KindGoto:
		s.GotoDest = apply(s.GotoDest)
	}
	return changed
}

func propagateExpr(e *exp.Expr, resolver DefResolver, budget map[int]int, usedByDomPhi map[string]bool, changed *bool) *exp.Expr {
	if e == nil {
		return nil
	}
	if e.Kind == exp.KindRef {
		if def := resolver.ResolveDef(e.Def); def != nil && def.Kind == KindAssign {
			key := locKey(def.LHS)
			if !usedByDomPhi[key] && budget[def.Number] > 0 {
				budget[def.Number]--
				*changed = true
				return def.RHS.Clone()
			}
		}
		return e
	}
	switch e.Kind {
	case exp.KindUnary:
		return exp.Unary(e.Op, propagateExpr(e.Base(), resolver, budget, usedByDomPhi, changed))
	case exp.KindBinary:
		return exp.Binary(e.Op,
			propagateExpr(e.Child(0), resolver, budget, usedByDomPhi, changed),
			propagateExpr(e.Child(1), resolver, budget, usedByDomPhi, changed))
	case exp.KindTernary:
		return exp.Ternary(e.Op,
			propagateExpr(e.Child(0), resolver, budget, usedByDomPhi, changed),
			propagateExpr(e.Child(1), resolver, budget, usedByDomPhi, changed),
			propagateExpr(e.Child(2), resolver, budget, usedByDomPhi, changed))
	case exp.KindTyped:
		return exp.Typed(e.Type, propagateExpr(e.Base(), resolver, budget, usedByDomPhi, changed))
	case exp.KindFlagCall:
		args := make([]*exp.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = propagateExpr(a, resolver, budget, usedByDomPhi, changed)
		}
		return exp.FlagCall(e.Name, args...)
	case exp.KindLocation:
		addr := e.Base()
		if addr == nil {
			return e
		}
		return exp.Location(e.LocKind, propagateExpr(addr, resolver, budget, usedByDomPhi, changed), e.LocName, e.Proc)
	default:
		return e
	}
}

// Bypass rewrites every Ref in s whose target is a call that proves
// its base preserved, replacing the Ref with the proven value
// expressed in reaching-defs, repeating to a fixpoint.
// proveFn mirrors CallStatement.bypassRef: given the call statement
// and the location being referenced, it returns the caller-side value
// the call proves that location equals, or ok=false.
func (s *Stmt) Bypass(resolver DefResolver, proveFn func(call *Stmt, loc *exp.Expr) (*exp.Expr, bool)) bool {
	changed := false
	for {
		roundChanged := false
		apply := func(e *exp.Expr) *exp.Expr {
			return bypassExpr(e, resolver, proveFn, &roundChanged)
		}
		switch s.Kind {
		case KindAssign:
			s.RHS = apply(s.RHS)
		case KindBoolAssign:
			s.Cond = apply(s.Cond)
		case KindCall:
			for _, a := range s.Arguments {
				a.RHS = apply(a.RHS)
			}
		case KindBranch:
			s.BranchCond = apply(s.BranchCond)
		case KindReturn:
			for i, r := range s.Returns {
				s.Returns[i] = apply(r)
			}
		}
		if !roundChanged {
			return changed
		}
		changed = true
	}
}

func bypassExpr(e *exp.Expr, resolver DefResolver, proveFn func(*Stmt, *exp.Expr) (*exp.Expr, bool), changed *bool) *exp.Expr {
	if e == nil {
		return nil
	}
	if e.Kind == exp.KindRef {
		if def := resolver.ResolveDef(e.Def); def != nil && def.Kind == KindCall {
			if val, ok := proveFn(def, e.Base()); ok {
				*changed = true
				return val.Clone()
			}
		}
		return e
	}
	switch e.Kind {
	case exp.KindUnary:
		return exp.Unary(e.Op, bypassExpr(e.Base(), resolver, proveFn, changed))
	case exp.KindBinary:
		return exp.Binary(e.Op,
			bypassExpr(e.Child(0), resolver, proveFn, changed),
			bypassExpr(e.Child(1), resolver, proveFn, changed))
	case exp.KindTernary:
		return exp.Ternary(e.Op,
			bypassExpr(e.Child(0), resolver, proveFn, changed),
			bypassExpr(e.Child(1), resolver, proveFn, changed),
			bypassExpr(e.Child(2), resolver, proveFn, changed))
	case exp.KindTyped:
		return exp.Typed(e.Type, bypassExpr(e.Base(), resolver, proveFn, changed))
	case exp.KindFlagCall:
		args := make([]*exp.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = bypassExpr(a, resolver, proveFn, changed)
		}
		return exp.FlagCall(e.Name, args...)
	case exp.KindLocation:
		addr := e.Base()
		if addr == nil {
			return e
		}
		return exp.Location(e.LocKind, bypassExpr(addr, resolver, proveFn, changed), e.LocName, e.Proc)
	default:
		return e
	}
}
