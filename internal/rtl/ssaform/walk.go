// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// operandExprs returns every top-level expression field a statement's
// Kind uses, LHS excluded, so callers can walk down into Refs without
// re-deriving the per-Kind field list at every call site.
func operandExprs(s *stmt.Stmt) []*exp.Expr {
	switch s.Kind {
	case stmt.KindAssign:
		return []*exp.Expr{s.RHS}
	case stmt.KindBoolAssign:
		return []*exp.Expr{s.Cond}
	case stmt.KindCall:
		out := []*exp.Expr{s.DestExpr}
		for _, a := range s.Arguments {
			out = append(out, a.RHS)
		}
		return out
	case stmt.KindBranch:
		return []*exp.Expr{s.BranchCond}
	case stmt.KindCase:
		return []*exp.Expr{s.CaseDest}
	case stmt.KindReturn:
		return s.Returns
	case stmt.KindGoto:
		return []*exp.Expr{s.GotoDest}
	case stmt.KindPhiAssign:
		var out []*exp.Expr
		for _, op := range s.PhiOperands {
			out = append(out, op.Val)
		}
		return out
	default:
		return nil
	}
}

// forEachRef calls fn on every KindRef node reachable from s's operand
// expressions.
func forEachRef(s *stmt.Stmt, fn func(ref *exp.Expr)) {
	for _, e := range operandExprs(s) {
		e.Accept(exp.VisitFunc(func(sub *exp.Expr) bool {
			if sub.Kind == exp.KindRef {
				fn(sub)
			}
			return true
		}))
	}
}
