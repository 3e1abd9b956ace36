// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

// Simplify simplifies every contained Expr in place by replacing it
// with its Simplify()'d form; never fails.
func (s *Stmt) Simplify() {
	switch s.Kind {
	case KindAssign, KindImplicitAssign, KindBoolAssign, KindPhiAssign:
		s.LHS = s.LHS.Simplify()
		if s.Kind == KindBoolAssign {
			s.Cond = s.Cond.Simplify()
		}
		if s.Kind == KindAssign {
			s.RHS = s.RHS.Simplify()
		}
		if s.Kind == KindPhiAssign {
			for _, op := range s.PhiOperands {
				op.Val = op.Val.Simplify()
			}
		}
	case KindCall:
		s.DestExpr = s.DestExpr.Simplify()
		for _, a := range s.Arguments {
			a.Simplify()
		}
	case KindBranch:
		s.BranchCond = s.BranchCond.Simplify()
		s.BranchDest = s.BranchDest.Simplify()
	case KindCase:
		s.CaseDest = s.CaseDest.Simplify()
	case KindReturn:
		for i, r := range s.Returns {
			s.Returns[i] = r.Simplify()
		}
	case KindGoto:
		s.GotoDest = s.GotoDest.Simplify()
	case KindImpRef:
		s.ImpRefAddr = s.ImpRefAddr.Simplify()
	}
}
