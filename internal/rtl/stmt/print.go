// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements Stmt.String(), following the convention of isolating debug rendering from construction/algebra.
package stmt

import "fmt"

func (s *Stmt) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.Kind {
	case KindAssign:
		return fmt.Sprintf("%d: %s := %s", s.Number, s.LHS, s.RHS)
	case KindImplicitAssign:
		return fmt.Sprintf("%d: %s := <implicit>", s.Number, s.LHS)
	case KindBoolAssign:
		return fmt.Sprintf("%d: %s := (%s)", s.Number, s.LHS, s.Cond)
	case KindPhiAssign:
		return fmt.Sprintf("%d: %s := phi(%d operands)", s.Number, s.LHS, len(s.PhiOperands))
	case KindCall:
		return fmt.Sprintf("%d: CALL %s", s.Number, s.DestExpr)
	case KindBranch:
		return fmt.Sprintf("%d: BRANCH %s if %s", s.Number, s.BranchDest, s.BranchCond)
	case KindCase:
		return fmt.Sprintf("%d: CASE on %s", s.Number, s.CaseDest)
	case KindReturn:
		return fmt.Sprintf("%d: RETURN %v", s.Number, s.Returns)
	case KindGoto:
		return fmt.Sprintf("%d: GOTO %s", s.Number, s.GotoDest)
	case KindImpRef:
		return fmt.Sprintf("%d: IMPREF %s : %s", s.Number, s.ImpRefAddr, s.ImpRefType)
	}
	return "?stmt"
}
