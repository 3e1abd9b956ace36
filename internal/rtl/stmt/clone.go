// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

// Clone deep-copies s, including every contained Expr, so mutating the
// clone never mutates the original.
func (s *Stmt) Clone() *Stmt {
	if s == nil {
		return nil
	}
	c := *s
	c.Type = s.Type.Clone()
	c.LHS = s.LHS.Clone()
	c.RHS = s.RHS.Clone()
	c.Cond = s.Cond.Clone()
	if s.PhiOperands != nil {
		c.PhiOperands = make(map[int]*PhiOperand, len(s.PhiOperands))
		for k, v := range s.PhiOperands {
			c.PhiOperands[k] = &PhiOperand{Def: v.Def, Val: v.Val.Clone()}
		}
	}
	c.DestExpr = s.DestExpr.Clone()
	if s.Arguments != nil {
		c.Arguments = make([]*Stmt, len(s.Arguments))
		for i, a := range s.Arguments {
			c.Arguments[i] = a.Clone()
		}
	}
	c.Defines = cloneExprSlice(s.Defines)
	c.UseCollector = cloneExprSlice(s.UseCollector)
	c.DefCollector = cloneExprSlice(s.DefCollector)
	c.BranchDest = s.BranchDest.Clone()
	c.BranchCond = s.BranchCond.Clone()
	c.CaseDest = s.CaseDest.Clone()
	c.Modifieds = cloneExprSlice(s.Modifieds)
	c.Returns = cloneExprSlice(s.Returns)
	c.Reaching = cloneExprSlice(s.Reaching)
	c.GotoDest = s.GotoDest.Clone()
	c.ImpRefAddr = s.ImpRefAddr.Clone()
	c.ImpRefType = s.ImpRefType.Clone()
	return &c
}
