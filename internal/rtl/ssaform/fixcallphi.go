// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// ProveFunc is the preservation prover's call-site shape, threaded
// through from proc so ssaform never depends on the procedure driver
// (bypassRef).
type ProveFunc func(call *stmt.Stmt, loc *exp.Expr) (*exp.Expr, bool)

// FixCallAndPhiRefs runs the three-phase pass: collapse
// self-referential/trivial phi operands and bypass the rest through
// calls, bypass every ordinary statement's Refs through calls, and
// bypass the procedure's entry use-collector the same way. Reports
// whether anything changed.
func FixCallAndPhiRefs(c *cfg.CFG, n *Numbering, entryUseCollector []*exp.Expr, prove ProveFunc) bool {
	changed := false

	// Phase 1: phi operand cleanup + bypass.
	for _, b := range c.Blocks {
		for i := 0; i < len(b.Phis); i++ {
			ps := b.Phis[i]
			if fixPhi(ps, n, prove) {
				changed = true
			}
			if collapsed, ok := collapseIfUniform(ps, n); ok {
				b.Phis[i] = collapsed
				n.table[collapsed.Number] = collapsed
				changed = true
			}
		}
	}

	// Phase 2: ordinary statements.
	for _, b := range c.Blocks {
		for _, s := range b.Statements() {
			if s.Bypass(n, prove) {
				changed = true
			}
		}
	}

	// Phase 3: entry use-collector.
	for i, e := range entryUseCollector {
		if e == nil || e.Kind != exp.KindRef {
			continue
		}
		if def := n.ResolveDef(e.Def); def != nil && def.Kind == stmt.KindCall {
			if val, ok := prove(def, e.Base()); ok {
				entryUseCollector[i] = val.Clone()
				changed = true
			}
		}
	}
	return changed
}

// fixPhi removes operands whose def is ps itself (the phi feeding
// back into its own result around a loop) or whose def is a trivial
// Assign(LHS := LHS), then bypasses every remaining operand through
// calls.
func fixPhi(ps *stmt.Stmt, n *Numbering, prove ProveFunc) bool {
	changed := false
	for pred, op := range ps.PhiOperands {
		if op.Val == nil {
			continue
		}
		if op.Val.Kind == exp.KindRef && n.ResolveDef(op.Def) == ps {
			delete(ps.PhiOperands, pred)
			changed = true
			continue
		}
		if def := n.ResolveDef(op.Def); def != nil && def.Kind == stmt.KindAssign && exp.Equal(def.RHS, ps.LHS) {
			delete(ps.PhiOperands, pred)
			changed = true
			continue
		}
		if def := n.ResolveDef(op.Def); def != nil && def.Kind == stmt.KindCall {
			if val, ok := prove(def, op.Val.Base()); ok {
				op.Val = val.Clone()
				changed = true
			}
		}
	}
	return changed
}

// collapseIfUniform replaces ps with a plain Assign when every
// surviving operand names the same value, preferring an implicit
// operand over an ordinary assign over a call as the "best" source to
// keep ("best operand chosen from {implicit > ordinary
// assign > call}").
func collapseIfUniform(ps *stmt.Stmt, n *Numbering) (*stmt.Stmt, bool) {
	if ps.Kind != stmt.KindPhiAssign || len(ps.PhiOperands) == 0 {
		return ps, false
	}
	var first *exp.Expr
	uniform := true
	for _, op := range ps.PhiOperands {
		if op.Val == nil {
			return ps, false
		}
		if first == nil {
			first = op.Val
			continue
		}
		if !exp.Equal(first, op.Val) {
			uniform = false
			break
		}
	}
	if !uniform {
		return ps, false
	}
	best := bestOperand(ps, n)
	out := stmt.NewAssign(ps.Type, ps.LHS, best.Clone())
	out.Number = ps.Number
	out.BB = ps.BB
	out.Proc = ps.Proc
	return out, true
}

// bestOperand picks the uniform phi's representative operand,
// preferring an implicit (entry) definition over an ordinary
// assignment over a call result, in that order.
func bestOperand(ps *stmt.Stmt, n *Numbering) *exp.Expr {
	var bestVal *exp.Expr
	bestRank := -1
	for _, op := range ps.PhiOperands {
		rank := 2 // implicit (no resolvable def, or a KindImplicitAssign def)
		if def := n.ResolveDef(op.Def); def != nil {
			switch def.Kind {
			case stmt.KindCall:
				rank = 0
			case stmt.KindImplicitAssign:
				rank = 2
			default:
				rank = 1
			}
		}
		if rank > bestRank {
			bestRank = rank
			bestVal = op.Val
		}
	}
	return bestVal
}
