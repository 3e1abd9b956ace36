// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// prove is the cache half of the preservation prover: it answers
// "what value does loc hold immediately after call", in caller
// terms, purely by looking the callee's already-proven equations up
// by location key and localising the result through call's argument
// bindings. It never itself walks a def-use chain — that structural
// recursion is prover's job, run once per procedure by findPreserveds
// so every later bypass through a call to this procedure is an O(1)
// lookup rather than a repeated tree walk. Matches ssaform.ProveFunc.
func (pr *Program) prove(call *stmt.Stmt, loc *exp.Expr) (*exp.Expr, bool) {
	callee, ok := call.DestProc.(*Procedure)
	if !ok || callee == nil {
		return nil, false
	}
	v, ok := callee.Proven[locKey(loc)]
	if !ok {
		return nil, false
	}
	return call.LocaliseExp(v), true
}

// findPreserveds runs prover for every location read at procedure
// entry (p.EntryUseCollector), the middleDecompile step that
// populates p.Proven before this procedure's callers ever need to
// bypass through a call to it. Each query is seeded from the
// location's reaching definition at the procedure's exit (the
// return-collector), not a bare implicit Ref: a genuinely unmodified
// parameter has no reaching def and still seeds as implicit, but a
// location that IS written somewhere on the way to the exit must have
// prover actually walk that def chain rather than trivially matching
// its own entry value.
func (p *Procedure) findPreserveds() {
	if p.ReturnStmt == nil || p.numbering == nil || p.CFG == nil {
		return
	}
	for _, used := range p.EntryUseCollector {
		if used == nil {
			continue
		}
		loc := used
		if used.Kind == exp.KindRef {
			loc = used.Base()
		}
		if loc == nil {
			continue
		}
		key := locKey(loc)
		if _, already := p.Proven[key]; already {
			continue
		}
		if v, ok := p.prover(p.exitRef(loc), passCapASTSearch); ok {
			p.Proven[key] = v
		}
	}
}

// exitRef returns a Ref to loc as reached at the procedure's exit
// block, found by scanning the exit block's own statements backward
// then walking its dominator-tree ancestors the same way, stopping at
// the first statement that defines loc. Returns an implicit Ref (no
// reaching def found, i.e. loc passes through unmodified) otherwise.
func (p *Procedure) exitRef(loc *exp.Expr) *exp.Expr {
	for b := p.CFG.Exit; b != nil; b = b.ImmDom {
		stmts := b.AllStatements()
		for i := len(stmts) - 1; i >= 0; i-- {
			if stmts[i].DefinesLoc(loc) {
				return exp.NewRef(loc, stmts[i])
			}
		}
	}
	return exp.NewRef(loc, nil)
}

// prover is the preservation prover's structural recursion: it shows
// ref's value reduces, through a bounded chain of assigns, phis and
// calls, back to loc's own value at procedure entry. An assign's RHS
// is resolved recursively via resolveSub (constants folding and
// reassociating, memory reads cancelling against their last write
// through cancelMemof) rather than requiring the RHS to already be a
// bare copy, since a push/pop pair of stack-pointer adjustments only
// cancels once both operand chains are walked and combined.
//
// A phi's operands must all agree (recursing with cycle protection
// via p.Premises, which assumes the very fact being proved for the
// duration of the recursion — sound because the final result is only
// cached in p.Proven if every branch of the recursion that consulted
// the premise also terminated in agreement). A call defers to the
// callee's own cached Proven entry. Anything else (a genuine
// computation) fails the proof; running out of budget reports
// ProofGaveUp-shaped failure (not proven, never fatal).
func (p *Procedure) prover(ref *exp.Expr, budget int) (*exp.Expr, bool) {
	if budget <= 0 || ref == nil || ref.Kind != exp.KindRef {
		return nil, false
	}
	loc := ref.Base()
	key := locKey(loc)
	if v, ok := p.Proven[key]; ok {
		return v, true
	}
	if v, ok := p.Premises[key]; ok {
		return v, true
	}

	if ref.Def == nil {
		return loc, true
	}
	def := p.numbering.ResolveDef(ref.Def)
	if def == nil {
		return loc, true
	}

	switch def.Kind {
	case stmt.KindImplicitAssign:
		return loc, true

	case stmt.KindCall:
		callee, ok := def.DestProc.(*Procedure)
		if !ok || callee == nil {
			return nil, false
		}
		v, ok := callee.Proven[key]
		if !ok {
			return nil, false
		}
		return def.LocaliseExp(v), true

	case stmt.KindPhiAssign:
		p.Premises[key] = loc
		defer delete(p.Premises, key)
		var agreed *exp.Expr
		for _, op := range def.PhiOperands {
			if op.Val == nil || op.Val.Kind != exp.KindRef {
				return nil, false
			}
			v, ok := p.prover(op.Val, budget-1)
			if !ok {
				return nil, false
			}
			if agreed == nil {
				agreed = v
			} else if !exp.Equal(agreed, v) {
				return nil, false
			}
		}
		if agreed == nil {
			return nil, false
		}
		return agreed, true

	case stmt.KindAssign:
		if def.RHS == nil {
			return nil, false
		}
		v, ok := p.resolveSub(def.RHS, budget-1)
		if !ok {
			return nil, false
		}
		return trySwapSimplify(v.Simplify()), true

	default:
		return nil, false
	}
}

// resolveSub substitutes every Ref within e with the value prover
// resolves it to, reconstructing every other node shape-for-shape, so
// an assign's RHS of arbitrary shape (not just a bare Ref) can still
// be chased back to its procedure-entry terms. A memOf read is
// special-cased through cancelMemof rather than recursing into its
// address and stopping, since the value of a memory read comes from
// whatever last wrote that address, not from the address expression
// itself.
func (p *Procedure) resolveSub(e *exp.Expr, budget int) (*exp.Expr, bool) {
	if e == nil {
		return nil, true
	}
	if budget <= 0 {
		return nil, false
	}
	switch e.Kind {
	case exp.KindRef:
		return p.prover(e, budget)
	case exp.KindUnary:
		if e.Op == exp.OpMemOf {
			return p.cancelMemof(e.Base(), budget-1)
		}
		c, ok := p.resolveSub(e.Base(), budget-1)
		if !ok {
			return nil, false
		}
		return exp.Unary(e.Op, c), true
	case exp.KindBinary:
		l, ok := p.resolveSub(e.Child(0), budget-1)
		if !ok {
			return nil, false
		}
		r, ok := p.resolveSub(e.Child(1), budget-1)
		if !ok {
			return nil, false
		}
		return exp.Binary(e.Op, l, r).Simplify(), true
	case exp.KindTernary:
		a, ok := p.resolveSub(e.Child(0), budget-1)
		if !ok {
			return nil, false
		}
		b, ok := p.resolveSub(e.Child(1), budget-1)
		if !ok {
			return nil, false
		}
		c, ok := p.resolveSub(e.Child(2), budget-1)
		if !ok {
			return nil, false
		}
		return exp.Ternary(e.Op, a, b, c), true
	case exp.KindTyped:
		c, ok := p.resolveSub(e.Base(), budget-1)
		if !ok {
			return nil, false
		}
		return exp.Typed(e.Type, c), true
	case exp.KindFlagCall:
		args := make([]*exp.Expr, len(e.Args))
		for i, a := range e.Args {
			v, ok := p.resolveSub(a, budget-1)
			if !ok {
				return nil, false
			}
			args[i] = v
		}
		return exp.FlagCall(e.Name, args...), true
	default:
		return e, true
	}
}

// cancelMemof resolves a memory read at addr to the value last
// written to the same raw address, the "memof cancellation" half of
// the preservation prover: memory locations are keyed throughout this
// package by their unsubscripted address form (RenameLocation never
// subscripts a memory assign's own LHS address, only its uses), so a
// write and a later read of the same slot share that raw shape even
// once SSA renaming has subscripted everything around them. Gives up
// if zero or more than one write in the procedure matches.
func (p *Procedure) cancelMemof(addr *exp.Expr, budget int) (*exp.Expr, bool) {
	if addr == nil || p.CFG == nil {
		return nil, false
	}
	var allZero bool
	raw := addr.RemoveSubscripts(&allZero)
	var write *stmt.Stmt
	for _, b := range p.CFG.Blocks {
		for _, s := range b.Statements() {
			if s.Kind != stmt.KindAssign || s.LHS == nil {
				continue
			}
			if s.LHS.Kind != exp.KindUnary || s.LHS.Op != exp.OpMemOf {
				continue
			}
			wAddr := s.LHS.Base().RemoveSubscripts(&allZero)
			if !exp.Equal(wAddr, raw) {
				continue
			}
			if write != nil {
				return nil, false
			}
			write = s
		}
	}
	if write == nil {
		return nil, false
	}
	return p.resolveSub(write.RHS, budget)
}

// trySwapSimplify re-simplifies a top-level commutative Binary with
// its operands swapped once, keeping whichever form is strictly
// smaller. Catches patterns like 4+(r28-4), which reassocConst's
// left-leaning chain walk only collapses as (r28-4)+4.
func trySwapSimplify(e *exp.Expr) *exp.Expr {
	if e == nil || e.Kind != exp.KindBinary || !commutativeOp(e.Op) {
		return e
	}
	swapped := exp.Binary(e.Op, e.Child(1), e.Child(0)).Simplify()
	if exprSize(swapped) < exprSize(e) {
		return swapped
	}
	return e
}

func commutativeOp(op exp.Op) bool {
	switch op {
	case exp.OpPlus, exp.OpMult, exp.OpBitAnd, exp.OpBitOr, exp.OpBitXor, exp.OpEquals, exp.OpNotEqual:
		return true
	}
	return false
}

func exprSize(e *exp.Expr) int {
	if e == nil {
		return 0
	}
	n := 1
	for _, k := range e.Kids {
		n += exprSize(k)
	}
	for _, a := range e.Args {
		n += exprSize(a)
	}
	return n
}
