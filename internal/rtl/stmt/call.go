// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import "github.com/5l1v3r1/boomerang-go/internal/rtl/exp"

// UpdateArguments regenerates s.Arguments from the callee signature
// and the reaching-defs collector, keeping the existing argument
// statement at every position that already has one.
func (s *Stmt) UpdateArguments(reaching []*exp.Expr) {
	if s.Kind != KindCall || s.Sig == nil {
		return
	}
	existing := make(map[int]*Stmt, len(s.Arguments))
	for i, a := range s.Arguments {
		existing[i] = a
	}
	out := make([]*Stmt, len(s.Sig.Params))
	for i := range s.Sig.Params {
		if old, ok := existing[i]; ok {
			out[i] = old
			continue
		}
		var rhs *exp.Expr
		if i < len(reaching) {
			rhs = reaching[i]
		} else {
			rhs = exp.Wild()
		}
		out[i] = NewAssign(s.Sig.Params[i], exp.Wild(), rhs)
	}
	s.Arguments = out
}

// UpdateDefines sets s.Defines to the callee's modifieds intersected
// with what is live after this call; for a childless call (no callee
// return statement) defines become everything live at the call
//.
func (s *Stmt) UpdateDefines(calleeModifieds []*exp.Expr, liveAfter []*exp.Expr) {
	if s.CalleeReturn == nil {
		s.Defines = intersect(liveAfter, liveAfter)
		return
	}
	s.Defines = intersect(calleeModifieds, liveAfter)
}

func intersect(a, b []*exp.Expr) []*exp.Expr {
	var out []*exp.Expr
	for _, x := range a {
		if containsExpr(b, x) && !containsExpr(out, x) {
			out = append(out, x)
		}
	}
	return out
}

// LocaliseExp rewrites e from callee-side into caller-side by
// substituting each matching argument location with its reaching
// definition at this call site.
func (s *Stmt) LocaliseExp(e *exp.Expr) *exp.Expr {
	out := e
	for _, a := range s.Arguments {
		var changed bool
		out = out.SearchReplaceAll(a.LHS, a.RHS, &changed)
	}
	return out
}

// BypassRef returns the caller-side value the call proves ref's base
// equal to, or ref unchanged with ok=false. proveFn is
// the preservation prover: given (call, loc) it returns the proven
// value in caller terms, if any.
func (s *Stmt) BypassRef(ref *exp.Expr, proveFn func(call *Stmt, loc *exp.Expr) (*exp.Expr, bool)) (*exp.Expr, bool) {
	if s.Kind != KindCall {
		return ref, false
	}
	return proveFn(s, ref.Base())
}

// CalcResults returns s.Defines intersected with what's live after the
// call: what the caller sees as "produced" by this call.
func (s *Stmt) CalcResults(liveAfter []*exp.Expr) []*exp.Expr {
	return intersect(s.Defines, liveAfter)
}
