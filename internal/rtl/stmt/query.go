// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

// DefinesLoc reports whether s defines loc.
func (s *Stmt) DefinesLoc(loc *exp.Expr) bool {
	var defs []*exp.Expr
	s.GetDefinitions(&defs)
	for _, d := range defs {
		if exp.Equal(d, loc) {
			return true
		}
	}
	return false
}

// GetDefinitions appends every location s defines into out.
func (s *Stmt) GetDefinitions(out *[]*exp.Expr) {
	switch s.Kind {
	case KindAssign, KindImplicitAssign, KindBoolAssign, KindPhiAssign:
		if s.LHS != nil {
			*out = append(*out, s.LHS)
		}
	case KindCall:
		*out = append(*out, s.Defines...)
	case KindReturn:
		// A return defines nothing new; its Modifieds reflect what was
		// already defined upstream.
	}
}

// GetTypeFor returns the type currently recorded for loc at this
// statement, or nil if none is annotated.
func (s *Stmt) GetTypeFor(loc *exp.Expr) *dtype.Type {
	switch s.Kind {
	case KindAssign, KindImplicitAssign, KindBoolAssign, KindPhiAssign:
		if exp.Equal(s.LHS, loc) {
			return s.Type
		}
	case KindImpRef:
		if exp.Equal(s.ImpRefAddr, loc) {
			return s.ImpRefType
		}
	}
	return nil
}

// SetTypeFor meets the recorded type for loc with ty.
func (s *Stmt) SetTypeFor(loc *exp.Expr, ty *dtype.Type) {
	switch s.Kind {
	case KindAssign, KindImplicitAssign, KindBoolAssign, KindPhiAssign:
		if exp.Equal(s.LHS, loc) {
			s.Type = dtype.Meet(s.Type, ty)
		}
	case KindImpRef:
		if exp.Equal(s.ImpRefAddr, loc) {
			s.ImpRefType = dtype.Meet(s.ImpRefType, ty)
		}
	}
}

// UsesExp reports whether s consumes loc anywhere in its operands.
func (s *Stmt) UsesExp(loc *exp.Expr) bool {
	var used []*exp.Expr
	s.AddUsedLocs(&used, true)
	for _, u := range used {
		if exp.Equal(u, loc) {
			return true
		}
	}
	return false
}

// AddUsedLocs appends every subscripted location s consumes into out
//: call statements walk their arguments and (if
// useCollectorsToo) their use-collector; phi-assigns walk their
// operands; ordinary assigns walk their RHS only, never their LHS.
func (s *Stmt) AddUsedLocs(out *[]*exp.Expr, useCollectorsToo bool) {
	add := func(e *exp.Expr) {
		collectRefs(e, out)
	}
	switch s.Kind {
	case KindAssign:
		add(s.RHS)
	case KindBoolAssign:
		add(s.Cond)
	case KindImplicitAssign, KindImpRef:
		// No use: these are synthetic definitions/notes.
	case KindPhiAssign:
		for _, op := range s.PhiOperands {
			add(op.Val)
		}
	case KindCall:
		add(s.DestExpr)
		for _, a := range s.Arguments {
			add(a.RHS)
		}
		if useCollectorsToo {
			for _, u := range s.UseCollector {
				add(u)
			}
		}
	case KindBranch:
		add(s.BranchCond)
	case KindCase:
		add(s.CaseDest)
	case KindReturn:
		for _, r := range s.Returns {
			add(r)
		}
	case KindGoto:
		add(s.GotoDest)
	}
}

// collectRefs walks e and appends the base of every Ref found (a
// "subscripted location",) into out.
func collectRefs(e *exp.Expr, out *[]*exp.Expr) {
	e.Accept(exp.VisitFunc(func(sub *exp.Expr) bool {
		if sub.Kind == exp.KindRef {
			if !containsExpr(*out, sub.Base()) {
				*out = append(*out, sub.Base())
			}
		}
		return true
	}))
}
