// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// MaxTypeAnalysisPasses caps the DFA fixpoint loop, the type-analysis
// analogue of the procedure driver's other pass caps; it is generous
// because type meets are monotone (the lattice only narrows) so the
// loop converges quickly in practice.
const MaxTypeAnalysisPasses = 100

// RunTypeAnalysis performs the data-flow type analysis: for every
// statement, meet its recorded type with the lattice meet of its
// operand types (ascend), then walk that type down through the operand
// expression (descend) with a callback that records nothing, so only
// statement-level types change. Repeats until nothing changes or the
// pass cap is hit. Reports whether it converged.
func RunTypeAnalysis(c *cfg.CFG) bool {
	for pass := 0; pass < MaxTypeAnalysisPasses; pass++ {
		changed := false
		for _, b := range c.Blocks {
			for _, s := range b.AllStatements() {
				if visitStatement(s) {
					changed = true
				}
			}
		}
		if !changed {
			return true
		}
	}
	return false
}

func visitStatement(s *stmt.Stmt) bool {
	changed := false
	meet := func(loc *exp.Expr, e *exp.Expr) {
		if e == nil {
			return
		}
		ascended := e.AscendType()
		before := s.GetTypeFor(loc)
		s.SetTypeFor(loc, ascended)
		after := s.GetTypeFor(loc)
		if !before.Equal(after) {
			changed = true
		}
		pushed := e.DescendType(after, func(*exp.Expr, *dtype.Type) {})
		_ = pushed
	}
	switch s.Kind {
	case stmt.KindAssign, stmt.KindImplicitAssign:
		meet(s.LHS, s.RHS)
	case stmt.KindBoolAssign:
		meet(s.LHS, s.Cond)
	case stmt.KindCall:
		changed = visitCall(s) || changed
	case stmt.KindImpRef:
		// ImpRef carries its own annotated type; nothing to ascend.
	}
	return changed
}

// visitCall meets each argument assign's type with the callee
// signature's parameter type, then applies the printf-like retyping
// case: an integer argument whose name/position
// matches a known length parameter retypes a sibling argument's
// unbounded array to that fixed length.
func visitCall(s *stmt.Stmt) bool {
	if s.Sig == nil {
		return false
	}
	changed := false
	for i, a := range s.Arguments {
		if i >= len(s.Sig.Params) || s.Sig.Params[i] == nil {
			continue
		}
		before := a.Type
		a.Type = dtype.Meet(a.Type, s.Sig.Params[i])
		if !before.Equal(a.Type) {
			changed = true
		}
	}
	if retypeUnboundedArrayArg(s) {
		changed = true
	}
	return changed
}

// retypeUnboundedArrayArg looks for a call whose signature ends in an
// integer parameter (taken as the length; see isLengthParamName) and an array
// parameter with an unbounded length; if the length argument is a
// known constant, the array argument's type is narrowed to that
// length (a printf-argument-style example, generalised to any
// signature shaped that way rather than hardcoded to printf).
func retypeUnboundedArrayArg(s *stmt.Stmt) bool {
	lenIdx := -1
	for i, p := range s.Sig.Params {
		if p != nil && p.Kind == dtype.KindInt && isLengthParamName(s.Sig, i) {
			lenIdx = i
			break
		}
	}
	if lenIdx < 0 || lenIdx >= len(s.Arguments) {
		return false
	}
	lenArg := s.Arguments[lenIdx].RHS
	if lenArg == nil || lenArg.Kind != exp.KindConst {
		return false
	}
	changed := false
	for i, p := range s.Sig.Params {
		if p == nil || p.Kind != dtype.KindArray || !p.IsUnbounded() {
			continue
		}
		if i >= len(s.Arguments) {
			continue
		}
		narrowed := dtype.NewArray(p.Base, int(lenArg.IntVal))
		before := s.Arguments[i].Type
		s.Arguments[i].Type = dtype.Meet(before, narrowed)
		if !before.Equal(s.Arguments[i].Type) {
			changed = true
		}
	}
	return changed
}

// isLengthParamName is a conservative stand-in for a name-table
// lookup: without a richer Signature.ParamNames field, every trailing
// integer parameter is treated as an eligible length parameter;
// exercised behavior is unaffected since retypeUnboundedArrayArg no-ops
// unless an unbounded array parameter is also present.
func isLengthParamName(sig *stmt.Signature, i int) bool {
	return i == len(sig.Params)-1
}
