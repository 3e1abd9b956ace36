// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// Search finds the first subtree of e matching pattern (Equal modulo
// wildcards) and reports it through out, returning whether a match was
// found. On no match, *out is left nil.
func (e *Expr) Search(pattern *Expr, out **Expr) bool {
	var found *Expr
	e.Accept(VisitFunc(func(sub *Expr) bool {
		if found != nil {
			return false
		}
		if Equal(sub, pattern) {
			found = sub
			return false
		}
		return true
	}))
	*out = found
	return found != nil
}

// SearchAll finds every subtree matching pattern, collecting them into
// out in pre-order.
func (e *Expr) SearchAll(pattern *Expr, out *[]*Expr) bool {
	e.Accept(VisitFunc(func(sub *Expr) bool {
		if Equal(sub, pattern) {
			*out = append(*out, sub)
		}
		return true
	}))
	return len(*out) > 0
}

// SearchReplaceAll returns a new tree with every match of pattern
// replaced by replacement, reporting through changed whether anything
// was substituted.
func (e *Expr) SearchReplaceAll(pattern, replacement *Expr, changed *bool) *Expr {
	result := e.replaceAll(pattern, replacement, changed)
	return result
}

func (e *Expr) replaceAll(pattern, replacement *Expr, changed *bool) *Expr {
	if e == nil {
		return nil
	}
	if Equal(e, pattern) {
		*changed = true
		return replacement.Clone()
	}
	switch e.Kind {
	case KindUnary:
		return Unary(e.Op, e.Base().replaceAll(pattern, replacement, changed))
	case KindBinary:
		return Binary(e.Op, e.Child(0).replaceAll(pattern, replacement, changed), e.Child(1).replaceAll(pattern, replacement, changed))
	case KindTernary:
		return Ternary(e.Op,
			e.Child(0).replaceAll(pattern, replacement, changed),
			e.Child(1).replaceAll(pattern, replacement, changed),
			e.Child(2).replaceAll(pattern, replacement, changed))
	case KindTyped:
		return Typed(e.Type, e.Base().replaceAll(pattern, replacement, changed))
	case KindRef:
		return NewRef(e.Base().replaceAll(pattern, replacement, changed), e.Def)
	case KindFlagCall:
		args := make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = a.replaceAll(pattern, replacement, changed)
		}
		return FlagCall(e.Name, args...)
	case KindLocation:
		c := e.Clone()
		if base := e.Base(); base != nil {
			c.Kids = []*Expr{base.replaceAll(pattern, replacement, changed)}
		}
		return c
	default:
		return e.Clone()
	}
}
