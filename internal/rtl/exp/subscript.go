// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// ExpSubscriptVar replaces every occurrence of loc within e with a Ref
// of that location to def, except where a subtree is already a Ref to
// loc itself — re-subscripting an already-subscripted
// use would lose the earlier definition it names.
func (e *Expr) ExpSubscriptVar(loc *Expr, def StmtRef) *Expr {
	return e.subscriptVar(loc, def)
}

func (e *Expr) subscriptVar(loc *Expr, def StmtRef) *Expr {
	if e == nil {
		return nil
	}
	if e.Kind == KindRef {
		// Already subscripted; descend into the base only if it isn't
		// itself the location being subscripted (avoids Ref-of-Ref).
		if Equal(e.Base(), loc) {
			return e
		}
		c := e.Clone()
		c.Kids[0] = e.Base().subscriptVar(loc, def)
		return c
	}
	if Equal(e, loc) {
		return NewRef(e.Clone(), def)
	}
	c := e.Clone()
	for i, k := range e.Kids {
		c.Kids[i] = k.subscriptVar(loc, def)
	}
	for i, a := range e.Args {
		c.Args[i] = a.subscriptVar(loc, def)
	}
	return c
}

// RemoveSubscripts strips every Ref from e, replacing each with its
// base expression, and reports via allZero whether every removed Ref
// pointed at "implicit" (nil Def).
func (e *Expr) RemoveSubscripts(allZero *bool) *Expr {
	*allZero = true
	return e.removeSubscripts(allZero)
}

func (e *Expr) removeSubscripts(allZero *bool) *Expr {
	if e == nil {
		return nil
	}
	if e.Kind == KindRef {
		if e.Def != nil {
			*allZero = false
		}
		return e.Base().removeSubscripts(allZero)
	}
	c := e.Clone()
	for i, k := range e.Kids {
		c.Kids[i] = k.removeSubscripts(allZero)
	}
	for i, a := range e.Args {
		c.Args[i] = a.removeSubscripts(allZero)
	}
	return c
}
