// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// Visitor is the double-dispatch pre-visit interface: PreVisit
// returns false to short-circuit the traversal below this node.
type Visitor interface {
	PreVisit(e *Expr) bool
}

// VisitFunc adapts a plain func into a Visitor.
type VisitFunc func(e *Expr) bool

func (f VisitFunc) PreVisit(e *Expr) bool { return f(e) }

// Modifier is the double-dispatch post-visit interface that may
// rewrite a node on the way back up ("accept(modifier)").
type Modifier interface {
	PostVisit(e *Expr) *Expr
}

// ModifyFunc adapts a plain func into a Modifier.
type ModifyFunc func(e *Expr) *Expr

func (f ModifyFunc) PostVisit(e *Expr) *Expr { return f(e) }

// Accept performs a pre-order traversal, calling v.PreVisit on each
// node; if PreVisit returns false the node's children are skipped.
func (e *Expr) Accept(v Visitor) {
	if e == nil {
		return
	}
	if !v.PreVisit(e) {
		return
	}
	for _, k := range e.Kids {
		k.Accept(v)
	}
	for _, a := range e.Args {
		a.Accept(v)
	}
}

// AcceptModifier performs a post-order traversal rewriting each node
// bottom-up via m.PostVisit, returning the rewritten tree.
func (e *Expr) AcceptModifier(m Modifier) *Expr {
	if e == nil {
		return nil
	}
	c := e.Clone()
	for i, k := range e.Kids {
		c.Kids[i] = k.AcceptModifier(m)
	}
	for i, a := range e.Args {
		c.Args[i] = a.AcceptModifier(m)
	}
	return m.PostVisit(c)
}
