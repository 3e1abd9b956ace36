// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// domChildren groups every BB by its immediate dominator, giving the
// dominator-tree adjacency the rename walk descends.
func domChildren(c *cfg.CFG) map[*cfg.BasicBlock][]*cfg.BasicBlock {
	out := map[*cfg.BasicBlock][]*cfg.BasicBlock{}
	for _, b := range c.Blocks {
		if b.ImmDom == nil || b == c.Entry {
			continue
		}
		out[b.ImmDom] = append(out[b.ImmDom], b)
	}
	return out
}

// RenameLocation performs the "classic dominator-tree walk
// with a stack-per-location" for a single location: entering a block,
// it rewrites every use of loc to a Ref of the current top-of-stack
// definition, pushes new versions for each definition in the block
// (including phis), fills in this block's contribution to every
// successor phi for loc, recurses into dominator-tree children, then
// restores the stack on the way back out. c's dominator tree
// (ImmDom) must already be computed.
func RenameLocation(c *cfg.CFG, loc *exp.Expr, n *Numbering) {
	key := locKey(loc)
	children := domChildren(c)
	stack := []exp.StmtRef{nil}

	var walk func(b *cfg.BasicBlock)
	walk = func(b *cfg.BasicBlock) {
		pushed := 0
		for _, phi := range b.Phis {
			if locKey(phi.LHS) == key {
				stack = append(stack, phi)
				pushed++
			}
		}
		for _, s := range b.Statements() {
			top := stack[len(stack)-1]
			rewriteUses(s, loc, top)
			if s.DefinesLoc(loc) {
				stack = append(stack, s)
				pushed++
			}
		}
		top := stack[len(stack)-1]
		for _, succ := range b.Succs {
			for _, phi := range succ.Phis {
				if locKey(phi.LHS) == key {
					phi.SetOperand(b, top, refFor(loc, top))
				}
			}
		}
		for _, ch := range children[b] {
			walk(ch)
		}
		stack = stack[:len(stack)-pushed]
	}
	if c.Entry != nil {
		walk(c.Entry)
	}
}

func refFor(loc *exp.Expr, def exp.StmtRef) *exp.Expr {
	return exp.NewRef(loc.Clone(), def)
}

// rewriteUses subscripts every occurrence of loc within s's used
// (non-defined) operands to def, leaving LHS/def-only fields alone
// (only uses get wrapped, not the defining location).
func rewriteUses(s *stmt.Stmt, loc *exp.Expr, def exp.StmtRef) {
	sub := func(e *exp.Expr) *exp.Expr {
		if e == nil {
			return nil
		}
		return e.ExpSubscriptVar(loc, def)
	}
	switch s.Kind {
	case stmt.KindAssign:
		s.RHS = sub(s.RHS)
	case stmt.KindBoolAssign:
		s.Cond = sub(s.Cond)
	case stmt.KindCall:
		s.DestExpr = sub(s.DestExpr)
		for _, a := range s.Arguments {
			a.RHS = sub(a.RHS)
		}
	case stmt.KindBranch:
		s.BranchCond = sub(s.BranchCond)
	case stmt.KindCase:
		s.CaseDest = sub(s.CaseDest)
	case stmt.KindReturn:
		for i, r := range s.Returns {
			s.Returns[i] = sub(r)
		}
	case stmt.KindGoto:
		s.GotoDest = sub(s.GotoDest)
	}
}
