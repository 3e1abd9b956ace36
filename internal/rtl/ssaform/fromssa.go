// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// NameSource hands out fresh local-variable names during de-SSA.
type NameSource func() string

// FromSSAform performs the eight-step de-SSA conversion
// over a CFG whose dominance info, phi placement and renaming are
// already complete. typeOf resolves the recorded type of a Ref (used
// to build the interference graph); names mints fresh local names for
// split live ranges and collapsed phis.
//
// Steps 1-2 (initial register-to-local mapping and defining-type cast
// insertion) are not performed here: this repo models locations directly rather than through a register file
// needing an initial local assignment pass, so step 1 reduces to the
// identity map and step 2's cast insertion is left to the type
// analysis in the structure package, which runs afterward. Steps 3-8
// are implemented in full.
func FromSSAform(c *cfg.CFG, n *Numbering, typeOf func(*exp.Expr) *dtype.Type, names NameSource) {
	ig := InterferenceGraph{}
	pu := PhiUnites{}

	// Step 3.
	FindInterferences(c, n, ig, typeOf)
	// Step 4.
	FindPhiUnites(c, pu)

	localOf := map[string]string{}

	// Step 5: for each interference edge, rename one endpoint to a
	// fresh local: always the endpoint whose key sorts later. Phi
	// destinations get no preference over plain defs.
	for a, neighbors := range ig {
		for b := range neighbors {
			if a >= b {
				continue
			}
			victim := b
			if _, ok := localOf[victim]; !ok {
				localOf[victim] = names()
			}
		}
	}

	// Step 6: for each phi-unite pair not interfering, if exactly one
	// endpoint already has a chosen symbol, give the other the same one.
	for a, partners := range pu {
		for b := range partners {
			if a >= b || ig.Has(a, b) {
				continue
			}
			na, oka := localOf[a]
			nb, okb := localOf[b]
			switch {
			case oka && !okb:
				localOf[b] = na
			case okb && !oka:
				localOf[a] = nb
			}
		}
	}

	// Step 7: strip SSA subscripts everywhere, substituting the chosen
	// local name onto the location where one was assigned; locations
	// with no entry keep their original (unsplit) name.
	for _, b := range c.Blocks {
		for _, s := range b.Statements() {
			stripStmtSubscripts(s, localOf)
		}
	}

	// Step 8: collapse every remaining phi. Uniform-operand phis were
	// already turned into plain Assigns by FixCallAndPhiRefs; whatever
	// remains gets a fresh temp local and a copy inserted at each
	// operand's defining predecessor.
	for _, b := range c.Blocks {
		for _, phi := range b.Phis {
			temp := exp.Location(exp.LocLocal, nil, names(), nil)
			for predNum, op := range phi.PhiOperands {
				if op.Val == nil {
					continue
				}
				pred := c.BlockByNumber(predNum)
				if pred == nil {
					continue
				}
				cp := stmt.NewAssign(phi.Type, temp.Clone(), stripSubscripts(op.Val.Clone(), localOf))
				n.Add(cp)
				pred.AppendStmt(cp)
			}
			phi.Kind = stmt.KindAssign
			phi.RHS = temp
			phi.PhiOperands = nil
		}
		b.Phis = nil
	}
}

func stripStmtSubscripts(s *stmt.Stmt, localOf map[string]string) {
	apply := func(e *exp.Expr) *exp.Expr { return stripSubscripts(e, localOf) }
	switch s.Kind {
	case stmt.KindAssign, stmt.KindBoolAssign:
		s.RHS = apply(s.RHS)
		if s.Kind == stmt.KindBoolAssign {
			s.Cond = apply(s.Cond)
		}
	case stmt.KindCall:
		s.DestExpr = apply(s.DestExpr)
		for _, a := range s.Arguments {
			a.RHS = apply(a.RHS)
		}
	case stmt.KindBranch:
		s.BranchCond = apply(s.BranchCond)
	case stmt.KindCase:
		s.CaseDest = apply(s.CaseDest)
	case stmt.KindReturn:
		for i, r := range s.Returns {
			s.Returns[i] = apply(r)
		}
	case stmt.KindGoto:
		s.GotoDest = apply(s.GotoDest)
	}
}

// stripSubscripts removes every Ref in e, renaming the freed location
// to its split-interference local if one was chosen for it.
func stripSubscripts(e *exp.Expr, localOf map[string]string) *exp.Expr {
	if e == nil {
		return nil
	}
	if e.Kind == exp.KindRef {
		key := refKey(e)
		base := stripSubscripts(e.Base(), localOf)
		if name, ok := localOf[key]; ok {
			return exp.Location(exp.LocLocal, nil, name, nil)
		}
		return base
	}
	c := e.Clone()
	for i, k := range e.Kids {
		c.Kids[i] = stripSubscripts(k, localOf)
	}
	for i, a := range e.Args {
		c.Args[i] = stripSubscripts(a, localOf)
	}
	return c
}
