// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ssaform implements dominance-frontier
// computation, phi placement, dominator-tree renaming, iterative
// propagation, call/phi bypass and de-SSA, all driven over a
// cfg.CFG/stmt.Stmt pair rather than a copy of either.
package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// Numbering assigns a unique, dense statement number to every
// statement of a CFG (including phis as they're inserted) and
// resolves exp.StmtRef/stmt.StmtRef identities back to the owning
// *stmt.Stmt, standing in for the richer per-procedure statement
// table proc.Procedure eventually owns.
type Numbering struct {
	next  int
	table map[int]*stmt.Stmt
}

// NewNumbering renumbers every statement currently in c, in DFS block
// order, starting from 1 (0 is reserved to mean "no definition
// number assigned").
func NewNumbering(c *cfg.CFG) *Numbering {
	n := &Numbering{next: 1, table: map[int]*stmt.Stmt{}}
	for _, b := range c.Blocks {
		for _, s := range b.AllStatements() {
			n.assign(s)
		}
	}
	return n
}

func (n *Numbering) assign(s *stmt.Stmt) {
	s.Number = n.next
	n.table[s.Number] = s
	n.next++
}

// Add numbers a newly created statement (e.g. a phi) and records it.
func (n *Numbering) Add(s *stmt.Stmt) {
	n.assign(s)
}

// ResolveDef implements stmt.DefResolver.
func (n *Numbering) ResolveDef(ref exp.StmtRef) *stmt.Stmt {
	if ref == nil {
		return nil
	}
	return n.table[ref.StmtNumber()]
}

// All returns every statement currently known to the numbering.
func (n *Numbering) All() []*stmt.Stmt {
	out := make([]*stmt.Stmt, 0, len(n.table))
	for _, s := range n.table {
		out = append(out, s)
	}
	return out
}
