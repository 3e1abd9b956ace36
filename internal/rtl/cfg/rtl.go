// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg implements the CFG of basic
// blocks, each an ordered list of RTLs, with predecessor/successor
// vectors, an address map, splitting/merging/compression, DFS
// numbering and the post-dominator tree.
//
// Following the design note ("cyclic graph of BBs ... model
// as arena-allocated nodes with indices"), a CFG owns its
// BasicBlocks in a slice and refers to them by index internally
// (addEdge, preds/succs); exported APIs still hand back *BasicBlock
// for ergonomics, mirroring the ssa/func.go BasicBlock
// pointers, since Go's GC makes raw pointer arenas safe without the
// C++ original's lifetime concerns.
package cfg

import "github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"

// Stmt aliases stmt.Stmt so the rest of this package can refer to
// statements without importing the stmt package by name everywhere.
type Stmt = stmt.Stmt

// RTL is an ordered list of statements at one instruction address.
// Address may be zero for synthetic RTLs with no source instruction
//.
type RTL struct {
	Address uint64
	Stmts   []*stmt.Stmt
}

// NewRTL builds an RTL at addr with the given statements.
func NewRTL(addr uint64, stmts ...*stmt.Stmt) *RTL {
	return &RTL{Address: addr, Stmts: stmts}
}
