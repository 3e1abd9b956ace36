// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"golang.org/x/xerrors"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// decodeState tracks the decode loop's worklist of not-yet-decoded
// addresses and the edges discovered before their source or
// destination BB exists yet.
type decodeState struct {
	c       *cfg.CFG
	built   map[uint64]*cfg.BasicBlock
	labels  map[uint64]bool
	pending map[uint64][]*cfg.BasicBlock
	queue   []uint64
	queued  map[uint64]bool
}

func newDecodeState(c *cfg.CFG) *decodeState {
	return &decodeState{
		c:       c,
		built:   map[uint64]*cfg.BasicBlock{},
		labels:  map[uint64]bool{},
		pending: map[uint64][]*cfg.BasicBlock{},
		queued:  map[uint64]bool{},
	}
}

// label records addr as a BB-start address and, unless already
// decoded or queued, schedules it for decoding. A straight-line
// decode run in progress elsewhere consults labels to know where it
// must stop rather than run across a block boundary.
func (st *decodeState) label(addr uint64) {
	st.labels[addr] = true
	if !st.queued[addr] {
		st.queued[addr] = true
		st.queue = append(st.queue, addr)
	}
}

// edge records a CFG edge from->dest, applying it immediately if dest
// has already been decoded and deferring it (keyed by dest) otherwise.
func (st *decodeState) edge(from *cfg.BasicBlock, dest uint64) {
	st.label(dest)
	if to, ok := st.built[dest]; ok {
		st.c.AddEdge(from, to)
		return
	}
	st.pending[dest] = append(st.pending[dest], from)
}

// finish creates the BB for the run starting at addr, flushing any
// edges that were waiting on it.
func (st *decodeState) finish(addr uint64, rtls []*cfg.RTL, kind cfg.Kind) *cfg.BasicBlock {
	res := st.c.NewBB(rtls, kind)
	bb := res.BB
	st.built[addr] = bb
	for _, from := range st.pending[addr] {
		st.c.AddEdge(from, bb)
	}
	delete(st.pending, addr)
	return bb
}

func lastStmt(r *cfg.RTL) *stmt.Stmt {
	if r == nil || len(r.Stmts) == 0 {
		return nil
	}
	return r.Stmts[len(r.Stmts)-1]
}

func isTerminator(k stmt.Kind) bool {
	switch k {
	case stmt.KindReturn, stmt.KindCall, stmt.KindBranch, stmt.KindGoto, stmt.KindCase:
		return true
	default:
		return false
	}
}

// constAddr extracts an absolute address from a constant Expr
// (IntConst or LongConst), the shape a direct branch/goto target
// takes.
func constAddr(e *exp.Expr) (uint64, bool) {
	if e == nil || e.Kind != exp.KindConst {
		return 0, false
	}
	switch e.ConstTag {
	case exp.ConstInt, exp.ConstLong:
		return uint64(e.IntVal), true
	default:
		return 0, false
	}
}

// calleeName extracts the direct call target's procedure name from a
// ConstFunc destination expression, or "" for an indirect call.
func calleeName(e *exp.Expr) string {
	if e == nil || e.Kind != exp.KindConst || e.ConstTag != exp.ConstFunc {
		return ""
	}
	return e.StrVal
}

// decodeCFG runs the linear-sweep decode loop from entry, building a
// cfg.CFG one straight-line run at a time: each run stops at a
// terminator statement (return/call/branch/goto/case) or at the
// boundary of an already-labelled address reached by fallthrough,
// whichever comes first. Direct call targets are resolved against
// prog's procedure table (registering a placeholder library
// procedure for an unknown name); computed jumps are resolved via
// resolveIndirectTargets or reported as UnanalysableIndirectTargetError.
func (pr *Program) decodeCFG(procName string, entry uint64) (*cfg.CFG, *stmt.Stmt, error) {
	c := cfg.NewCFG()
	st := newDecodeState(c)
	st.label(entry)

	var retStmt *stmt.Stmt
	var entryBB *cfg.BasicBlock

	for len(st.queue) > 0 {
		addr := st.queue[0]
		st.queue = st.queue[1:]
		if _, done := st.built[addr]; done {
			continue
		}

		var rtls []*cfg.RTL
		var term *stmt.Stmt
		var fallAddr uint64
		cur := addr
		for {
			if cur != addr && st.labels[cur] {
				fallAddr = cur
				break
			}
			res, err := pr.dec.Decode(cur)
			if err != nil {
				return nil, nil, xerrors.Errorf("decoding %s at 0x%x: %w", procName, cur, err)
			}
			rtls = append(rtls, res.RTL)
			term = lastStmt(res.RTL)
			cur = res.NextAddr
			if term != nil && isTerminator(term.Kind) {
				break
			}
			term = nil
		}

		var bb *cfg.BasicBlock
		switch {
		case fallAddr != 0:
			bb = st.finish(addr, rtls, cfg.Fall)
			st.edge(bb, fallAddr)

		case term == nil:
			// Decoding ran off the end of the image without hitting a
			// terminator; treat the run as an implicit return.
			bb = st.finish(addr, rtls, cfg.Ret)
			if retStmt == nil {
				retStmt = stmt.NewReturn()
			}

		case term.Kind == stmt.KindReturn:
			bb = st.finish(addr, rtls, cfg.Ret)
			if retStmt == nil {
				retStmt = term
			}

		case term.Kind == stmt.KindCall:
			bb = st.finish(addr, rtls, cfg.Call)
			noReturn := false
			if name := calleeName(term.DestExpr); name != "" {
				callee := pr.resolveCallProc(name)
				term.DestProc = callee
				if pr.arch != nil {
					noReturn = pr.arch.IsNoReturnCallDest(name)
				}
			}
			if !noReturn {
				st.edge(bb, cur)
			}

		case term.Kind == stmt.KindBranch:
			bb = st.finish(addr, rtls, cfg.Twoway)
			if dest, ok := constAddr(term.BranchDest); ok {
				st.edge(bb, dest)
			}
			st.edge(bb, cur)

		case term.Kind == stmt.KindGoto && !term.IsComputed:
			bb = st.finish(addr, rtls, cfg.Oneway)
			if dest, ok := constAddr(term.GotoDest); ok {
				st.edge(bb, dest)
			}

		case term.Kind == stmt.KindGoto:
			targets, ok := pr.resolveIndirectTargets(addr, term.GotoDest)
			if !ok {
				return nil, nil, &UnanalysableIndirectTargetError{Proc: procName, Addr: addr}
			}
			bb = st.finish(addr, rtls, cfg.CompJump)
			for _, t := range targets {
				st.edge(bb, t)
			}

		case term.Kind == stmt.KindCase:
			bb = st.finish(addr, rtls, cfg.Nway)
			if term.Switch != nil {
				for _, t := range term.Switch.Targets {
					st.edge(bb, t)
				}
			}
		}

		if addr == entry {
			entryBB = bb
		}
	}

	var exitBB *cfg.BasicBlock
	for _, b := range c.Blocks {
		if b.Kind == cfg.Ret {
			exitBB = b
			break
		}
	}
	c.SetEntryAndExitBB(entryBB, exitBB)
	if ok, err := c.WellFormCfg(); !ok {
		return nil, nil, err
	}
	return c, retStmt, nil
}

// resolveCallProc returns the procedure named name, registering a
// signature-less library placeholder on first sight so every call
// site resolves to a concrete DestProc even before the real
// definition (if any) is decoded.
func (pr *Program) resolveCallProc(name string) *Procedure {
	if p := pr.ProcByName(name); p != nil {
		return p
	}
	var sig *stmt.Signature
	if pr.arch != nil {
		sig = pr.arch.DefaultSignature(name)
	}
	p := NewLibProcedure(name, sig, pr)
	pr.AddProcedure(p)
	return p
}
