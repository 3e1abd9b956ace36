// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"sort"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// CFG is the control-flow graph of one procedure: an entry/exit BB, an
// address-to-BB map and the list of BBs it owns.
type CFG struct {
	Entry   *BasicBlock
	Exit    *BasicBlock
	Blocks  []*BasicBlock
	byAddr  map[uint64]*BasicBlock
	wellFormed bool
}

// NewCFG returns an empty CFG.
func NewCFG() *CFG {
	return &CFG{byAddr: map[uint64]*BasicBlock{}}
}

// CreationKind tags the result of NewBB.
type CreationKind uint8

const (
	Created CreationKind = iota
	AlreadyComplete
	TruncatedInto
)

// BBCreationResult is returned by NewBB.
type BBCreationResult struct {
	Kind CreationKind
	BB   *BasicBlock
}

// NewBB inserts a new BasicBlock built from rtls with the given kind.
// If a BasicBlock already exists at rtls[0]'s address: if that BB is
// complete, the result is AlreadyComplete(existing); otherwise it is
// filled in and marked complete, and the result is Created(existing).
// If the new BB's last RTL's address reaches or passes the address of
// the next known BB, the new BB is truncated and a fall-through edge
// added; if that next BB was incomplete, the result is
// TruncatedInto(next) so the caller (the decoder loop) knows to keep
// wiring successors into it.
func (c *CFG) NewBB(rtls []*RTL, kind Kind) BBCreationResult {
	if len(rtls) == 0 {
		bb := c.addBlock(&BasicBlock{Kind: kind})
		return BBCreationResult{Kind: Created, BB: bb}
	}
	addr := rtls[0].Address
	if existing, ok := c.byAddr[addr]; ok {
		if !existing.incomplete {
			return BBCreationResult{Kind: AlreadyComplete, BB: existing}
		}
		existing.RTLs = rtls
		existing.Kind = kind
		existing.incomplete = false
		return BBCreationResult{Kind: Created, BB: existing}
	}

	bb := &BasicBlock{Kind: kind, RTLs: rtls}
	if next := c.nextBBAfter(addr); next != nil && len(rtls) > 0 {
		last := rtls[len(rtls)-1].Address
		if last != 0 && next.LowAddr() != 0 && last >= next.LowAddr() {
			bb.RTLs = truncateAt(rtls, next.LowAddr())
			bb.Kind = Fall
			c.addBlock(bb)
			c.AddEdge(bb, next)
			if next.incomplete {
				return BBCreationResult{Kind: TruncatedInto, BB: next}
			}
			return BBCreationResult{Kind: Created, BB: bb}
		}
	}
	c.addBlock(bb)
	return BBCreationResult{Kind: Created, BB: bb}
}

func truncateAt(rtls []*RTL, cutAddr uint64) []*RTL {
	var out []*RTL
	for _, r := range rtls {
		if r.Address != 0 && r.Address >= cutAddr {
			break
		}
		out = append(out, r)
	}
	return out
}

func (c *CFG) addBlock(bb *BasicBlock) *BasicBlock {
	bb.number = len(c.Blocks)
	c.Blocks = append(c.Blocks, bb)
	if len(bb.RTLs) > 0 {
		c.byAddr[bb.LowAddr()] = bb
	}
	return bb
}

// nextBBAfter returns the BB with the smallest LowAddr() > addr, or
// nil; the address map is unordered, so every entry is scanned.
func (c *CFG) nextBBAfter(addr uint64) *BasicBlock {
	var best *BasicBlock
	for a, bb := range c.byAddr {
		if a > addr && (best == nil || a < best.LowAddr()) {
			best = bb
		}
	}
	return best
}

// Label marks addr as a BB boundary, splitting an existing BB if
// necessary. Reports whether the address was already
// known as a BB entry.
func (c *CFG) Label(addr uint64) (alreadyEntry bool) {
	if bb, ok := c.byAddr[addr]; ok {
		return !bb.incomplete || len(bb.RTLs) > 0
	}
	for _, bb := range c.Blocks {
		if bb.LowAddr() <= addr && addr <= bb.HighAddr() && addr != bb.LowAddr() {
			c.SplitBB(bb, addr, nil, false)
			return false
		}
	}
	// Not yet decoded; reserve an incomplete placeholder.
	placeholder := &BasicBlock{incomplete: true}
	c.addBlock(placeholder)
	return false
}

// SplitBB splits bb's RTL list at the RTL whose address is addr. The
// old top half becomes a Fall BB with a single successor into the new
// bottom half, which inherits bb's outgoing edges.
func (c *CFG) SplitBB(bb *BasicBlock, addr uint64, existing *BasicBlock, deleteRtls bool) *BasicBlock {
	idx := -1
	for i, r := range bb.RTLs {
		if r.Address == addr {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return bb
	}
	var bottom *BasicBlock
	if existing != nil {
		bottom = existing
		bottom.RTLs = bb.RTLs[idx:]
	} else {
		bottom = &BasicBlock{Kind: bb.Kind, RTLs: bb.RTLs[idx:]}
		c.addBlock(bottom)
	}
	if !deleteRtls {
		bottom.Succs = bb.Succs
		for _, s := range bottom.Succs {
			s.ReplacePred(bb, bottom)
		}
	}
	bb.RTLs = bb.RTLs[:idx]
	bb.Kind = Fall
	bb.Succs = nil
	c.AddEdge(bb, bottom)
	c.byAddr[bottom.LowAddr()] = bottom
	return bottom
}

// MergeBB merges v into u when u has exactly one successor v and v
// has exactly one predecessor u; v's RTLs are appended to u's, v is
// removed and edges are rewired.
func (c *CFG) MergeBB(u, v *BasicBlock) bool {
	if len(u.Succs) != 1 || u.Succs[0] != v || len(v.Preds) != 1 || v.Preds[0] != u {
		return false
	}
	u.RTLs = append(u.RTLs, v.RTLs...)
	u.Kind = v.Kind
	u.Succs = v.Succs
	for _, s := range u.Succs {
		s.ReplacePred(v, u)
	}
	c.removeBlock(v)
	return true
}

// CompressCfg eliminates BBs whose body is a single unconditional goto
// by redirecting predecessors to the goto target. Leaves the entry BB
// alone even if it is a pure goto, since callers identify a
// procedure's start by BB identity (c.Entry), not by address.
func (c *CFG) CompressCfg() {
	for _, bb := range append([]*BasicBlock(nil), c.Blocks...) {
		if bb == c.Entry || !isPureGoto(bb) || len(bb.Succs) != 1 {
			continue
		}
		target := bb.Succs[0]
		if target == bb {
			continue
		}
		preds := append([]*BasicBlock(nil), bb.Preds...)
		for _, p := range preds {
			p.ReplaceSucc(bb, target)
		}
		target.removePred(bb)
		for _, p := range preds {
			if target.predIndex(p) < 0 {
				target.Preds = append(target.Preds, p)
			}
		}
		c.removeBlock(bb)
	}
}

func isPureGoto(bb *BasicBlock) bool {
	if bb.Kind != Oneway || len(bb.RTLs) != 1 {
		return false
	}
	stmts := bb.RTLs[0].Stmts
	return len(stmts) == 1 && stmts[0].Kind == stmt.KindGoto
}

func (c *CFG) removeBlock(bb *BasicBlock) {
	for _, p := range bb.Preds {
		p.ReplaceSucc(bb, nil)
	}
	var out []*BasicBlock
	for _, b := range c.Blocks {
		if b != bb {
			out = append(out, b)
		}
	}
	c.Blocks = out
	c.renumber()
	if len(bb.RTLs) > 0 {
		delete(c.byAddr, bb.LowAddr())
	}
}

func (c *CFG) renumber() {
	for i, b := range c.Blocks {
		b.number = i
	}
}

// RemoveOrphanBBs removes every BB not reachable from Entry via a BFS
//.
func (c *CFG) RemoveOrphanBBs() {
	if c.Entry == nil {
		return
	}
	reached := map[*BasicBlock]bool{c.Entry: true}
	queue := []*BasicBlock{c.Entry}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, s := range b.Succs {
			if s != nil && !reached[s] {
				reached[s] = true
				queue = append(queue, s)
			}
		}
	}
	var keep []*BasicBlock
	for _, b := range c.Blocks {
		if reached[b] {
			keep = append(keep, b)
		} else {
			for _, s := range b.Succs {
				if s != nil {
					s.removePred(b)
				}
			}
		}
	}
	c.Blocks = keep
	c.renumber()
}

// SortByAddress sorts c.Blocks by their LowAddr, preserving the
// address map's injective sorted-by-low-address invariant.
func (c *CFG) SortByAddress() {
	sort.Slice(c.Blocks, func(i, j int) bool { return c.Blocks[i].LowAddr() < c.Blocks[j].LowAddr() })
	c.renumber()
}

// SetEntryAndExitBB records the CFG's entry and exit blocks.
func (c *CFG) SetEntryAndExitBB(entry, exit *BasicBlock) {
	c.Entry = entry
	c.Exit = exit
}

// AddEdge adds an edge from->to, maintaining both succs and preds
//.
func (c *CFG) AddEdge(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to)
	to.Preds = append(to.Preds, from)
}

// FindRetNode returns the BB of kind Ret, or (if none) a Call BB whose
// callee is known not to return.
func (c *CFG) FindRetNode(isNoReturnCall func(*BasicBlock) bool) *BasicBlock {
	for _, b := range c.Blocks {
		if b.Kind == Ret {
			return b
		}
	}
	for _, b := range c.Blocks {
		if b.Kind == Call && isNoReturnCall != nil && isNoReturnCall(b) {
			return b
		}
	}
	return nil
}

// WellFormCfg checks every successor of each BB has a matching
// predecessor entry and no BB is still incomplete;
// records the result and returns it with a reason on failure.
func (c *CFG) WellFormCfg() (bool, error) {
	for _, b := range c.Blocks {
		if b.incomplete {
			c.wellFormed = false
			return false, &WellFormednessFailure{Reason: "incomplete BB " + b.String()}
		}
		for _, s := range b.Succs {
			if s == nil || s.predIndex(b) < 0 {
				c.wellFormed = false
				return false, &WellFormednessFailure{Reason: "missing predecessor edge for " + b.String()}
			}
		}
	}
	c.wellFormed = true
	return true, nil
}

// WellFormed reports the cached result of the last WellFormCfg call.
func (c *CFG) WellFormed() bool { return c.wellFormed }

// BlockByNumber returns the BB with the given Blocks-slice index, or
// nil if out of range; BB numbers are stable between renumber() calls
// triggered by the same mutation.
func (c *CFG) BlockByNumber(i int) *BasicBlock {
	if i < 0 || i >= len(c.Blocks) {
		return nil
	}
	return c.Blocks[i]
}

// BlockByAddr returns the BB whose low address is addr, or nil — the
// lookup analyseIndirectJumps uses to turn a resolved jump-table
// target back into a successor block.
func (c *CFG) BlockByAddr(addr uint64) *BasicBlock {
	return c.byAddr[addr]
}

// AppendStmt inserts s just ahead of bb's terminating branch/goto/case
// statement, or at the very end if the final RTL holds no such
// terminator (creating a zero-address synthetic RTL if bb has none);
// used to insert a copy statement during de-SSA.
func (b *BasicBlock) AppendStmt(s *Stmt) {
	if len(b.RTLs) == 0 {
		b.RTLs = append(b.RTLs, &RTL{})
	}
	last := b.RTLs[len(b.RTLs)-1]
	insertAt := len(last.Stmts)
	if insertAt > 0 && isTerminator(last.Stmts[insertAt-1]) {
		insertAt--
	}
	last.Stmts = append(last.Stmts, nil)
	copy(last.Stmts[insertAt+1:], last.Stmts[insertAt:])
	last.Stmts[insertAt] = s
}

func isTerminator(s *Stmt) bool {
	switch s.Kind {
	case stmt.KindBranch, stmt.KindGoto, stmt.KindCase:
		return true
	default:
		return false
	}
}
