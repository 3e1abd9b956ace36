// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package structure

import (
	"sort"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
)

// StructLoops processes nodes in reverse DFS
// order, find each one's latching predecessor (a back-edge source),
// tag the header..latch range as loop members, classify the loop's
// test position and locate its follow node. SetTimeStamps and
// StructConds must already have run.
func StructLoops(c *cfg.CFG) {
	order := append([]*cfg.BasicBlock(nil), c.Blocks...)
	sort.Slice(order, func(i, j int) bool { return order[i].DFSPostNum > order[j].DFSPostNum })

	usedLatch := map[*cfg.BasicBlock]bool{}
	for _, header := range order {
		if header.LoopHead != nil {
			continue // already absorbed into an enclosing loop
		}
		latch := findLatch(header, usedLatch)
		if latch == nil {
			continue
		}
		usedLatch[latch] = true
		members := collectLoopMembers(header, latch)
		for b := range members {
			if b.LoopHead == nil {
				b.LoopHead = header
			}
		}
		header.LatchNode = latch
		header.Type = classifyLoopType(header, latch)
		header.LoopFollow = findLoopFollow(header, latch, members)
	}
}

// findLatch returns header's back-edge predecessor: one whose DFS
// interval is contained in header's (header dominates it in the DFS
// tree, a "back-edge source"), excluding Nway predecessors
// and predecessors already claimed as another loop's latch.
func findLatch(header *cfg.BasicBlock, usedLatch map[*cfg.BasicBlock]bool) *cfg.BasicBlock {
	var best *cfg.BasicBlock
	for _, p := range header.Preds {
		if p == nil || p.Kind == cfg.Nway || usedLatch[p] {
			continue
		}
		if header.DFSPreNum <= p.DFSPreNum && p.DFSPostNum <= header.DFSPostNum {
			if best == nil || p.DFSPostNum > best.DFSPostNum {
				best = p
			}
		}
	}
	return best
}

// collectLoopMembers walks forward from header, gathering every block
// whose DFS pre-number falls within [header, latch]'s interval,
// mirroring the "tag the range [header..latch] as loop members" rule.
func collectLoopMembers(header, latch *cfg.BasicBlock) map[*cfg.BasicBlock]bool {
	members := map[*cfg.BasicBlock]bool{header: true, latch: true}
	queue := []*cfg.BasicBlock{header}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if b == latch {
			continue
		}
		for _, s := range b.Succs {
			if s == nil || members[s] {
				continue
			}
			if s.DFSPreNum >= header.DFSPreNum && s.DFSPreNum <= latch.DFSPreNum {
				members[s] = true
				queue = append(queue, s)
			}
		}
	}
	return members
}

// classifyLoopType implements a three-way test: header's
// own branch pre-tests the loop, the latch's branch post-tests it,
// otherwise the loop only exits via an internal unconditional jump
// (endless from the structurer's point of view).
func classifyLoopType(header, latch *cfg.BasicBlock) cfg.LoopType {
	switch {
	case header.Kind == cfg.Twoway:
		return cfg.LoopPreTested
	case latch.Kind == cfg.Twoway:
		return cfg.LoopPostTested
	default:
		return cfg.LoopEndless
	}
}

// findLoopFollow locates the loop's exit target: the header's (if
// pre-tested) or latch's (if post-tested) successor outside members.
func findLoopFollow(header, latch *cfg.BasicBlock, members map[*cfg.BasicBlock]bool) *cfg.BasicBlock {
	switch header.Type {
	case cfg.LoopPreTested:
		for _, s := range header.Succs {
			if s != nil && !members[s] {
				return s
			}
		}
	case cfg.LoopPostTested:
		for _, s := range latch.Succs {
			if s != nil && !members[s] {
				return s
			}
		}
	}
	return nil
}
