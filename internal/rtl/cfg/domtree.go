// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

// EstablishDFTOrder numbers every BB reachable from Entry with a
// preorder and postorder DFS number (DFSPreNum/DFSPostNum), used by
// structure.SetTimeStamps for loop detection.
func (c *CFG) EstablishDFTOrder() []*BasicBlock {
	if c.Entry == nil {
		return nil
	}
	visited := map[*BasicBlock]bool{}
	var order []*BasicBlock
	pre, post := 0, 0
	var walk func(b *BasicBlock)
	walk = func(b *BasicBlock) {
		if visited[b] {
			return
		}
		visited[b] = true
		b.DFSPreNum = pre
		pre++
		order = append(order, b)
		for _, s := range b.Succs {
			if s != nil {
				walk(s)
			}
		}
		b.DFSPostNum = post
		post++
	}
	walk(c.Entry)
	return order
}

// EstablishRevDFTOrder is EstablishDFTOrder over the reverse graph,
// rooted at Exit, used for post-dominance.
func (c *CFG) EstablishRevDFTOrder() []*BasicBlock {
	if c.Exit == nil {
		return nil
	}
	visited := map[*BasicBlock]bool{}
	var order []*BasicBlock
	pre, post := 0, 0
	var walk func(b *BasicBlock)
	walk = func(b *BasicBlock) {
		if visited[b] {
			return
		}
		visited[b] = true
		b.RevLoopStamps[0] = pre
		pre++
		order = append(order, b)
		for _, p := range b.Preds {
			if p != nil {
				walk(p)
			}
		}
		b.RevLoopStamps[1] = post
		post++
	}
	walk(c.Exit)
	return order
}

// ComputePostDominators fills ImmPDom for every BB reachable backward
// from Exit, using the standard iterative Cooper-Harvey-Kennedy
// algorithm run over the reverse graph.
func (c *CFG) ComputePostDominators() {
	if c.Exit == nil {
		return
	}
	order := c.EstablishRevDFTOrder()
	if len(order) == 0 {
		return
	}
	// order[0] is Exit; reverse postorder for the iterative walk.
	rpo := make([]*BasicBlock, len(order))
	for i, b := range order {
		rpo[len(order)-1-i] = b
	}
	idx := map[*BasicBlock]int{}
	for i, b := range rpo {
		idx[b] = i
	}

	c.Exit.ImmPDom = c.Exit
	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == c.Exit {
				continue
			}
			var newIdom *BasicBlock
			for _, s := range b.Succs {
				if s == nil || s.ImmPDom == nil {
					continue
				}
				if newIdom == nil {
					newIdom = s
					continue
				}
				newIdom = intersectPDom(newIdom, s, idx)
			}
			if newIdom != nil && b.ImmPDom != newIdom {
				b.ImmPDom = newIdom
				changed = true
			}
		}
	}
	c.Exit.ImmPDom = nil
}

func intersectPDom(a, b *BasicBlock, idx map[*BasicBlock]int) *BasicBlock {
	for a != b {
		for idx[a] < idx[b] {
			a = a.ImmPDom
		}
		for idx[b] < idx[a] {
			b = b.ImmPDom
		}
	}
	return a
}

// ComputeDominators is ComputePostDominators' mirror over the forward
// graph, filling ImmDom; the dominance frontier that ssaform's phi
// placement needs is derived from this tree.
func (c *CFG) ComputeDominators() {
	if c.Entry == nil {
		return
	}
	order := c.EstablishDFTOrder()
	if len(order) == 0 {
		return
	}
	// order[0] is Entry; reverse it so every dominator sorts after the
	// blocks it dominates, the ordering intersectDom walks by.
	rpo := make([]*BasicBlock, len(order))
	for i, b := range order {
		rpo[len(order)-1-i] = b
	}
	idx := map[*BasicBlock]int{}
	for i, b := range rpo {
		idx[b] = i
	}

	c.Entry.ImmDom = c.Entry
	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == c.Entry {
				continue
			}
			var newIdom *BasicBlock
			for _, p := range b.Preds {
				if p == nil || p.ImmDom == nil {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = intersectDom(newIdom, p, idx)
			}
			if newIdom != nil && b.ImmDom != newIdom {
				b.ImmDom = newIdom
				changed = true
			}
		}
	}
	c.Entry.ImmDom = nil
}

func intersectDom(a, b *BasicBlock, idx map[*BasicBlock]int) *BasicBlock {
	for a != b {
		for idx[a] < idx[b] {
			a = a.ImmDom
		}
		for idx[b] < idx[a] {
			b = b.ImmDom
		}
	}
	return a
}

// DominanceFrontier computes the dominance-frontier set of every BB
// using the Cooper-Harvey-Kennedy algorithm, given ImmDom is already
// populated by ComputeDominators.
func (c *CFG) DominanceFrontier() map[*BasicBlock][]*BasicBlock {
	df := map[*BasicBlock][]*BasicBlock{}
	for _, b := range c.Blocks {
		if len(b.Preds) < 2 {
			continue
		}
		for _, p := range b.Preds {
			runner := p
			for runner != nil && runner != b.ImmDom {
				df[runner] = appendUnique(df[runner], b)
				runner = runner.ImmDom
			}
		}
	}
	return df
}

func appendUnique(set []*BasicBlock, b *BasicBlock) []*BasicBlock {
	for _, x := range set {
		if x == b {
			return set
		}
	}
	return append(set, b)
}
