// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import "strconv"

// Kind enumerates the basic-block kinds named here
type Kind uint8

const (
	Fall Kind = iota
	Oneway
	Twoway
	Nway
	Call
	Ret
	CompJump
	CompCall
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Fall:
		return "Fall"
	case Oneway:
		return "Oneway"
	case Twoway:
		return "Twoway"
	case Nway:
		return "Nway"
	case Call:
		return "Call"
	case Ret:
		return "Ret"
	case CompJump:
		return "CompJump"
	case CompCall:
		return "CompCall"
	default:
		return "Invalid"
	}
}

// LoopType classifies a natural loop's test position.
type LoopType uint8

const (
	LoopNone LoopType = iota
	LoopPreTested
	LoopPostTested
	LoopEndless
)

func (lt LoopType) String() string {
	switch lt {
	case LoopPreTested:
		return "pre-tested"
	case LoopPostTested:
		return "post-tested"
	case LoopEndless:
		return "endless"
	default:
		return "none"
	}
}

// CondType classifies an unstructured conditional's reason, used by
// structure.CheckConds.
type CondType uint8

const (
	CondNone CondType = iota
	CondIfThen
	CondIfThenElse
	CondCase
	CondUnstructuredJumpInOutLoop
	CondUnstructuredJumpIntoCase
)

func (ct CondType) String() string {
	switch ct {
	case CondIfThen:
		return "if-then"
	case CondIfThenElse:
		return "if-then-else"
	case CondCase:
		return "case"
	case CondUnstructuredJumpInOutLoop:
		return "unstructured jump in/out of loop"
	case CondUnstructuredJumpIntoCase:
		return "unstructured jump into case body"
	default:
		return "none"
	}
}

// BasicBlock is a node of the CFG: a Kind, an ordered list of RTLs,
// predecessor/successor vectors, and the structuring metadata
// the data model places directly on BasicBlock ("structuring
// fields") rather than in a side table, populated by the structure
// package once data flow is stable.
type BasicBlock struct {
	number int // index into the owning CFG's Blocks slice

	Kind  Kind
	RTLs  []*RTL
	Preds []*BasicBlock
	Succs []*BasicBlock

	// Phis holds the block's phi-assignments, kept apart from RTLs
	// since they have no instruction address and are inserted/removed
	// as a batch by ssaform rather than threaded into decoded RTLs
	//.
	Phis []*Stmt

	incomplete bool // true until newBB/label fills this slot in

	// DFS / dominance numbering (component C & D).
	DFSPreNum  int
	DFSPostNum int
	ImmDom     *BasicBlock
	ImmPDom    *BasicBlock

	// Structuring metadata (component F; zero values mean "not yet
	// structured" or "not part of a loop/conditional").
	LoopHead    *BasicBlock
	LatchNode   *BasicBlock
	LoopFollow  *BasicBlock
	Type        LoopType
	CaseHead    *BasicBlock
	CondType    CondType
	CondFollow  *BasicBlock
	LoopStamps  [2]int // pre/post DFS loop-stamps
	RevLoopStamps [2]int
}

// BBNumber satisfies stmt.BBRef, letting a *BasicBlock key a phi
// operand map.
func (b *BasicBlock) BBNumber() int { return b.number }

// LowAddr returns the address of the BB's first RTL, or 0 if empty.
func (b *BasicBlock) LowAddr() uint64 {
	if len(b.RTLs) == 0 {
		return 0
	}
	return b.RTLs[0].Address
}

// HighAddr returns the address of the BB's last RTL, or 0 if empty.
func (b *BasicBlock) HighAddr() uint64 {
	if len(b.RTLs) == 0 {
		return 0
	}
	return b.RTLs[len(b.RTLs)-1].Address
}

// Statements returns every non-phi statement across the BB's RTLs in
// order.
func (b *BasicBlock) Statements() []*Stmt {
	var out []*Stmt
	for _, r := range b.RTLs {
		for _, s := range r.Stmts {
			out = append(out, s)
		}
	}
	return out
}

// AllStatements returns the block's phis followed by its body
// statements, the order a renaming dominator-tree walk processes them
// in.
func (b *BasicBlock) AllStatements() []*Stmt {
	out := append([]*Stmt(nil), b.Phis...)
	return append(out, b.Statements()...)
}

// predIndex returns the index of c within b.Preds, or -1.
func (b *BasicBlock) predIndex(c *BasicBlock) int {
	for i, p := range b.Preds {
		if p == c {
			return i
		}
	}
	return -1
}

// ReplacePred replaces the first occurrence of p in b.Preds with q,
// used when splitting or merging BBs.
func (b *BasicBlock) ReplacePred(p, q *BasicBlock) {
	if i := b.predIndex(p); i >= 0 {
		b.Preds[i] = q
	}
}

// ReplaceSucc replaces the first occurrence of p in b.Succs with q.
func (b *BasicBlock) ReplaceSucc(p, q *BasicBlock) {
	for i, s := range b.Succs {
		if s == p {
			b.Succs[i] = q
			return
		}
	}
}

// removePred removes p from b.Preds.
func (b *BasicBlock) removePred(p *BasicBlock) {
	var out []*BasicBlock
	for _, x := range b.Preds {
		if x != p {
			out = append(out, x)
		}
	}
	b.Preds = out
}

func (b *BasicBlock) String() string {
	return "bb#" + strconv.Itoa(b.number) + " (" + b.Kind.String() + ")"
}
