// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import "github.com/5l1v3r1/boomerang-go/internal/rtl/exp"

// maxIndirectTargets bounds a jump-table scan: real dispatch tables
// rarely exceed a few dozen cases, so a run this long is itself a
// sign the table base was misidentified.
const maxIndirectTargets = 256

// resolveIndirectTargets resolves a computed jump at addr whose
// destination expression is dest to a bounded set of successor
// addresses.
//
// Two strategies are tried in order:
//
//  1. A statically known single resolution (BinaryImage.JumpTarget),
//     the common case for a function pointer computed once and
//     called through a register.
//  2. A jump table: if dest's tree contains a constant base address
//     under a memory dereference, sequential pointer-sized entries
//     are read from the image starting there until one fails to land
//     in a known section or the bound is hit.
func (pr *Program) resolveIndirectTargets(addr uint64, dest *exp.Expr) ([]uint64, bool) {
	if pr.img == nil {
		return nil, false
	}
	if t, ok := pr.img.JumpTarget(addr); ok {
		return []uint64{t}, true
	}

	base, width, ok := findTableBase(dest)
	if !ok {
		return nil, false
	}
	var targets []uint64
	for i := 0; i < maxIndirectTargets; i++ {
		entryAddr := base + uint64(i*width/8)
		v, err := pr.img.ReadNative(entryAddr, width)
		if err != nil {
			break
		}
		if _, inSection := pr.img.SectionByAddr(v); !inSection {
			break
		}
		targets = append(targets, v)
	}
	if len(targets) == 0 {
		return nil, false
	}
	return targets, true
}

// findTableBase looks for the first integer constant anywhere within
// e's tree and returns it as a candidate table base with a default
// 32-bit entry width — e is expected to be a memOf(base + index*N)
// dispatch shape, whose base is the only constant of interest.
func findTableBase(e *exp.Expr) (base uint64, width int, ok bool) {
	var found *exp.Expr
	e.Accept(exp.VisitFunc(func(sub *exp.Expr) bool {
		if found != nil {
			return false
		}
		if sub.Kind == exp.KindConst && (sub.ConstTag == exp.ConstInt || sub.ConstTag == exp.ConstLong) {
			found = sub
			return false
		}
		return true
	}))
	if found == nil {
		return 0, 0, false
	}
	return uint64(found.IntVal), 32, true
}
