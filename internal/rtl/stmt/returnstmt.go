// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import "github.com/5l1v3r1/boomerang-go/internal/rtl/exp"

// UpdateModifieds filters s.Modifieds down to those a preservation
// check (isPreserved) confirms are still modified by the procedure;
// entries that are actually preserved are dropped.
func (s *Stmt) UpdateModifieds(isPreserved func(*exp.Expr) bool) {
	var out []*exp.Expr
	for _, m := range s.Modifieds {
		if !isPreserved(m) {
			out = append(out, m)
		}
	}
	s.Modifieds = out
}

// UpdateReturns collapses any return whose RHS equals the same
// location's value at procedure entry into a no-op (removed from
// s.Returns), since such a "return" is provably the preserved input,
// not a computed result.
func (s *Stmt) UpdateReturns(entryValueOf func(*exp.Expr) *exp.Expr) {
	var out []*exp.Expr
	for _, r := range s.Returns {
		if ev := entryValueOf(r); ev != nil && exp.Equal(ev, r) {
			continue
		}
		out = append(out, r)
	}
	s.Returns = out
}

// RemoveReturn removes e from s.Returns if present.
func (s *Stmt) RemoveReturn(e *exp.Expr) {
	var out []*exp.Expr
	for _, r := range s.Returns {
		if !exp.Equal(r, e) {
			out = append(out, r)
		}
	}
	s.Returns = out
}

// RemoveModified removes e from s.Modifieds if present.
func (s *Stmt) RemoveModified(e *exp.Expr) {
	var out []*exp.Expr
	for _, m := range s.Modifieds {
		if !exp.Equal(m, e) {
			out = append(out, m)
		}
	}
	s.Modifieds = out
}
