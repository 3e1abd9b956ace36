// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// Clone deep-copies e. Required before any substitution modifies a
// shared tree. A nil receiver clones to nil.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	c := *e
	c.Kids = cloneSlice(e.Kids)
	c.Args = cloneSlice(e.Args)
	c.Type = e.Type.Clone()
	return &c
}

func cloneSlice(s []*Expr) []*Expr {
	if s == nil {
		return nil
	}
	out := make([]*Expr, len(s))
	for i, k := range s {
		out[i] = k.Clone()
	}
	return out
}
