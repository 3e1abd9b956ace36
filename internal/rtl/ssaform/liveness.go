// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

// InterferenceGraph records pairs of Refs live simultaneously with
// incompatible types (`ig`).
type InterferenceGraph map[string]map[string]bool

// PhiUnites records pairs of Refs that the same high-level variable
// should unite (`pu`).
type PhiUnites map[string]map[string]bool

func (g InterferenceGraph) add(a, b string) {
	if a == b {
		return
	}
	if g[a] == nil {
		g[a] = map[string]bool{}
	}
	if g[b] == nil {
		g[b] = map[string]bool{}
	}
	g[a][b] = true
	g[b][a] = true
}

// Has reports whether a and b interfere.
func (g InterferenceGraph) Has(a, b string) bool { return g[a] != nil && g[a][b] }

func (g PhiUnites) add(a, b string) {
	if a == b {
		return
	}
	if g[a] == nil {
		g[a] = map[string]bool{}
	}
	if g[b] == nil {
		g[b] = map[string]bool{}
	}
	g[a][b] = true
	g[b][a] = true
}

// refKey identifies one SSA Ref (a location subscripted to a specific
// def) for the interference/phi-unite graphs.
func refKey(ref *exp.Expr) string {
	if ref == nil {
		return ""
	}
	def := 0
	if ref.Def != nil {
		def = ref.Def.StmtNumber()
	}
	return ref.Base().String() + "#" + itoa(def)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Liveness runs a per-BB backward data-flow pass computing live-in
// sets ("uses added, defines killed") and returns them
// keyed by block.
func Liveness(c *cfg.CFG) map[*cfg.BasicBlock]map[string]*exp.Expr {
	liveIn := map[*cfg.BasicBlock]map[string]*exp.Expr{}
	for _, b := range c.Blocks {
		liveIn[b] = map[string]*exp.Expr{}
	}
	changed := true
	for changed {
		changed = false
		for i := len(c.Blocks) - 1; i >= 0; i-- {
			b := c.Blocks[i]
			live := map[string]*exp.Expr{}
			for _, succ := range b.Succs {
				for k, v := range liveIn[succ] {
					live[k] = v
				}
			}
			stmts := b.Statements()
			for i := len(stmts) - 1; i >= 0; i-- {
				s := stmts[i]
				var defs []*exp.Expr
				s.GetDefinitions(&defs)
				for _, d := range defs {
					delete(live, locKey(d))
				}
				var used []*exp.Expr
				s.AddUsedLocs(&used, true)
				for _, u := range used {
					live[locKey(u)] = u
				}
			}
			if !sameSet(liveIn[b], live) {
				liveIn[b] = live
				changed = true
			}
		}
	}
	return liveIn
}

func sameSet(a, b map[string]*exp.Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// FindInterferences augments ig with every pair of distinct Refs that
// appear together in one statement's operands and whose recorded types
// are incompatible; typeOf resolves a Ref's type via the statement that
// defines it. Refs live at the same point but not used by the same
// statement are not paired: Liveness is not consulted.
func FindInterferences(c *cfg.CFG, n *Numbering, ig InterferenceGraph, typeOf func(ref *exp.Expr) *dtype.Type) {
	for _, b := range c.Blocks {
		for _, s := range b.AllStatements() {
			forEachRef(s, func(ref *exp.Expr) {
				forEachRef(s, func(other *exp.Expr) {
					if refKey(ref) == refKey(other) {
						return
					}
					if !compatible(typeOf(ref), typeOf(other)) {
						ig.add(refKey(ref), refKey(other))
					}
				})
			})
		}
	}
}

// FindPhiUnites populates pu with a pair per (phi destination, phi
// operand) across every remaining phi, marking locations that should
// unite as the same high-level variable (fromSSAform step 4).
func FindPhiUnites(c *cfg.CFG, pu PhiUnites) {
	for _, b := range c.Blocks {
		for _, phi := range b.Phis {
			lhsRef := exp.NewRef(phi.LHS.Clone(), phi)
			for _, op := range phi.PhiOperands {
				if op.Val == nil {
					continue
				}
				pu.add(refKey(lhsRef), refKey(op.Val))
			}
		}
	}
}

// compatible reports whether two recorded types could share a
// register without an interference edge: nil (unknown) is always
// compatible, matching kinds are compatible, anything else is not
//.
func compatible(a, b *dtype.Type) bool {
	if a == nil || b == nil {
		return true
	}
	return a.Kind == b.Kind
}
