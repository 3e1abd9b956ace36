// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strings"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
)

// CallGraph renders pr's whole-program call graph as dotty-style
// digraph text: one node per user procedure, one edge per distinct
// call site target, library callees rendered as leaf nodes with no
// outgoing edges of their own.
func CallGraph(pr *proc.Program) string {
	var b strings.Builder
	b.WriteString("digraph callgraph {\n")
	for _, p := range sortedProcedures(pr) {
		fmt.Fprintf(&b, "\t%q;\n", p.Name)
		for _, callee := range p.Callees() {
			fmt.Fprintf(&b, "\t%q -> %q;\n", p.Name, callee.Name)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// CFG renders one procedure's control-flow graph as dotty-style
// digraph text, one node per basic block labelled with its kind and
// low address, one edge per successor, matching the node/edge
// vocabulary go/cfg's own -dot dump used for a go/ssa Function.
func CFG(p *proc.Procedure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph cfg_%s {\n", dotIdent(p.Name))
	if p.CFG == nil {
		b.WriteString("}\n")
		return b.String()
	}
	for _, bb := range p.CFG.Blocks {
		fmt.Fprintf(&b, "\t%s [label=%q];\n", bbNode(bb), bbLabel(bb))
	}
	for _, bb := range p.CFG.Blocks {
		for _, s := range bb.Succs {
			if s == nil {
				continue
			}
			fmt.Fprintf(&b, "\t%s -> %s;\n", bbNode(bb), bbNode(s))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func bbNode(bb *cfg.BasicBlock) string {
	return fmt.Sprintf("bb%d", bb.BBNumber())
}

func bbLabel(bb *cfg.BasicBlock) string {
	if len(bb.RTLs) == 0 {
		return bb.Kind.String()
	}
	return fmt.Sprintf("%s %s", bb.Kind.String(), fmtAddr(bb.LowAddr()))
}

func dotIdent(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
