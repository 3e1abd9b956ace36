// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
)

// Markdown builds the decompilation report's Markdown source: one
// section per procedure covering its recovered signature, proven
// preservation equations and loop/conditional structure.
func Markdown(pr *proc.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Decompilation report\n\n%d procedures.\n\n", len(pr.UserProcedures()))
	for _, p := range sortedProcedures(pr) {
		writeProcedureSection(&b, p)
	}
	return b.String()
}

func writeProcedureSection(b *strings.Builder, p *proc.Procedure) {
	fmt.Fprintf(b, "## %s\n\n", p.Name)
	fmt.Fprintf(b, "- entry: `%s`\n", fmtAddr(p.Entry))
	fmt.Fprintf(b, "- status: %s\n", p.Status)
	fmt.Fprintf(b, "- signature: `%s`\n\n", prototype(p))

	if p.CFG == nil {
		b.WriteString("No CFG (library procedure).\n\n")
		return
	}
	fmt.Fprintf(b, "### CFG shape\n\n%d basic blocks.\n\n", len(p.CFG.Blocks))

	writeProvenSection(b, p)
	writeStructureSection(b, p)
}

func writeProvenSection(b *strings.Builder, p *proc.Procedure) {
	b.WriteString("### Proven equations\n\n")
	keys := make([]string, 0, len(p.Proven))
	for k := range p.Proven {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "- `%s = %s`\n", k, p.Proven[k])
	}
	b.WriteString("\n")
}

func writeStructureSection(b *strings.Builder, p *proc.Procedure) {
	b.WriteString("### Control-flow structure\n\n")
	if !p.Structured {
		b.WriteString("Not structured.\n\n")
		return
	}
	var loops, conds []*cfg.BasicBlock
	for _, bb := range p.CFG.Blocks {
		if bb.Type != cfg.LoopNone {
			loops = append(loops, bb)
		}
		if bb.CondType != cfg.CondNone {
			conds = append(conds, bb)
		}
	}
	if len(loops) == 0 && len(conds) == 0 {
		b.WriteString("No loops or conditionals.\n\n")
		return
	}
	for _, bb := range loops {
		fmt.Fprintf(b, "- loop at bb%d: %s\n", bb.BBNumber(), bb.Type)
	}
	for _, bb := range conds {
		fmt.Fprintf(b, "- conditional at bb%d: %s\n", bb.BBNumber(), bb.CondType)
	}
	b.WriteString("\n")
}

// RenderMarkdownHTML builds pr's Markdown report and renders it to
// HTML with goldmark, the same conversion the teacher's own doc
// tooling (`godoc`, `present`) uses for Markdown-sourced content.
func RenderMarkdownHTML(pr *proc.Program) ([]byte, error) {
	source := Markdown(pr)
	var out bytes.Buffer
	if err := goldmark.New().Convert([]byte(source), &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
