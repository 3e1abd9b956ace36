// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"os"
	"strings"
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// golden compares got against the contents of testdata/golden/name
// byte-for-byte.
func golden(t *testing.T, name, got string) {
	t.Helper()
	want, err := os.ReadFile("testdata/golden/" + name)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if got != string(want) {
		t.Errorf("%s mismatch:\n got: %q\nwant: %q", name, got, string(want))
	}
}

// buildProgram assembles a tiny two-procedure program by hand (no
// frontend/decoder involved): "add" with a two-block CFG calling the
// library procedure "puts", the shape report's formatters walk.
func buildProgram(t *testing.T) (*proc.Program, *proc.Procedure) {
	t.Helper()
	pr := proc.NewProgram(nil, nil, nil, nil, nil)

	puts := proc.NewLibProcedure("puts", &stmt.Signature{Name: "puts", Returns: []*dtype.Type{dtype.Int32}}, pr)

	add := proc.NewProcedure("add", 0x1000, pr)
	callStmt := stmt.NewCall(exp.IntConst(0x3000, 32, false), puts, puts.Sig)
	c := cfg.NewCFG()
	r0 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1000, callStmt)}, cfg.Call)
	r1 := c.NewBB([]*cfg.RTL{cfg.NewRTL(0x1004)}, cfg.Ret)
	c.AddEdge(r0.BB, r1.BB)
	add.CFG = c
	add.Sig = &stmt.Signature{Name: "add", Returns: []*dtype.Type{dtype.Int32}}
	add.Params = []*stmt.Stmt{
		stmt.NewAssign(dtype.Int32, exp.Location(exp.LocParam, nil, "arg0", add), exp.RegOf(exp.IntConst(0, 32, false))),
	}
	sp := exp.Location(exp.LocRegOf, exp.IntConst(28, 32, false), "", add)
	add.Proven[sp.String()] = sp
	add.Status = proc.Final
	pr.AddProcedure(add)

	g := &proc.Global{Name: "counter", Address: 0x4000, Type: dtype.Int32}
	pr.AddGlobal(g)

	return pr, add
}

func TestCallGraphIncludesEdge(t *testing.T) {
	pr, _ := buildProgram(t)
	out := CallGraph(pr)
	if !strings.Contains(out, `"add" -> "puts"`) {
		t.Errorf("CallGraph missing add->puts edge:\n%s", out)
	}
	if !strings.HasPrefix(out, "digraph callgraph {\n") {
		t.Errorf("CallGraph missing header:\n%s", out)
	}
}

func TestCFGRendersBlocksAndEdge(t *testing.T) {
	_, add := buildProgram(t)
	out := CFG(add)
	if !strings.Contains(out, "digraph cfg_add {") {
		t.Errorf("CFG missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, "bb0 -> bb1;") {
		t.Errorf("CFG missing bb0->bb1 edge:\n%s", out)
	}
	if !strings.Contains(out, `label="Call 0x1000"`) {
		t.Errorf("CFG missing bb0 label:\n%s", out)
	}
}

func TestSymbolsRendersGlobalAndPrototype(t *testing.T) {
	pr, _ := buildProgram(t)
	out := Symbols(pr)
	if !strings.Contains(out, "extern int32_t counter; // 0x4000") {
		t.Errorf("Symbols missing global decl:\n%s", out)
	}
	if !strings.Contains(out, "int32_t add(int32_t arg0); // 0x1000") {
		t.Errorf("Symbols missing add() prototype:\n%s", out)
	}
}

func TestMarkdownIncludesProvenEquationAndStatus(t *testing.T) {
	pr, _ := buildProgram(t)
	out := Markdown(pr)
	if !strings.Contains(out, "## add") {
		t.Errorf("Markdown missing procedure section:\n%s", out)
	}
	if !strings.Contains(out, "status: Final") {
		t.Errorf("Markdown missing status line:\n%s", out)
	}
	if !strings.Contains(out, "`r[28] = r[28]`") {
		t.Errorf("Markdown missing proven equation:\n%s", out)
	}
}

func TestRenderMarkdownHTMLProducesHTML(t *testing.T) {
	pr, _ := buildProgram(t)
	html, err := RenderMarkdownHTML(pr)
	if err != nil {
		t.Fatalf("RenderMarkdownHTML: %v", err)
	}
	if !strings.Contains(string(html), "<h1>") {
		t.Errorf("rendered HTML missing <h1> heading:\n%s", html)
	}
}

func TestCallGraphGolden(t *testing.T) {
	pr, _ := buildProgram(t)
	golden(t, "callgraph.dot", CallGraph(pr))
}

func TestCFGGolden(t *testing.T) {
	_, add := buildProgram(t)
	golden(t, "cfg_add.dot", CFG(add))
}

func TestSymbolsGolden(t *testing.T) {
	pr, _ := buildProgram(t)
	golden(t, "symbols.h", Symbols(pr))
}

func TestMarkdownGolden(t *testing.T) {
	pr, _ := buildProgram(t)
	golden(t, "report.md", Markdown(pr))
}

func TestDisplayWidthASCII(t *testing.T) {
	if got := displayWidth("abc"); got != 3 {
		t.Errorf("displayWidth(abc) = %d, want 3", got)
	}
}
