// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"io"
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/event"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend/fixture"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// newTestProgram returns an empty Program over a fresh fixture
// frontend sharing one register file, named r24/r28/r29 at num 24/28/29,
// the registers the end-to-end scenarios below read and write.
func newTestProgram(t *testing.T) (*Program, *fixture.Decoder) {
	t.Helper()
	regs := fixture.NewRegFile()
	regs.Define(24, "r24", 32)
	regs.Define(28, "r28", 32)
	regs.Define(29, "r29", 32)
	dec := fixture.NewDecoder(regs, fixture.DefaultStride)
	arch := fixture.NewArch("test")
	pr := NewProgram(dec, fixture.NewImage(), fixture.NewSymbols(), arch, event.NewSink(io.Discard))
	return pr, dec
}

func reg(n int64) *exp.Expr { return exp.RegOf(exp.IntConst(n, 32, false)) }

// TestDecompileS1Empty covers spec.md's S1 scenario: a procedure with
// a single Ret BB and no statements at all.
func TestDecompileS1Empty(t *testing.T) {
	pr, dec := newTestProgram(t)
	dec.Define(0x0123, cfg.NewRTL(0x0123, stmt.NewReturn()), 0, false)

	p, err := pr.DecodeEntryPoint("empty", 0x0123)
	if err != nil {
		t.Fatalf("DecodeEntryPoint: %v", err)
	}
	p.Decompile()

	if p.Status != Final {
		t.Fatalf("Status = %v, want Final", p.Status)
	}
	if len(p.CFG.Blocks) != 1 || p.CFG.Blocks[0].Kind != cfg.Ret {
		t.Fatalf("CFG.Blocks = %#v, want one Ret BB", p.CFG.Blocks)
	}
	for _, s := range p.CFG.Blocks[0].Statements() {
		if s.Kind == stmt.KindAssign {
			t.Fatalf("Ret BB has an assignment, want none: %v", s)
		}
	}
	if len(p.Params) != 0 {
		t.Fatalf("Params = %v, want none", p.Params)
	}
	if p.ReturnStmt == nil || len(p.ReturnStmt.Returns) != 0 {
		t.Fatalf("Returns = %v, want none", p.ReturnStmt.Returns)
	}
}

// TestDecompileS2LinearFlow covers S2: BB0{r24:=5} -> BB1{return r24}
// should propagate the constant into the return and remove the dead
// assignment.
func TestDecompileS2LinearFlow(t *testing.T) {
	pr, dec := newTestProgram(t)
	ret := stmt.NewReturn()
	ret.Returns = []*exp.Expr{reg(24)}
	dec.Define(0x1000, cfg.NewRTL(0x1000, stmt.NewAssign(nil, reg(24), exp.IntConst(5, 32, false))), 0x1004, false)
	dec.Define(0x1004, cfg.NewRTL(0x1004, ret), 0, false)

	p, err := pr.DecodeEntryPoint("linear", 0x1000)
	if err != nil {
		t.Fatalf("DecodeEntryPoint: %v", err)
	}
	p.Decompile()

	if p.Status != Final {
		t.Fatalf("Status = %v, want Final", p.Status)
	}
	found := false
	for _, r := range p.ReturnStmt.Returns {
		if r.String() == "5" || (r.Kind == exp.KindConst && r.IntVal == 5) {
			found = true
		}
	}
	if !found {
		t.Fatalf("Returns = %v, want a constant 5 propagated in", p.ReturnStmt.Returns)
	}
}

// TestDecompileS5EndlessLoop covers S5: BB0{r24:=5} -> BB1{r24:=r24+1}
// looping to itself. Expects a PhiAssign at BB1's entry and the
// control-flow structurer marking BB1 an Endless loop.
func TestDecompileS5EndlessLoop(t *testing.T) {
	pr, dec := newTestProgram(t)
	// Each BB ends in an explicit unconditional Goto so the decode
	// sweep labels 0x2004 as a BB boundary before it ever decodes
	// past it: a fallthrough run into 0x2004 (only discovering it is
	// a jump target after the fact) would merge both addresses into
	// one BB instead of the two this scenario needs.
	dec.Define(0x2000, cfg.NewRTL(0x2000,
		stmt.NewAssign(nil, reg(24), exp.IntConst(5, 32, false)),
		stmt.NewGoto(exp.IntConst(0x2004, 32, false), false),
	), 0x2004, false)
	dec.Define(0x2004, cfg.NewRTL(0x2004,
		stmt.NewAssign(nil, reg(24), exp.Binary(exp.OpPlus, reg(24), exp.IntConst(1, 32, false))),
		stmt.NewGoto(exp.IntConst(0x2004, 32, false), false),
	), 0x2004, false)

	p, err := pr.DecodeEntryPoint("loop", 0x2000)
	if err != nil {
		t.Fatalf("DecodeEntryPoint: %v", err)
	}
	p.Decompile()

	if p.Status != Final {
		t.Fatalf("Status = %v, want Final", p.Status)
	}
	if !p.Structured {
		t.Fatal("Structured = false, want true")
	}

	var loopHead *cfg.BasicBlock
	for _, b := range p.CFG.Blocks {
		if b.LowAddr() == 0x2004 {
			loopHead = b
		}
	}
	if loopHead == nil {
		t.Fatal("no BB at the loop head address")
	}
	if loopHead.Type != cfg.LoopEndless {
		t.Fatalf("loop head Type = %v, want Endless", loopHead.Type)
	}
	hasPhi := false
	for _, s := range loopHead.AllStatements() {
		if s.Kind == stmt.KindPhiAssign {
			hasPhi = true
		}
	}
	if !hasPhi {
		t.Fatal("loop head has no PhiAssign")
	}
}

// TestDecompileS6RecursivePreservingCall covers S6: a function that
// pushes bp (r29) onto the stack via r28 (the stack pointer),
// self-calls, pops bp back and returns. r28 and r29 should be proven
// preserved across the call.
func TestDecompileS6RecursivePreservingCall(t *testing.T) {
	pr, dec := newTestProgram(t)
	sp := func() *exp.Expr { return reg(28) }
	bp := func() *exp.Expr { return reg(29) }

	// push bp: r28 := r28 - 4; m[r28] := r29
	dec.Define(0x3000, cfg.NewRTL(0x3000,
		stmt.NewAssign(nil, sp(), exp.Binary(exp.OpMinus, sp(), exp.IntConst(4, 32, false))),
		stmt.NewAssign(nil, exp.MemOf(sp()), bp()),
	), 0x3004, false)
	// self-call
	dec.Define(0x3004, cfg.NewRTL(0x3004, stmt.NewCall(exp.FuncConst("recur"), nil, nil)), 0x3008, false)
	// pop bp: r29 := m[r28]; r28 := r28 + 4
	dec.Define(0x3008, cfg.NewRTL(0x3008,
		stmt.NewAssign(nil, bp(), exp.MemOf(sp())),
		stmt.NewAssign(nil, sp(), exp.Binary(exp.OpPlus, sp(), exp.IntConst(4, 32, false))),
	), 0x300c, false)
	dec.Define(0x300c, cfg.NewRTL(0x300c, stmt.NewReturn()), 0, false)

	p, err := pr.DecodeEntryPoint("recur", 0x3000)
	if err != nil {
		t.Fatalf("DecodeEntryPoint: %v", err)
	}
	p.Decompile()

	if p.Status != Final {
		t.Fatalf("Status = %v, want Final", p.Status)
	}
	for _, name := range []string{"r(28)", "r(29)"} {
		if _, ok := p.Proven[name]; !ok {
			t.Errorf("Proven[%q] missing, want a preservation equation", name)
		}
	}
	for _, call := range p.calls() {
		for _, d := range call.Defines {
			if d.String() == "r(28)" || d.String() == "r(29)" {
				t.Errorf("call Defines still includes preserved location %s", d.String())
			}
		}
	}
}
