// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/5l1v3r1/boomerang-go/internal/event"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend/fixture"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// jsonExpr is the operand mini-language a fixture program's
// instructions are built from: a register, an integer constant, or a
// direct-call target name. There is no encoding/parsing layer here
// (that's the out-of-scope collaborator per spec.md §6) — a fixture
// names its operands directly the way frontend/fixture's own tests
// build Exprs by hand.
type jsonExpr struct {
	Kind     string `json:"kind"` // "reg", "int", "func"
	Num      int64  `json:"num,omitempty"`
	Name     string `json:"name,omitempty"`
	Width    int    `json:"width,omitempty"`
	Unsigned bool   `json:"unsigned,omitempty"`
}

func (e *jsonExpr) toExpr() (*exp.Expr, error) {
	if e == nil {
		return nil, nil
	}
	width := e.Width
	if width == 0 {
		width = 32
	}
	switch e.Kind {
	case "reg":
		return exp.RegOf(exp.IntConst(e.Num, 32, false)), nil
	case "int":
		return exp.IntConst(e.Num, width, e.Unsigned), nil
	case "func":
		return exp.FuncConst(e.Name), nil
	default:
		return nil, fmt.Errorf("fixture: unknown operand kind %q", e.Kind)
	}
}

// jsonInst is one instruction in a fixture procedure's literal RTL
// stream: one statement per Op, addressed and wired to Next the same
// way frontend/fixture.Decoder.Define expects.
type jsonInst struct {
	Addr       uint64    `json:"addr"`
	Op         string    `json:"op"` // "assign", "call", "branch", "goto", "return"
	LHS        *jsonExpr `json:"lhs,omitempty"`
	RHS        *jsonExpr `json:"rhs,omitempty"`
	Dest       *jsonExpr `json:"dest,omitempty"`
	Cond       *jsonExpr `json:"cond,omitempty"`
	BranchType string    `json:"branch_type,omitempty"`
	Next       uint64    `json:"next,omitempty"`
}

func (ji *jsonInst) toStmt() (*stmt.Stmt, error) {
	lhs, err := ji.LHS.toExpr()
	if err != nil {
		return nil, err
	}
	rhs, err := ji.RHS.toExpr()
	if err != nil {
		return nil, err
	}
	dest, err := ji.Dest.toExpr()
	if err != nil {
		return nil, err
	}
	cond, err := ji.Cond.toExpr()
	if err != nil {
		return nil, err
	}
	switch ji.Op {
	case "assign":
		return stmt.NewAssign(dtype.Int32, lhs, rhs), nil
	case "call":
		return stmt.NewCall(dest, nil, nil), nil
	case "branch":
		return stmt.NewBranch(dest, cond, branchType(ji.BranchType), false), nil
	case "goto":
		return stmt.NewGoto(dest, false), nil
	case "return":
		return stmt.NewReturn(), nil
	default:
		return nil, fmt.Errorf("fixture: unknown instruction op %q", ji.Op)
	}
}

func branchType(name string) stmt.BranchType {
	switch name {
	case "eq":
		return stmt.BranchEquals
	case "ne":
		return stmt.BranchNotEqual
	case "lt":
		return stmt.BranchLess
	case "le":
		return stmt.BranchLessEq
	case "gt":
		return stmt.BranchGtr
	case "ge":
		return stmt.BranchGtrEq
	default:
		return stmt.BranchNone
	}
}

// jsonProc names one procedure fixture: its entry address and literal
// instruction stream.
type jsonProc struct {
	Name  string      `json:"name"`
	Entry uint64      `json:"entry"`
	Insts []jsonInst  `json:"insts"`
}

// jsonReg registers one machine register's decoder-visible name/size.
type jsonReg struct {
	Num  int    `json:"num"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

// jsonGlobal names one program-wide data symbol for the symbol
// header/report.
type jsonGlobal struct {
	Name    string `json:"name"`
	Address uint64 `json:"address"`
	Type    string `json:"type"` // "i32", "u32", "i64", "f32", "f64", "ptr"
}

// jsonProgram is the whole-program fixture description cmd/boomgo
// loads from a JSON file: a register file, the global table, and
// every procedure's literal instruction stream, plus which of them
// are the program's entry points.
type jsonProgram struct {
	Arch struct {
		Name     string   `json:"name"`
		Win32    bool     `json:"win32"`
		NoReturn []string `json:"noreturn"`
	} `json:"arch"`
	Regs       []jsonReg    `json:"regs"`
	Globals    []jsonGlobal `json:"globals"`
	Procedures []jsonProc   `json:"procedures"`
	Entries    []string     `json:"entries"`
}

func globalType(name string) *dtype.Type {
	switch name {
	case "u32":
		return dtype.NewInt(32, false)
	case "i64":
		return dtype.NewInt(64, true)
	case "f32":
		return dtype.NewFloat(32)
	case "f64":
		return dtype.NewFloat(64)
	case "ptr":
		return dtype.NewPointer(dtype.Void)
	default:
		return dtype.Int32
	}
}

// loadProgram reads path, builds the fixture frontend it describes
// (one shared Decoder spanning every procedure, so cross-procedure
// direct calls resolve within the single Program the fixture/build.go
// per-fixture BuildDecoders path isn't suited for), and returns a
// *proc.Program with every named entry point decoded but not yet run
// through Decompile.
func loadProgram(path string, sink *event.Sink) (*proc.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jp jsonProgram
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}

	regs := fixture.NewRegFile()
	for _, r := range jp.Regs {
		regs.Define(r.Num, r.Name, r.Size)
	}

	arch := fixture.NewArch(jp.Arch.Name)
	arch.Win32 = jp.Arch.Win32
	for _, name := range jp.Arch.NoReturn {
		arch.MarkNoReturn(name)
	}

	dec := fixture.NewDecoder(regs, fixture.DefaultStride)
	for _, jproc := range jp.Procedures {
		for _, ji := range jproc.Insts {
			s, err := ji.toStmt()
			if err != nil {
				return nil, fmt.Errorf("procedure %s at 0x%x: %w", jproc.Name, ji.Addr, err)
			}
			rtl := cfg.NewRTL(ji.Addr, s)
			dec.Define(ji.Addr, rtl, ji.Next, false)
		}
	}

	img := fixture.NewImage()
	syms := fixture.NewSymbols()
	for _, jproc := range jp.Procedures {
		syms.Define(frontend.Symbol{Name: jproc.Name, Address: jproc.Entry})
	}

	pr := proc.NewProgram(dec, img, syms, arch, sink)
	for _, g := range jp.Globals {
		pr.AddGlobal(&proc.Global{Name: g.Name, Address: g.Address, Type: globalType(g.Type)})
	}

	byName := map[string]uint64{}
	for _, jproc := range jp.Procedures {
		byName[jproc.Name] = jproc.Entry
	}
	entries := jp.Entries
	if len(entries) == 0 {
		for _, jproc := range jp.Procedures {
			entries = append(entries, jproc.Name)
		}
	}
	for _, name := range entries {
		entry, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("entry %q is not a defined procedure", name)
		}
		if _, err := pr.DecodeEntryPoint(name, entry); err != nil {
			return nil, fmt.Errorf("decoding entry %s: %w", name, err)
		}
	}
	return pr, nil
}
