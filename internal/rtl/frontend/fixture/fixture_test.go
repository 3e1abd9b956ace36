// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import (
	"context"
	"testing"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

func reg(n int) *exp.Expr { return exp.RegOf(exp.IntConst(int64(n), 32, false)) }

func newDict() *frontend.InstDict {
	d := frontend.NewInstDict()
	d.Define("mov", 2, func(ops []*exp.Expr) []*stmt.Stmt {
		return []*stmt.Stmt{stmt.NewAssign(nil, ops[0], ops[1])}
	})
	d.Define("ret", 0, func(ops []*exp.Expr) []*stmt.Stmt {
		return []*stmt.Stmt{stmt.NewReturn()}
	})
	return d
}

// TestBuildDecodersExpandsConcurrently checks two independent
// procedure fixtures both expand correctly when built in one
// BuildDecoders call.
func TestBuildDecodersExpandsConcurrently(t *testing.T) {
	dict := newDict()
	regs := NewRegFile()
	regs.Define(24, "r24", 32)

	fixtures := []ProcFixture{
		{
			Name:  "f",
			Entry: 0x1000,
			Insts: []InstSpec{
				{Addr: 0x1000, Mnemonic: "mov", Operands: []*exp.Expr{reg(24), exp.IntConst(5, 32, false)}},
				{Addr: 0x1004, Mnemonic: "ret"},
			},
		},
		{
			Name:  "g",
			Entry: 0x2000,
			Insts: []InstSpec{
				{Addr: 0x2000, Mnemonic: "ret"},
			},
		},
	}

	decoders, err := BuildDecoders(context.Background(), dict, regs, fixtures)
	if err != nil {
		t.Fatalf("BuildDecoders: %v", err)
	}
	if len(decoders) != 2 {
		t.Fatalf("got %d decoders, want 2", len(decoders))
	}

	fDec, ok := decoders["f"]
	if !ok {
		t.Fatalf("missing decoder for fixture f")
	}
	res, err := fDec.Decode(0x1000)
	if err != nil {
		t.Fatalf("Decode(0x1000): %v", err)
	}
	if res.NextAddr != 0x1004 {
		t.Errorf("NextAddr = 0x%x, want 0x1004", res.NextAddr)
	}
	if len(res.RTL.Stmts) != 1 || res.RTL.Stmts[0].Kind != stmt.KindAssign {
		t.Errorf("decoded RTL = %+v, want single Assign", res.RTL.Stmts)
	}

	if _, err := fDec.Decode(0x9999); err == nil {
		t.Errorf("Decode at undefined address should fail")
	}
}

// TestBuildDecodersPropagatesUnknownMnemonic checks a bad fixture
// program surfaces as an error rather than a panic.
func TestBuildDecodersPropagatesUnknownMnemonic(t *testing.T) {
	dict := newDict()
	regs := NewRegFile()
	fixtures := []ProcFixture{
		{Name: "bad", Entry: 0x1000, Insts: []InstSpec{{Addr: 0x1000, Mnemonic: "nope"}}},
	}
	if _, err := BuildDecoders(context.Background(), dict, regs, fixtures); err == nil {
		t.Fatalf("expected an error for an unknown mnemonic")
	}
}

// TestArchAndSymbolsAndImage exercises the remaining three
// frontend interfaces together.
func TestArchAndSymbolsAndImage(t *testing.T) {
	arch := NewArch("fixturearch")
	arch.MarkNoReturn("exit")
	arch.SetDefaultSignature("printf", &stmt.Signature{Name: "printf"})

	var _ frontend.ArchFrontend = arch
	if !arch.IsNoReturnCallDest("exit") {
		t.Errorf("exit should be a no-return call dest")
	}
	if arch.DefaultSignature("printf") == nil {
		t.Errorf("printf should have a default signature")
	}
	if arch.IsWin32() {
		t.Errorf("fixture arch defaults to non-Win32")
	}

	syms := NewSymbols()
	syms.Define(frontend.Symbol{Name: "main", Address: 0x1000})
	if _, ok := syms.FindByName("main"); !ok {
		t.Errorf("FindByName(main) should succeed")
	}
	if _, ok := syms.FindByAddress(0x1000); !ok {
		t.Errorf("FindByAddress(0x1000) should succeed")
	}

	img := NewImage()
	img.AddSection(frontend.Section{Name: ".text", LowAddr: 0x1000, HighAddr: 0x2000, ReadOnly: true})
	img.SetWord(0x1500, 42)
	v, err := img.ReadNative(0x1500, 32)
	if err != nil || v != 42 {
		t.Errorf("ReadNative(0x1500) = %v, %v, want 42, nil", v, err)
	}
	if !img.IsReadOnly(0x1500) {
		t.Errorf("0x1500 should be read-only (.text)")
	}
	if img.IsReadOnly(0x5000) {
		t.Errorf("0x5000 is outside any section, should not be read-only")
	}
}
