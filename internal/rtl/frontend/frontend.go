// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frontend declares the collaborator interfaces a binary
// loader/disassembler must satisfy to feed the decompilation core: a
// per-address instruction decoder, a byte/section view of the loaded
// image, a symbol table, and small architecture-specific policy
// queries. None of these are implemented here against a real binary
// format — that is out of scope — but the interfaces are the contract
// the core's procedure driver programs against, and frontend/fixture
// provides a deterministic in-memory implementation for tests.
package frontend

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// DecodeResult is what decoding the instruction at one address
// produces: the RTL it lifts to, the address immediately following it,
// and whether it is a delay-slot instruction (consumed by the caller
// rather than starting its own BB).
type DecodeResult struct {
	RTL       *cfg.RTL
	NextAddr  uint64
	DelaySlot bool
}

// Decoder lifts native instructions at a program counter into RTLs and
// answers register-file shape questions the lifting and SSA layers
// need (register width, name, and name-to-number lookup for building
// Refs from mnemonic operands).
type Decoder interface {
	Decode(pc uint64) (DecodeResult, error)
	RegName(num int) string
	RegSize(num int) int
	RegNumByName(name string) (int, bool)
}

// Section describes one loaded section of the binary image.
type Section struct {
	Name     string
	LowAddr  uint64
	HighAddr uint64
	ReadOnly bool
}

// BinaryImage is a byte/section-level view over the loaded binary:
// reading native-width values (for literal-pool and jump-table
// resolution), section lookup, and the read-only/string-constant
// classification the type analysis and indirect-jump resolver consult.
type BinaryImage interface {
	ReadNative(addr uint64, width int) (uint64, error)
	ReadNativeFloat(addr uint64, width int) (float64, error)
	SectionByAddr(addr uint64) (Section, bool)
	IsReadOnly(addr uint64) bool
	IsStringConstant(addr uint64) bool
	JumpTarget(addr uint64) (uint64, bool)
}

// Symbol is one named address in a SymbolTable.
type Symbol struct {
	Name    string
	Address uint64
	NoRet   bool // true if known never to return (e.g. exit, abort)
}

// SymbolTable resolves between symbolic names and addresses, used by
// the driver to name newly-discovered call targets and by the
// indirect-jump resolver to recognise jump-table bases.
type SymbolTable interface {
	FindByName(name string) (Symbol, bool)
	FindByAddress(addr uint64) (Symbol, bool)
}

// ArchFrontend answers architecture- and platform-specific policy
// questions the core driver needs but does not hardcode: which callees
// never return, a library call's default signature absent debug info,
// and ABI/OS flavor queries that shape preservation proving.
type ArchFrontend interface {
	IsNoReturnCallDest(name string) bool
	DefaultSignature(name string) *stmt.Signature
	IsWin32() bool
	ArchName() string
}
