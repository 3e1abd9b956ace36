// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proc implements the interprocedural decompilation driver:
// the DFS/cycle-detection walk over the call graph, the per-procedure
// SSA-build/bypass/propagate pipeline (middleDecompile), recursion
// group analysis and the preservation prover, all layered over
// cfg/ssaform/structure rather than duplicating their algorithms.
package proc

import (
	"github.com/5l1v3r1/boomerang-go/internal/event"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/ssaform"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// Procedure is one user or library procedure: its CFG, signature, the
// facts the driver has proven about it so far, and its place in the
// call graph's cycle structure.
type Procedure struct {
	Name  string
	Entry uint64
	Lib   bool // true for a library procedure: no body, signature only

	CFG *cfg.CFG
	Sig *stmt.Signature

	// Params holds one KindAssign per formal, LHS the local name the
	// body refers to, RHS the caller-visible machine location
	// (register or stack slot) it was promoted from.
	Params []*stmt.Stmt

	// Locals maps a local variable's name to its inferred type.
	Locals map[string]*dtype.Type

	// Symbols maps a location's string form to the local or
	// parameter name it has been promoted to, the symbol map
	// findPreserveds and promoteSignature consult and extend.
	Symbols map[string]string

	// Proven holds every equation the preservation prover has
	// established for this procedure, keyed by the LHS location's
	// string form (e.g. "r(28)" -> the Expr it was proven equal to
	// at every return).
	Proven map[string]*exp.Expr

	// AddressEscaped records locations whose address was taken
	// (AddrOf), which the prover and dead-statement removal must
	// treat conservatively.
	AddressEscaped map[string]bool

	// EntryUseCollector lists every location read before any
	// definition reaches it, the entry-point use set
	// FixCallAndPhiRefs bypasses through calls.
	EntryUseCollector []*exp.Expr

	// Premises records, for a procedure mid recursion-group analysis,
	// the proposed equations earlyDecompile assumed in order to make
	// progress before they are confirmed.
	Premises map[string]*exp.Expr

	ReturnStmt *stmt.Stmt // the CFG's single canonical return, if any

	Status Status
	Group  *CycleGroup

	// NoDecompile short-circuits decompile(): the procedure is decoded
	// (if it has a CFG at all) but never taken through SSA
	// construction or structuring, and goes straight to Final. Set on
	// a procedure the frontend has flagged as opaque (e.g. a thunk
	// whose body is print()-only disassembly, never decompiled
	// output).
	NoDecompile bool

	// Structured records whether control-flow structuring
	// (structure.StructConds/StructLoops/CheckConds) has run over
	// this procedure's CFG; left false by NoDecompile.
	Structured bool

	numbering *ssaform.Numbering
	prog      *Program
}

// NewProcedure returns an undecoded Procedure named name with entry
// address entry, owned by prog.
func NewProcedure(name string, entry uint64, prog *Program) *Procedure {
	return &Procedure{
		Name:           name,
		Entry:          entry,
		Locals:         map[string]*dtype.Type{},
		Symbols:        map[string]string{},
		Proven:         map[string]*exp.Expr{},
		AddressEscaped: map[string]bool{},
		Premises:       map[string]*exp.Expr{},
		Status:         Undecoded,
		prog:           prog,
	}
}

// ProcName implements exp.ProcRef, letting a *Procedure stand in for
// a Location's owning-procedure back-reference.
func (p *Procedure) ProcName() string { return p.Name }

// NewLibProcedure returns a Procedure with no body, carrying only the
// signature sig the frontend's ArchFrontend or a symbol table default
// supplied; calls to it are never recursed into.
func NewLibProcedure(name string, sig *stmt.Signature, prog *Program) *Procedure {
	p := NewProcedure(name, 0, prog)
	p.Lib = true
	p.Sig = sig
	p.Status = Final
	return p
}

func (p *Procedure) sink() *event.Sink {
	if p.prog == nil {
		return nil
	}
	return p.prog.Sink
}

// calls returns every KindCall statement in p's CFG, the call sites
// the DFS driver walks to find callees.
func (p *Procedure) calls() []*stmt.Stmt {
	if p.CFG == nil {
		return nil
	}
	var out []*stmt.Stmt
	for _, b := range p.CFG.Blocks {
		if b.Kind != cfg.Call {
			continue
		}
		for _, s := range b.Statements() {
			if s.Kind == stmt.KindCall {
				out = append(out, s)
			}
		}
	}
	return out
}

// Callees returns every distinct procedure p's body calls, in first-
// call order, resolving indirect call destinations through the owning
// Program the same way the driver's own DFS does. Used by report's
// call-graph dump, which has no business reaching into cfg/stmt
// internals itself.
func (p *Procedure) Callees() []*Procedure {
	var out []*Procedure
	seen := map[*Procedure]bool{}
	for _, call := range p.calls() {
		callee := p.calleeOf(call)
		if callee == nil || seen[callee] {
			continue
		}
		seen[callee] = true
		out = append(out, callee)
	}
	return out
}

// calleeOf resolves a call statement's destination procedure through
// the owning Program, or nil if it names no known procedure (an
// unresolved indirect call).
func (p *Procedure) calleeOf(call *stmt.Stmt) *Procedure {
	if p.prog == nil || call == nil {
		return nil
	}
	if ref, ok := call.DestProc.(*Procedure); ok {
		return ref
	}
	if call.DestProc != nil {
		return p.prog.ProcByName(call.DestProc.ProcName())
	}
	return nil
}

// locKey gives a stable string identity for an Expr, matching the
// key cfg/ssaform/stmt already use for their own location maps.
func locKey(e *exp.Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}
