// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"fmt"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/structure"
)

// CreateFunction registers and decodes a new user procedure named name
// at entry, or returns the existing one if entry was already
// registered. This is the seam between the frontend's decoder and the
// procedure table: every procedure the driver ever walks starts here.
func (pr *Program) CreateFunction(name string, entry uint64) (*Procedure, error) {
	if existing := pr.ProcByAddr(entry); existing != nil {
		return existing, nil
	}
	c, ret, err := pr.decodeCFG(name, entry)
	if err != nil {
		return nil, err
	}

	// A call site reached through some other entry point may already
	// have registered name as a signature-only library placeholder
	// (resolveCallProc, on first seeing an unresolved callee). Promote
	// it in place rather than allocating a second Procedure under the
	// same name, so every DestProc already pointing at the stub keeps
	// pointing at the now-real definition.
	p := pr.byName[name]
	promoting := p != nil && p.Lib
	if !promoting {
		p = NewProcedure(name, entry, pr)
	} else {
		p.Entry = entry
		p.Lib = false
	}
	p.CFG = c
	p.ReturnStmt = ret
	p.Status = Decoded

	if promoting {
		pr.byName[name] = p
		pr.byAddr[entry] = p
	} else {
		pr.AddProcedure(p)
	}
	return p, nil
}

// DecodeEntryPoint is CreateFunction under the name a caller already
// knows, kept as a distinct name for the driver entry points that
// think in terms of "decode this entry point" rather than "define
// this function".
func (pr *Program) DecodeEntryPoint(name string, addr uint64) (*Procedure, error) {
	return pr.CreateFunction(name, addr)
}

// AddEntryPoint registers addr as a program entry point, naming it
// from the symbol table if possible and sub_<addr> otherwise.
func (pr *Program) AddEntryPoint(addr uint64) (*Procedure, error) {
	name := fmt.Sprintf("sub_%x", addr)
	if pr.syms != nil {
		if sym, ok := pr.syms.FindByAddress(addr); ok && sym.Name != "" {
			name = sym.Name
		}
	}
	return pr.DecodeEntryPoint(name, addr)
}

// DecompileAll runs Decompile across every user procedure not already
// Final, in entry-address order, then the whole-program passes that
// only make sense once every procedure's signature has settled:
// pruning call-site results nothing reads, and a cross-procedure
// type-analysis refinement round.
func (pr *Program) DecompileAll() {
	for _, p := range pr.UserProcedures() {
		if p.Status < Final {
			p.Decompile()
		}
	}
	pr.RemoveUnusedReturns()
	pr.GlobalTypeAnalysis()
}

// RemoveUnusedReturns prunes a callee's ReturnStmt.Returns entries
// that no recorded call site's Defines ever carries forward: Defines
// already reflects the intersection of what the callee modifies with
// what's live after each call (stmt.UpdateDefines), so a return value
// absent from every call site's Defines is provably dead across the
// whole program, not just locally unused. A callee with no known
// caller at all is left untouched — it may be an exported entry point
// whose callers this program view never sees. Reports whether
// anything was pruned.
func (pr *Program) RemoveUnusedReturns() bool {
	changed := false
	usedByAnyCaller := map[*Procedure]map[string]bool{}
	hasCaller := map[*Procedure]bool{}

	for _, caller := range pr.procs {
		if caller.CFG == nil {
			continue
		}
		for _, b := range caller.CFG.Blocks {
			for _, s := range b.Statements() {
				if s.Kind != stmt.KindCall {
					continue
				}
				callee, ok := s.DestProc.(*Procedure)
				if !ok || callee == nil {
					continue
				}
				hasCaller[callee] = true
				for _, d := range s.Defines {
					if usedByAnyCaller[callee] == nil {
						usedByAnyCaller[callee] = map[string]bool{}
					}
					usedByAnyCaller[callee][locKey(d)] = true
				}
			}
		}
	}

	for _, callee := range pr.procs {
		if callee.ReturnStmt == nil || !hasCaller[callee] {
			continue
		}
		keep := usedByAnyCaller[callee]
		var kept []*exp.Expr
		for _, r := range callee.ReturnStmt.Returns {
			if keep[locKey(r.Base())] {
				kept = append(kept, r)
				continue
			}
			changed = true
		}
		if len(kept) != len(callee.ReturnStmt.Returns) {
			callee.ReturnStmt.Returns = kept
		}
	}
	return changed
}

// GlobalTypeAnalysis re-runs the data-flow type lattice once more
// across every procedure's CFG: Procedure.finalize already ran it
// locally to a fixpoint as each procedure went Final, but a callee's
// types can still narrow after a caller that reads its return value
// has already settled, so this whole-program pass gives every
// procedure one more chance to meet against its (by now final)
// neighbours. Only one such whole-program call is meant to be active
// at a time — it is not safe to interleave with a concurrent
// Decompile().
func (pr *Program) GlobalTypeAnalysis() {
	for _, p := range pr.procs {
		if p.CFG == nil {
			continue
		}
		if !structure.RunTypeAnalysis(p.CFG) {
			if pr.Sink != nil {
				pr.Sink.Warning((&TypeAnalysisInconsistencyError{Proc: p.Name}).Error())
			}
		}
	}
}
