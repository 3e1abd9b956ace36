// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/ssaform"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// Decompile runs the recursion-aware interprocedural driver over p and
// everything it (transitively) calls, bringing every reachable
// non-library procedure to Status Final. It is the public entry point
// a caller (Program.DecompileAll, a test, cmd/boomgo) invokes per
// entry point; decompile itself is the DFS that recurses.
func (p *Procedure) Decompile() {
	p.decompile(nil)
}

// decompile is the call-graph DFS: push p onto path, walk its calls
// looking for a callee already on the path (a back-edge, unioning
// everything between into one CycleGroup) or one still to be visited
// (recursing into it first), then run this procedure's own pipeline
// once every callee has either settled or joined p's cycle group.
// Returns the cycle group p ended up part of mid-recursion, or nil
// once that group (if any) has been fully resolved by
// recursionGroupAnalysis.
func (p *Procedure) decompile(path []*Procedure) *CycleGroup {
	if p.Status >= Final {
		return nil
	}
	path = append(path, p)
	p.Status = Visited

	if p.NoDecompile {
		if p.CFG != nil {
			p.initialiseDecompile()
		}
		p.Status = Final
		return nil
	}

	var child *CycleGroup

	for _, call := range p.calls() {
		callee := p.calleeOf(call)
		if callee == nil || callee.Lib {
			continue
		}
		switch {
		case callee == p:
			// Direct self-recursion: no distinct callee to wait on, but
			// the procedure is its own cycle.
			grp := newCycleGroup(p)
			child = grp.union(child)
			p.Status = InCycle

		case callee.Status == Visited || callee.Status == InCycle:
			// Back-edge: callee is an ancestor on path (or already
			// joined some group reachable from path). Union everything
			// from callee's first appearance on path onward.
			var seg []*Procedure
			if idx := indexOf(path, callee); idx >= 0 {
				seg = path[idx:]
			} else if callee.Group != nil {
				f := firstInPath(path, callee.Group)
				if idx := indexOf(path, f); idx >= 0 {
					seg = path[idx:]
				} else {
					seg = callee.Group.procs()
				}
			} else {
				seg = []*Procedure{callee}
			}
			grp := newCycleGroupFrom(seg)
			grp = grp.union(callee.Group)
			grp = grp.union(child)
			child = grp
			p.Status = InCycle

		case callee.Status < Final:
			if tmp := callee.decompile(path); tmp != nil {
				child = tmp.union(child)
				p.Status = InCycle
			}
			call.CalleeReturn = callee.ReturnStmt

		default:
			call.CalleeReturn = callee.ReturnStmt
		}
	}

	if child == nil {
		p.initialiseDecompile()
		p.earlyDecompile()
		child = p.middleDecompile(path)
	}

	if child == nil {
		p.remUnusedStmtEtc()
		p.finalize()
		p.Status = Final
		return nil
	}

	if firstInPath(path, child) == p {
		recursionGroupAnalysis(child.procs())
		return nil
	}
	return child
}

func indexOf(path []*Procedure, p *Procedure) int {
	for i, q := range path {
		if q == p {
			return i
		}
	}
	return -1
}

// firstInPath returns the earliest procedure on path (root-first) that
// belongs to grp, the DFS's test for "have I, the caller currently
// unwinding, reached the head of this cycle yet".
func firstInPath(path []*Procedure, grp *CycleGroup) *Procedure {
	if grp == nil {
		return nil
	}
	for _, q := range path {
		if grp.Members[q] {
			return q
		}
	}
	return nil
}

func newCycleGroupFrom(procs []*Procedure) *CycleGroup {
	cg := &CycleGroup{Members: map[*Procedure]bool{}}
	for _, p := range procs {
		cg.Members[p] = true
		p.Group = cg
	}
	return cg
}

// recursionGroupAnalysis processes a strongly-connected set of mutually
// recursive procedures as a unit: every member runs its own early
// pipeline first (so each has an EntryUseCollector and an initial SSA
// form to reason about), then its middle pipeline (which, now that
// every group member's ReturnStmt exists, can bypass calls within the
// group same as any other call), then a couple of rounds of
// dead-statement removal once the group's defines/proven facts have
// all settled.
func recursionGroupAnalysis(group []*Procedure) {
	for _, p := range group {
		if p.Status >= EarlyDone {
			continue
		}
		p.initialiseDecompile()
		p.earlyDecompile()
	}
	for _, p := range group {
		p.middleDecompile(nil)
	}
	for i := 0; i < 2; i++ {
		for _, p := range group {
			p.remUnusedStmtEtc()
		}
	}
	for _, p := range group {
		p.finalize()
		p.Status = Final
	}
}

// initialiseDecompile prepares p's CFG for dataflow: address order
// (needed for deterministic indirect-jump table scans and report
// output alike), dominators (phi placement needs them), and a fresh
// statement numbering (every later def/use reference is a
// *Numbering-resolved StmtRef, not a raw pointer, so passes can be
// re-run without invalidating old refs).
func (p *Procedure) initialiseDecompile() {
	p.CFG.SortByAddress()
	p.CFG.ComputeDominators()
	p.numbering = ssaform.NewNumbering(p.CFG)
	if p.Status < Decoded {
		p.Status = Decoded
	}
}

// earlyDecompile brings p to its first SSA form: call defines are
// narrowed to what's actually live past the call, literal memory
// reads of known read-only globals fold to constants, then phi
// placement, renaming and the entry-use collector (every location
// whose first reaching def is procedure entry) fall out of the
// now-subscripted CFG, finishing with one propagation round so trivial
// copies introduced by renaming collapse immediately.
func (p *Procedure) earlyDecompile() {
	p.updateCallDefines()
	p.replaceSimpleGlobalConstants()

	ssaform.PlacePhiFunctions(p.CFG, p.numbering)
	for _, loc := range definedLocations(p.CFG) {
		ssaform.RenameLocation(p.CFG, loc, p.numbering)
	}
	p.computeEntryUseCollector()
	ssaform.PropagateStatements(p.CFG, p.numbering)
	p.Status = EarlyDone
}

// middleDecompile is the core iterative pipeline: bypass every def
// that resolves to a call or a uniform phi, propagate the result,
// prove what this procedure preserves across every path, promote the
// surviving entry uses to a formal signature, then alternate
// phi-placement/renaming with return/argument updates and another
// propagation round until nothing changes. path carries the DFS's
// current call stack through to analyseIndirectJumps, which may need
// to re-decode and re-recurse if a newly-resolved indirect target
// exposes more of the call graph.
func (p *Procedure) middleDecompile(path []*Procedure) *CycleGroup {
	n := p.numbering
	prove := p.prog.prove

	ssaform.FixCallAndPhiRefs(p.CFG, n, p.EntryUseCollector, prove)
	ssaform.PropagateStatements(p.CFG, n)

	p.findSpPreservation()
	p.findPreserveds()
	p.promoteSignature()

	pm := &ssaform.PassManager{
		MaxPasses: passCapMiddleDecompile,
		Passes: []ssaform.Pass{
			{Name: "PlacePhiAndRename", ExecuteOnProcedure: func(c *cfg.CFG) bool {
				placed := ssaform.PlacePhiFunctions(c, n)
				for _, loc := range definedLocations(c) {
					ssaform.RenameLocation(c, loc, n)
				}
				return len(placed) > 0
			}},
			{Name: "UpdateReturns", ExecuteOnProcedure: p.updateReturnsPass},
			{Name: "Propagate", ExecuteOnProcedure: func(c *cfg.CFG) bool {
				return ssaform.PropagateStatements(c, n)
			}},
			{Name: "RemoveSpAssigns", ExecuteOnProcedure: p.removeSpAssigns},
			callArgumentUpdatePass,
		},
	}
	if _, converged := pm.Run(p.CFG); !converged {
		if sink := p.sink(); sink != nil {
			sink.Warning((&FixpointExceededError{Proc: p.Name, Pass: "middleDecompile", Cap: passCapMiddleDecompile}).Error())
		}
	}

	// One more phi/rename/propagate round: promoteSignature and the
	// preservation proofs above can themselves expose new copies worth
	// collapsing once call/phi bypass has stabilised.
	ssaform.PlacePhiFunctions(p.CFG, n)
	for _, loc := range definedLocations(p.CFG) {
		ssaform.RenameLocation(p.CFG, loc, n)
	}
	ssaform.PropagateStatements(p.CFG, n)

	p.Status = Preserveds

	if p.analyseIndirectJumps() {
		if err := p.redecodeFromScratch(); err == nil {
			p.initialiseDecompile()
			p.earlyDecompile()
			return p.middleDecompile(path)
		}
	}
	return nil
}

// findSpPreservation runs the preservation prover before
// promoteSignature sees the entry-use set, specifically so a
// stack-pointer-shaped local (something every non-leaf procedure
// reads at entry and, if it balances its own call frame, preserves)
// is proven and folded before it can be mistaken for a genuine formal
// parameter. In this driver the prover makes no distinction between a
// stack pointer and any other preserved register, so this is simply
// an earlier call to findPreserveds — kept as its own named step to
// match the pipeline's documented shape and as a seam for a later,
// narrower implementation.
func (p *Procedure) findSpPreservation() {
	p.findPreserveds()
}

// promoteSignature turns every entry use not already proven preserved
// into a formal parameter, and every surviving return value into a
// return type, building p.Sig as it goes. Reports whether it changed
// the signature.
func (p *Procedure) promoteSignature() bool {
	changed := false
	have := map[string]bool{}
	for _, prm := range p.Params {
		have[locKey(prm.RHS)] = true
	}
	for _, loc := range p.EntryUseCollector {
		if loc == nil {
			continue
		}
		key := locKey(loc)
		if have[key] {
			continue
		}
		if _, preserved := p.Proven[key]; preserved {
			continue
		}
		have[key] = true
		name := fmt.Sprintf("arg%d", len(p.Params))
		ty := dtype.NewInt(32, true)
		lhs := exp.Location(exp.LocParam, nil, name, p)
		p.Params = append(p.Params, stmt.NewAssign(ty, lhs, loc.Clone()))
		p.Symbols[key] = name
		p.Locals[name] = ty
		changed = true
	}

	if p.Sig == nil {
		p.Sig = &stmt.Signature{Name: p.Name}
	}
	paramTypes := make([]*dtype.Type, len(p.Params))
	for i, prm := range p.Params {
		paramTypes[i] = prm.Type
	}
	if len(paramTypes) != len(p.Sig.Params) {
		p.Sig.Params = paramTypes
		changed = true
	}
	if p.ReturnStmt != nil {
		retTypes := make([]*dtype.Type, len(p.ReturnStmt.Returns))
		for i := range retTypes {
			retTypes[i] = dtype.NewInt(32, true)
		}
		if len(retTypes) != len(p.Sig.Returns) {
			p.Sig.Returns = retTypes
			changed = true
		}
	}
	return changed
}

// updateReturnsPass fits ssaform.Pass's shape around
// stmt.Stmt.UpdateReturns/UpdateModifieds, dropping any return or
// modified location the preservation prover has since shown is just
// the procedure's own entry value passing through.
func (p *Procedure) updateReturnsPass(c *cfg.CFG) bool {
	if p.ReturnStmt == nil {
		return false
	}
	beforeR, beforeM := len(p.ReturnStmt.Returns), len(p.ReturnStmt.Modifieds)
	p.ReturnStmt.UpdateReturns(func(e *exp.Expr) *exp.Expr {
		if e == nil || e.Kind != exp.KindRef {
			return nil
		}
		if v, ok := p.Proven[locKey(e.Base())]; ok {
			return v
		}
		return nil
	})
	p.ReturnStmt.UpdateModifieds(func(e *exp.Expr) bool {
		_, ok := p.Proven[locKey(e)]
		return ok
	})
	return len(p.ReturnStmt.Returns) != beforeR || len(p.ReturnStmt.Modifieds) != beforeM
}

// removeSpAssigns drops an Assign that has collapsed, via propagation,
// to a literal self-copy of a location this procedure has proven it
// preserves — the SSA-form residue of a stack-pointer push/pop pair
// (or any other save/restore) whose net effect is now known to be
// nothing.
func (p *Procedure) removeSpAssigns(c *cfg.CFG) bool {
	changed := false
	for _, b := range c.Blocks {
		dead := map[*stmt.Stmt]bool{}
		for _, s := range b.Statements() {
			if s.Kind != stmt.KindAssign || s.RHS == nil || s.RHS.Kind != exp.KindRef {
				continue
			}
			if !exp.Equal(s.RHS.Base(), s.LHS) {
				continue
			}
			if _, proven := p.Proven[locKey(s.LHS)]; proven {
				dead[s] = true
			}
		}
		if len(dead) > 0 {
			filterRTLs(b, dead)
			changed = true
		}
	}
	return changed
}

// updateCallDefines narrows every call statement's Defines to what the
// callee actually modifies intersected with what's live immediately
// after the call, using ssaform.Liveness's live-in sets unioned across
// a call block's successors to stand in for "live after".
func (p *Procedure) updateCallDefines() {
	liveIn := ssaform.Liveness(p.CFG)
	for _, b := range p.CFG.Blocks {
		if b.Kind != cfg.Call {
			continue
		}
		var liveAfter []*exp.Expr
		seen := map[string]bool{}
		for _, succ := range b.Succs {
			for key, v := range liveIn[succ] {
				if !seen[key] {
					seen[key] = true
					liveAfter = append(liveAfter, v)
				}
			}
		}
		for _, s := range b.Statements() {
			if s.Kind != stmt.KindCall {
				continue
			}
			var modifieds []*exp.Expr
			if callee, ok := s.DestProc.(*Procedure); ok && callee != nil {
				s.CalleeReturn = callee.ReturnStmt
				if callee.ReturnStmt != nil {
					modifieds = callee.ReturnStmt.Modifieds
				}
			}
			s.UpdateDefines(modifieds, liveAfter)
		}
	}
}

// replaceSimpleGlobalConstants folds memOf(k) to a literal wherever k
// is a constant address that lands in a read-only section of the
// image, the load-time equivalent of constant propagation for data
// the loader already fixed at build time.
func (p *Procedure) replaceSimpleGlobalConstants() {
	if p.prog == nil || p.prog.img == nil {
		return
	}
	img := p.prog.img
	rewrite := func(sub *exp.Expr) *exp.Expr {
		if sub == nil || sub.Kind != exp.KindUnary || sub.Op != exp.OpMemOf {
			return sub
		}
		addr, ok := constAddr(sub.Base())
		if !ok || !img.IsReadOnly(addr) {
			return sub
		}
		v, err := img.ReadNative(addr, 32)
		if err != nil {
			return sub
		}
		return exp.IntConst(int64(v), 32, false)
	}
	for _, b := range p.CFG.Blocks {
		for _, s := range b.Statements() {
			mapOperandExprs(s, func(e *exp.Expr) *exp.Expr {
				if e == nil {
					return nil
				}
				return e.AcceptModifier(exp.ModifyFunc(rewrite))
			})
		}
	}
}

// computeEntryUseCollector scans the freshly-renamed CFG for every Ref
// whose Def is nil — renaming's mark for "no definition reaches this
// use within the procedure", i.e. a value read from whatever the
// caller left at procedure entry.
func (p *Procedure) computeEntryUseCollector() {
	seen := map[string]bool{}
	var out []*exp.Expr
	visit := func(e *exp.Expr) {
		if e == nil {
			return
		}
		e.Accept(exp.VisitFunc(func(sub *exp.Expr) bool {
			if sub.Kind == exp.KindRef && sub.Def == nil {
				key := locKey(sub.Base())
				if !seen[key] {
					seen[key] = true
					out = append(out, sub.Base())
				}
			}
			return true
		}))
	}
	for _, b := range p.CFG.Blocks {
		forEachOperandExpr(b.AllStatements(), visit)
	}
	p.EntryUseCollector = out
}

// remUnusedStmtEtc iterates dead-assignment removal to a local
// fixpoint: a location used by nothing else in the CFG (and never
// address-escaped) can be dropped, which can in turn make its own
// operands' definitions dead in the next round.
func (p *Procedure) remUnusedStmtEtc() bool {
	anyChanged := false
	for {
		used := map[string]bool{}
		for _, b := range p.CFG.Blocks {
			forEachOperandExpr(b.AllStatements(), func(e *exp.Expr) {
				e.Accept(exp.VisitFunc(func(sub *exp.Expr) bool {
					if sub.Kind == exp.KindRef {
						used[locKey(sub.Base())] = true
					}
					return true
				}))
			})
		}

		changed := false
		for _, b := range p.CFG.Blocks {
			dead := map[*stmt.Stmt]bool{}
			for _, s := range b.Statements() {
				if s.Kind != stmt.KindAssign && s.Kind != stmt.KindBoolAssign {
					continue
				}
				key := locKey(s.LHS)
				if used[key] || p.AddressEscaped[key] {
					continue
				}
				dead[s] = true
			}
			if len(dead) > 0 {
				filterRTLs(b, dead)
				changed = true
			}

			var keepPhis []*stmt.Stmt
			for _, phi := range b.Phis {
				key := locKey(phi.LHS)
				if used[key] || p.AddressEscaped[key] {
					keepPhis = append(keepPhis, phi)
					continue
				}
				changed = true
			}
			if changed && len(keepPhis) != len(b.Phis) {
				b.Phis = keepPhis
			}
		}
		if !changed {
			break
		}
		anyChanged = true
	}
	return anyChanged
}

// filterRTLs drops every statement in dead from b's RTL runs, leaving
// run boundaries and surviving statement order untouched.
func filterRTLs(b *cfg.BasicBlock, dead map[*stmt.Stmt]bool) {
	for _, r := range b.RTLs {
		if len(r.Stmts) == 0 {
			continue
		}
		keep := r.Stmts[:0:0]
		for _, s := range r.Stmts {
			if !dead[s] {
				keep = append(keep, s)
			}
		}
		r.Stmts = keep
	}
}

// analyseIndirectJumps retries resolution of every computed jump/call
// left without successors after decode (the cases decodeCFG couldn't
// resolve at the time, e.g. because a jump table's base was itself
// computed from a value decode hadn't propagated yet), wiring in any
// newly-resolved edge. Reports whether it resolved anything.
func (p *Procedure) analyseIndirectJumps() bool {
	if p.prog == nil {
		return false
	}
	resolved := false
	for _, b := range p.CFG.Blocks {
		if (b.Kind != cfg.CompJump && b.Kind != cfg.CompCall) || len(b.Succs) > 0 {
			continue
		}
		stmts := b.Statements()
		if len(stmts) == 0 {
			continue
		}
		term := stmts[len(stmts)-1]
		var dest *exp.Expr
		switch term.Kind {
		case stmt.KindGoto:
			dest = term.GotoDest
		case stmt.KindCall:
			dest = term.DestExpr
		default:
			continue
		}
		targets, ok := p.prog.resolveIndirectTargets(b.LowAddr(), dest)
		if !ok {
			if sink := p.sink(); sink != nil {
				sink.Warning((&UnanalysableIndirectTargetError{Proc: p.Name, Addr: b.LowAddr()}).Error())
			}
			continue
		}
		for _, t := range targets {
			if to := p.CFG.BlockByAddr(t); to != nil {
				p.CFG.AddEdge(b, to)
				resolved = true
			}
		}
	}
	return resolved
}

// redecodeFromScratch discards p's current CFG and decodes it again
// from entry, the recovery step analyseIndirectJumps triggers once a
// previously-unresolved computed jump now has a known target: the new
// edge may reach code the first linear sweep never found.
func (p *Procedure) redecodeFromScratch() error {
	if p.prog == nil {
		return xerrors.New("procedure has no owning program to redecode from")
	}
	c, ret, err := p.prog.decodeCFG(p.Name, p.Entry)
	if err != nil {
		return err
	}
	p.CFG = c
	p.ReturnStmt = ret
	p.Status = Decoded
	return nil
}

// definedLocations returns one representative Expr per distinct
// location defined anywhere in c, mirroring ssaform's unexported
// helper of the same name: the driver needs it standalone since
// PlacePhiFunctions alone doesn't say which locations to rename.
func definedLocations(c *cfg.CFG) []*exp.Expr {
	seen := map[string]bool{}
	var out []*exp.Expr
	for _, b := range c.Blocks {
		for _, s := range b.Statements() {
			var defs []*exp.Expr
			s.GetDefinitions(&defs)
			for _, d := range defs {
				key := locKey(d)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// forEachOperandExpr calls visit on every operand expression (not
// including an assign/call's LHS/Defines, the same "uses, not
// definitions" boundary stmt.AddUsedLocs draws) across stmts.
func forEachOperandExpr(stmts []*stmt.Stmt, visit func(*exp.Expr)) {
	for _, s := range stmts {
		switch s.Kind {
		case stmt.KindAssign:
			visit(s.RHS)
		case stmt.KindBoolAssign:
			visit(s.Cond)
		case stmt.KindPhiAssign:
			for _, op := range s.PhiOperands {
				visit(op.Val)
			}
		case stmt.KindCall:
			visit(s.DestExpr)
			for _, a := range s.Arguments {
				visit(a.RHS)
			}
			for _, u := range s.UseCollector {
				visit(u)
			}
		case stmt.KindBranch:
			visit(s.BranchCond)
		case stmt.KindCase:
			visit(s.CaseDest)
		case stmt.KindReturn:
			for _, r := range s.Returns {
				visit(r)
			}
		case stmt.KindGoto:
			visit(s.GotoDest)
		}
	}
}

// mapOperandExprs rewrites every operand field of s in place through
// rewrite, the in-place counterpart of forEachOperandExpr used by
// replaceSimpleGlobalConstants.
func mapOperandExprs(s *stmt.Stmt, rewrite func(*exp.Expr) *exp.Expr) {
	switch s.Kind {
	case stmt.KindAssign:
		s.RHS = rewrite(s.RHS)
	case stmt.KindBoolAssign:
		s.Cond = rewrite(s.Cond)
	case stmt.KindPhiAssign:
		for _, op := range s.PhiOperands {
			op.Val = rewrite(op.Val)
		}
	case stmt.KindCall:
		s.DestExpr = rewrite(s.DestExpr)
		for _, a := range s.Arguments {
			a.RHS = rewrite(a.RHS)
		}
	case stmt.KindBranch:
		s.BranchCond = rewrite(s.BranchCond)
	case stmt.KindCase:
		s.CaseDest = rewrite(s.CaseDest)
	case stmt.KindReturn:
		for i, r := range s.Returns {
			s.Returns[i] = rewrite(r)
		}
	case stmt.KindGoto:
		s.GotoDest = rewrite(s.GotoDest)
	}
}
