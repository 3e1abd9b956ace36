// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stmt implements the statement layer :
// a sum type over assignment kinds, calls, branches, gotos, cases and
// returns, each carrying used/defined locations and type-for queries.
//
// As with exp.Expr, Stmt is a single tagged struct rather
// than one concrete type per variant, keeping dispatch an explicit
// switch instead of interface type-switches/downcasts.
package stmt

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
)

// Kind tags the variant of a Stmt.
type Kind uint8

const (
	KindAssign Kind = iota
	KindPhiAssign
	KindImplicitAssign
	KindBoolAssign
	KindCall
	KindBranch
	KindCase
	KindReturn
	KindGoto
	KindImpRef
)

// BranchType enumerates the condition codes a BranchStatement can test.
type BranchType uint8

const (
	BranchNone BranchType = iota
	BranchEquals
	BranchNotEqual
	BranchLess
	BranchLessEq
	BranchGtr
	BranchGtrEq
	BranchLessUns
	BranchLessEqUns
	BranchGtrUns
	BranchGtrEqUns
)

// BBRef is the minimal identity a phi operand's predecessor-block key
// needs; satisfied by *cfg.BasicBlock without stmt importing cfg
// (cfg wraps Stmt, so the dependency must run the other way).
type BBRef interface {
	BBNumber() int
}

// PhiOperand is one predecessor's contribution to a PhiAssign.
type PhiOperand struct {
	Pred *exp.Expr // unused by lookup; operands are keyed by pred.BBNumber()
	Def  exp.StmtRef
	Val  *exp.Expr // nil ("⊥") only transiently, before fixCallAndPhiRefs
}

// Signature is the minimal call-signature shape the statement layer
// needs: parameter count/types and return types, without depending on
// proc's richer Procedure/Param types.
type Signature struct {
	Name    string
	Params  []*dtype.Type
	Returns []*dtype.Type
	NoRet   bool
}

// SwitchInfo describes a computed jump's dispatch table, named by
// the CaseStatement.
type SwitchInfo struct {
	TableAddr uint64
	NumCases  int
	Targets   []uint64
}

// Stmt is a statement: one variant of the statement layer's sum type,
// with the common header {number, enclosing BB, enclosing procedure}
// every variant carries.
type Stmt struct {
	Kind   Kind
	Number int
	BB     BBRef // enclosing basic block, weak
	Proc   exp.ProcRef

	// KindAssign / KindImplicitAssign / KindBoolAssign.
	Type *dtype.Type
	LHS  *exp.Expr
	RHS  *exp.Expr

	// KindBoolAssign.
	BoolSize int
	Cond     *exp.Expr
	IsFloat  bool

	// KindPhiAssign: one operand per predecessor BB, keyed by the
	// predecessor's BBNumber().
	PhiOperands map[int]*PhiOperand

	// KindCall.
	DestExpr    *exp.Expr
	DestProc    exp.ProcRef
	Sig         *Signature
	Arguments   []*Stmt // each an KindAssign sub-statement
	Defines     []*exp.Expr
	ReturnAfter bool
	UseCollector []*exp.Expr
	DefCollector []*exp.Expr
	CalleeReturn *Stmt

	// KindBranch.
	BranchDest *exp.Expr
	BranchCond *exp.Expr
	BType      BranchType

	// KindCase.
	CaseDest  *exp.Expr
	Switch    *SwitchInfo

	// KindReturn.
	Modifieds []*exp.Expr
	Returns   []*exp.Expr
	Reaching  []*exp.Expr // collector of reaching defs

	// KindGoto.
	GotoDest   *exp.Expr
	IsComputed bool

	// KindImpRef.
	ImpRefAddr *exp.Expr
	ImpRefType *dtype.Type
}

// StmtNumber implements exp.StmtRef, so a Ref can name s as its
// defining statement.
func (s *Stmt) StmtNumber() int { return s.Number }

// NewAssign builds a KindAssign statement.
func NewAssign(ty *dtype.Type, lhs, rhs *exp.Expr) *Stmt {
	return &Stmt{Kind: KindAssign, Type: ty, LHS: lhs, RHS: rhs}
}

// NewImplicitAssign builds the synthetic entry-point definition for lhs.
func NewImplicitAssign(ty *dtype.Type, lhs *exp.Expr) *Stmt {
	return &Stmt{Kind: KindImplicitAssign, Type: ty, LHS: lhs}
}

// NewBoolAssign builds a BoolAssign that sets lhs to 0/1 per cond.
func NewBoolAssign(ty *dtype.Type, size int, lhs, cond *exp.Expr, isFloat bool) *Stmt {
	return &Stmt{Kind: KindBoolAssign, Type: ty, BoolSize: size, LHS: lhs, Cond: cond, IsFloat: isFloat}
}

// NewPhiAssign builds a PhiAssign with an empty operand map (callers
// fill one entry per predecessor BB via SetOperand).
func NewPhiAssign(ty *dtype.Type, lhs *exp.Expr) *Stmt {
	return &Stmt{Kind: KindPhiAssign, Type: ty, LHS: lhs, PhiOperands: map[int]*PhiOperand{}}
}

// SetOperand sets or replaces the phi operand for predecessor pred.
func (s *Stmt) SetOperand(pred BBRef, def exp.StmtRef, val *exp.Expr) {
	if s.PhiOperands == nil {
		s.PhiOperands = map[int]*PhiOperand{}
	}
	s.PhiOperands[pred.BBNumber()] = &PhiOperand{Def: def, Val: val}
}

// NewCall builds a CallStatement.
func NewCall(dest *exp.Expr, destProc exp.ProcRef, sig *Signature) *Stmt {
	return &Stmt{Kind: KindCall, DestExpr: dest, DestProc: destProc, Sig: sig}
}

// NewBranch builds a BranchStatement.
func NewBranch(dest, cond *exp.Expr, bt BranchType, isFloat bool) *Stmt {
	return &Stmt{Kind: KindBranch, BranchDest: dest, BranchCond: cond, BType: bt, IsFloat: isFloat}
}

// NewCase builds a CaseStatement.
func NewCase(dest *exp.Expr, sw *SwitchInfo) *Stmt {
	return &Stmt{Kind: KindCase, CaseDest: dest, Switch: sw}
}

// NewReturn builds a ReturnStatement.
func NewReturn() *Stmt { return &Stmt{Kind: KindReturn} }

// NewGoto builds a GotoStatement.
func NewGoto(dest *exp.Expr, computed bool) *Stmt {
	return &Stmt{Kind: KindGoto, GotoDest: dest, IsComputed: computed}
}

// NewImpRef builds an ImpRefStatement.
func NewImpRef(addr *exp.Expr, ty *dtype.Type) *Stmt {
	return &Stmt{Kind: KindImpRef, ImpRefAddr: addr, ImpRefType: ty}
}
