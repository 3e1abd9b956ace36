// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exp implements the expression algebra: an immutable tagged
// tree of integer/float/string constants, register locations, memory
// dereferences, operators, SSA subscripts, flag-call terms and
// wildcards, with structural equality modulo wildcards, cloning,
// simplification, substitution and a visitor double-dispatch.
//
// Following the design note ("sum types ... a tagged enum
// with one variant per kind"), Expr is a single struct carrying a Kind
// tag and only the fields its Kind uses, rather than a
// one-interface-per-concrete-type idiom (ssa.Value) — the latter
// reproduces exactly the virtual-dispatch-with-downcasts pattern the
// design notes call out to avoid.
package exp

import "github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"

// Kind tags the variant of an Expr.
type Kind uint8

const (
	KindConst Kind = iota
	KindTerminal
	KindUnary
	KindBinary
	KindTernary
	KindTyped
	KindRef
	KindFlagCall
	KindLocation
)

// ConstTag distinguishes the payload carried by a KindConst Expr.
type ConstTag uint8

const (
	ConstInt ConstTag = iota
	ConstLong
	ConstFloat
	ConstString
	ConstFunc
)

// Op enumerates the 0-ary terminal symbols, unary/binary/ternary
// operators named here
type Op uint16

const (
	OpInvalid Op = iota

	// Terminals (0-ary symbols).
	OpPC
	OpFlags
	OpCF
	OpWild
	OpWildIntConst
	OpWildStrConst
	OpNil
	OpTrue
	OpFalse
	OpDefineAll

	// Unary operators.
	OpNeg
	OpNot
	OpAddrOf
	OpMemOf
	OpRegOf
	OpGlobal
	OpLocal
	OpParam
	OpTypeOf
	OpInitValueOf

	// Binary arithmetic/logical/comparison/bitwise/shift/cons/flagpair.
	OpPlus
	OpMinus
	OpMult
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftL
	OpShiftR
	OpShiftRA
	OpEquals
	OpNotEqual
	OpLess
	OpLessEq
	OpGtr
	OpGtrEq
	OpLessUns
	OpLessEqUns
	OpGtrUns
	OpGtrEqUns
	OpCons
	OpFlagPair

	// Ternary operators.
	OpFsize
	OpZfill
	OpSgnex
	OpTruncs
	OpItof
	OpFtoi
)

// LocKind distinguishes the addressing mode of a KindLocation Expr.
type LocKind uint8

const (
	LocMemOf LocKind = iota
	LocRegOf
	LocGlobal
	LocLocal
	LocParam
)

// StmtRef is the minimal identity a Ref's defining statement must
// expose; satisfied by *stmt.Stmt without exp importing stmt (which
// would create an import cycle, since stmt wraps Expr).
type StmtRef interface {
	StmtNumber() int
}

// ProcRef is the minimal identity a Location's owning-procedure weak
// back-reference must expose, used only for local lookup, never for
// ownership.
type ProcRef interface {
	ProcName() string
}

// Expr is an immutable expression tree node. Treat values received
// from elsewhere as shared; call Clone before any in-place field
// mutation performed by a caller outside this package.
type Expr struct {
	Kind Kind
	Op   Op

	// KindConst payload.
	ConstTag  ConstTag
	IntVal    int64
	Unsigned  bool
	Width     int
	FloatVal  float64
	StrVal    string
	Conscript int // 0 means untagged

	// KindUnary/Binary/Ternary/Typed children, and KindRef's base.
	Kids []*Expr
	Type *dtype.Type // KindTyped's cast target, or a cached ascend/descend result

	// KindRef.
	Def StmtRef // nil means "implicit" (procedure entry)

	// KindFlagCall.
	Name string
	Args []*Expr

	// KindLocation.
	LocKind LocKind
	LocName string // global/local/param name
	Proc    ProcRef
}

// Terminal 0-ary convenience constructors.
func PC() *Expr          { return &Expr{Kind: KindTerminal, Op: OpPC} }
func Flags() *Expr       { return &Expr{Kind: KindTerminal, Op: OpFlags} }
func CF() *Expr          { return &Expr{Kind: KindTerminal, Op: OpCF} }
func Wild() *Expr        { return &Expr{Kind: KindTerminal, Op: OpWild} }
func WildIntConst() *Expr { return &Expr{Kind: KindTerminal, Op: OpWildIntConst} }
func WildStrConst() *Expr { return &Expr{Kind: KindTerminal, Op: OpWildStrConst} }
func Nil() *Expr         { return &Expr{Kind: KindTerminal, Op: OpNil} }
func True() *Expr        { return &Expr{Kind: KindTerminal, Op: OpTrue} }
func False() *Expr       { return &Expr{Kind: KindTerminal, Op: OpFalse} }
func DefineAll() *Expr   { return &Expr{Kind: KindTerminal, Op: OpDefineAll} }

// IntConst builds an untagged signed/unsigned integer constant of the
// given width; WithConscript adds a conscript to distinguish it from
// an otherwise-equal constant during type analysis.
func IntConst(v int64, width int, unsigned bool) *Expr {
	return &Expr{Kind: KindConst, ConstTag: ConstInt, IntVal: v, Width: width, Unsigned: unsigned}
}

// LongConst builds a 64-bit integer constant.
func LongConst(v int64) *Expr {
	return &Expr{Kind: KindConst, ConstTag: ConstLong, IntVal: v, Width: 64}
}

// FloatConst builds a floating-point constant.
func FloatConst(v float64, width int) *Expr {
	return &Expr{Kind: KindConst, ConstTag: ConstFloat, FloatVal: v, Width: width}
}

// StrConst builds a string constant.
func StrConst(s string) *Expr {
	return &Expr{Kind: KindConst, ConstTag: ConstString, StrVal: s}
}

// FuncConst builds a function-reference constant naming a procedure.
func FuncConst(name string) *Expr {
	return &Expr{Kind: KindConst, ConstTag: ConstFunc, StrVal: name}
}

// WithConscript returns a copy of a KindConst Expr tagged with the
// given conscript id.
func (e *Expr) WithConscript(id int) *Expr {
	c := e.Clone()
	c.Conscript = id
	return c
}

// Unary builds a 1-ary operator Expr.
func Unary(op Op, child *Expr) *Expr { return &Expr{Kind: KindUnary, Op: op, Kids: []*Expr{child}} }

func Neg(e *Expr) *Expr        { return Unary(OpNeg, e) }
func Not(e *Expr) *Expr        { return Unary(OpNot, e) }
func AddrOf(e *Expr) *Expr     { return Unary(OpAddrOf, e) }
func MemOf(e *Expr) *Expr      { return Unary(OpMemOf, e) }
func RegOf(e *Expr) *Expr      { return Unary(OpRegOf, e) }
func TypeOf(e *Expr) *Expr     { return Unary(OpTypeOf, e) }
func InitValueOf(e *Expr) *Expr { return Unary(OpInitValueOf, e) }

// Binary builds a 2-ary operator Expr.
func Binary(op Op, l, r *Expr) *Expr { return &Expr{Kind: KindBinary, Op: op, Kids: []*Expr{l, r}} }

// Ternary builds a 3-ary operator Expr (fsize, zfill/sgnex, truncs, itof, ftoi).
func Ternary(op Op, a, b, c *Expr) *Expr {
	return &Expr{Kind: KindTernary, Op: op, Kids: []*Expr{a, b, c}}
}

// Typed wraps child in an explicit cast to ty.
func Typed(ty *dtype.Type, child *Expr) *Expr {
	return &Expr{Kind: KindTyped, Type: ty, Kids: []*Expr{child}}
}

// NewRef builds an SSA subscript of base as defined by def (nil meaning
// implicit, i.e. procedure entry).
func NewRef(base *Expr, def StmtRef) *Expr {
	return &Expr{Kind: KindRef, Kids: []*Expr{base}, Def: def}
}

// FlagCall names a flag-setting pseudo-operation over args.
func FlagCall(name string, args ...*Expr) *Expr {
	return &Expr{Kind: KindFlagCall, Name: name, Args: args}
}

// Location builds a higher-level memOf/regOf/global/local/param view.
// addr is used by LocMemOf/LocRegOf; name is used by the others.
func Location(kind LocKind, addr *Expr, name string, owner ProcRef) *Expr {
	e := &Expr{Kind: KindLocation, LocKind: kind, LocName: name, Proc: owner}
	if addr != nil {
		e.Kids = []*Expr{addr}
	}
	return e
}

// Base returns the single child of a Unary/Typed/Ref Expr, or the
// addressing expression of a memOf/regOf Location; nil otherwise.
func (e *Expr) Base() *Expr {
	if e == nil || len(e.Kids) == 0 {
		return nil
	}
	return e.Kids[0]
}

// Child returns the i'th child (0-based) or nil if out of range.
func (e *Expr) Child(i int) *Expr {
	if e == nil || i < 0 || i >= len(e.Kids) {
		return nil
	}
	return e.Kids[i]
}

// IsWildcard reports whether e is one of the pattern-matching
// wildcards ("a wildcard on either side matches").
func (e *Expr) IsWildcard() bool {
	return e != nil && e.Kind == KindTerminal && (e.Op == OpWild || e.Op == OpWildIntConst || e.Op == OpWildStrConst)
}
