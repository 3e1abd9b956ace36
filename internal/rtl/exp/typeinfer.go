// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

import "github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"

// AscendType derives a best type for e given the already-known types
// of its operands: a memOf node turns pointer-to-T into
// T, arithmetic widens to the wider operand, comparisons produce bool.
func (e *Expr) AscendType() *dtype.Type {
	if e == nil {
		return dtype.Void
	}
	switch e.Kind {
	case KindConst:
		return ascendConst(e)
	case KindUnary:
		switch e.Op {
		case OpMemOf:
			if ct := e.Base().AscendType(); ct != nil && ct.Kind == dtype.KindPointer {
				return ct.Base
			}
			return dtype.Void
		case OpAddrOf:
			return dtype.NewPointer(e.Base().AscendType())
		case OpNeg:
			return e.Base().AscendType()
		case OpNot:
			return dtype.Bool
		}
		return dtype.Void
	case KindBinary:
		switch e.Op {
		case OpEquals, OpNotEqual, OpLess, OpLessEq, OpGtr, OpGtrEq,
			OpLessUns, OpLessEqUns, OpGtrUns, OpGtrEqUns:
			return dtype.Bool
		default:
			return dtype.Meet(e.Child(0).AscendType(), e.Child(1).AscendType())
		}
	case KindTyped:
		return e.Type
	case KindRef:
		return e.Base().AscendType()
	case KindLocation:
		if e.LocKind == LocMemOf {
			if ct := e.Base().AscendType(); ct != nil && ct.Kind == dtype.KindPointer {
				return ct.Base
			}
		}
		return dtype.Void
	default:
		return dtype.Void
	}
}

func ascendConst(e *Expr) *dtype.Type {
	switch e.ConstTag {
	case ConstInt:
		return dtype.NewInt(e.Width, !e.Unsigned)
	case ConstLong:
		return dtype.NewInt(64, !e.Unsigned)
	case ConstFloat:
		return dtype.NewFloat(e.Width)
	case ConstString:
		return dtype.NewPointer(dtype.Char)
	case ConstFunc:
		return dtype.NewFunc(nil)
	}
	return dtype.Void
}

// DescendType pushes a required type downward into e's subexpressions,
// calling annotate on e and on each subexpression it reaches. It does
// not meet required against any type already recorded there, and it
// returns required unchanged.
// A memOf node descending T requests pointer-to-T on its address
// subexpression.
func (e *Expr) DescendType(required *dtype.Type, annotate func(sub *Expr, ty *dtype.Type)) *dtype.Type {
	if e == nil || required == nil {
		return required
	}
	annotate(e, required)
	switch e.Kind {
	case KindUnary:
		switch e.Op {
		case OpMemOf:
			e.Base().DescendType(dtype.NewPointer(required), annotate)
		case OpAddrOf:
			if required.Kind == dtype.KindPointer {
				e.Base().DescendType(required.Base, annotate)
			}
		case OpNeg:
			e.Base().DescendType(required, annotate)
		}
	case KindBinary:
		switch e.Op {
		case OpPlus, OpMinus, OpMult, OpDiv, OpMod, OpBitAnd, OpBitOr, OpBitXor:
			e.Child(0).DescendType(required, annotate)
			e.Child(1).DescendType(required, annotate)
		}
	case KindRef:
		e.Base().DescendType(required, annotate)
	}
	return required
}
