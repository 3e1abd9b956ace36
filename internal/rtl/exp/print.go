// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the String() method for Expr, following the
// convention of one file dedicated to debug
// rendering, kept separate from construction and algebra.
package exp

import "fmt"

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindConst:
		return constString(e)
	case KindTerminal:
		return terminalString(e.Op)
	case KindUnary:
		return fmt.Sprintf("%s(%s)", opString(e.Op), e.Base())
	case KindBinary:
		return fmt.Sprintf("(%s %s %s)", e.Child(0), opString(e.Op), e.Child(1))
	case KindTernary:
		return fmt.Sprintf("%s(%s, %s, %s)", opString(e.Op), e.Child(0), e.Child(1), e.Child(2))
	case KindTyped:
		return fmt.Sprintf("(%s)%s", e.Type, e.Base())
	case KindRef:
		if e.Def == nil {
			return fmt.Sprintf("%s{implicit}", e.Base())
		}
		return fmt.Sprintf("%s{%d}", e.Base(), e.Def.StmtNumber())
	case KindFlagCall:
		return fmt.Sprintf("%s(%s)", e.Name, argsString(e.Args))
	case KindLocation:
		return locationString(e)
	}
	return "?"
}

func constString(e *Expr) string {
	switch e.ConstTag {
	case ConstInt, ConstLong:
		return fmt.Sprintf("%d", e.IntVal)
	case ConstFloat:
		return fmt.Sprintf("%g", e.FloatVal)
	case ConstString:
		return fmt.Sprintf("%q", e.StrVal)
	case ConstFunc:
		return e.StrVal
	}
	return "?const"
}

func terminalString(op Op) string {
	switch op {
	case OpPC:
		return "%pc"
	case OpFlags:
		return "%flags"
	case OpCF:
		return "%CF"
	case OpWild:
		return "*"
	case OpWildIntConst:
		return "<int>"
	case OpWildStrConst:
		return "<str>"
	case OpNil:
		return "nil"
	case OpTrue:
		return "true"
	case OpFalse:
		return "false"
	case OpDefineAll:
		return "<all>"
	}
	return "?terminal"
}

func opString(op Op) string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	case OpAddrOf:
		return "addr"
	case OpMemOf:
		return "m"
	case OpRegOf:
		return "r"
	case OpGlobal:
		return "global"
	case OpLocal:
		return "local"
	case OpParam:
		return "param"
	case OpTypeOf:
		return "typeof"
	case OpInitValueOf:
		return "initof"
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpXor:
		return "xor"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShiftL:
		return "<<"
	case OpShiftR, OpShiftRA:
		return ">>"
	case OpEquals:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGtr:
		return ">"
	case OpGtrEq:
		return ">="
	case OpLessUns:
		return "<u"
	case OpLessEqUns:
		return "<=u"
	case OpGtrUns:
		return ">u"
	case OpGtrEqUns:
		return ">=u"
	case OpCons:
		return "cons"
	case OpFlagPair:
		return "flagpair"
	case OpFsize:
		return "fsize"
	case OpZfill:
		return "zfill"
	case OpSgnex:
		return "sgnex"
	case OpTruncs:
		return "truncs"
	case OpItof:
		return "itof"
	case OpFtoi:
		return "ftoi"
	}
	return "?op"
}

func argsString(args []*Expr) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s
}

func locationString(e *Expr) string {
	switch e.LocKind {
	case LocMemOf:
		return fmt.Sprintf("m[%s]", e.Base())
	case LocRegOf:
		return fmt.Sprintf("r[%s]", e.Base())
	case LocGlobal:
		return e.LocName
	case LocLocal:
		return e.LocName
	case LocParam:
		return e.LocName
	}
	return "?loc"
}
