// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

// Equal reports structural equality modulo wildcards: a wildcard on
// either side matches anything of a compatible shape, and a wildcard
// integer/string constant matches only a same-variant non-wildcard
// constant.
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsWildcard() || b.IsWildcard() {
		return wildcardMatches(a, b)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindConst:
		return equalConst(a, b)
	case KindTerminal:
		return a.Op == b.Op
	case KindUnary, KindBinary, KindTernary:
		if a.Op != b.Op || len(a.Kids) != len(b.Kids) {
			return false
		}
		for i := range a.Kids {
			if !Equal(a.Kids[i], b.Kids[i]) {
				return false
			}
		}
		return true
	case KindTyped:
		return a.Type.Equal(b.Type) && Equal(a.Base(), b.Base())
	case KindRef:
		return sameDef(a.Def, b.Def) && Equal(a.Base(), b.Base())
	case KindFlagCall:
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case KindLocation:
		if a.LocKind != b.LocKind || a.LocName != b.LocName {
			return false
		}
		return Equal(a.Base(), b.Base())
	}
	return false
}

func equalConst(a, b *Expr) bool {
	if a.ConstTag != b.ConstTag {
		return false
	}
	if a.Conscript != b.Conscript {
		return false
	}
	switch a.ConstTag {
	case ConstInt, ConstLong:
		return a.IntVal == b.IntVal && a.Unsigned == b.Unsigned
	case ConstFloat:
		return a.FloatVal == b.FloatVal
	case ConstString, ConstFunc:
		return a.StrVal == b.StrVal
	}
	return false
}

func sameDef(a, b StmtRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.StmtNumber() == b.StmtNumber()
}

// wildcardMatches implements the asymmetric wildcard matching rule:
// opWild matches any subtree; opWildIntConst/opWildStrConst match only
// a non-wildcard constant of the matching variant.
func wildcardMatches(a, b *Expr) bool {
	wild, other := a, b
	if !a.IsWildcard() {
		wild, other = b, a
	}
	switch wild.Op {
	case OpWild:
		return true
	case OpWildIntConst:
		return other != nil && !other.IsWildcard() && other.Kind == KindConst &&
			(other.ConstTag == ConstInt || other.ConstTag == ConstLong)
	case OpWildStrConst:
		return other != nil && !other.IsWildcard() && other.Kind == KindConst && other.ConstTag == ConstString
	}
	return false
}
