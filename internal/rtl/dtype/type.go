// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype implements the type lattice used by data-flow type
// analysis. Types are immutable values compared and combined with
// Meet, following the same narrowing idiom used for go/types core
// types (go/ssa/coretype.go), adapted to a lattice with a Void top and
// a bottom Union of conflicting guesses.
package dtype

import "fmt"

// Kind tags the variant of a Type, playing the role the source's
// class hierarchy (VoidType, IntegerType, PointerType, ...) played,
// collapsed into a single tagged struct per the design notes
// on sum types.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindInt
	KindFloat
	KindPointer
	KindArray
	KindFunc
	KindUnion // conflicting types met together; bottom of the lattice
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindFunc:
		return "func"
	case KindUnion:
		return "union"
	}
	return "?"
}

// Type is a value in the type lattice. Size is in bits for Int/Float,
// in bytes*8 for Pointer (always the target's pointer width). Signed
// only applies to KindInt. Base applies to Pointer and Array. Length
// applies to Array: 0 means unbounded (the original's ArrayType with
// no fixed extent, supplemented per SPEC_FULL.md §11).
type Type struct {
	Kind    Kind
	Size    int
	Signed  bool
	Base    *Type
	Length  int
	Sig     *FuncSig
	Members []*Type // only for KindUnion: the distinct types that conflicted
}

// FuncSig is the minimal function-type shape the lattice needs to
// describe a function pointer's type without depending on the
// statement layer's richer call Signature.
type FuncSig struct {
	Params  []*Type
	Results []*Type
}

var (
	Void  = &Type{Kind: KindVoid}
	Bool  = &Type{Kind: KindBool, Size: 1}
	Char  = &Type{Kind: KindChar, Size: 8}
	Int32 = &Type{Kind: KindInt, Size: 32, Signed: true}
	Int64 = &Type{Kind: KindInt, Size: 64, Signed: true}
	UInt32 = &Type{Kind: KindInt, Size: 32, Signed: false}
	Float32 = &Type{Kind: KindFloat, Size: 32}
	Float64 = &Type{Kind: KindFloat, Size: 64}
)

// NewInt returns an integer type of the given width and signedness.
func NewInt(size int, signed bool) *Type { return &Type{Kind: KindInt, Size: size, Signed: signed} }

// NewFloat returns a floating type of the given width.
func NewFloat(size int) *Type { return &Type{Kind: KindFloat, Size: size} }

// NewPointer returns a pointer-to-base type.
func NewPointer(base *Type) *Type { return &Type{Kind: KindPointer, Size: 32, Base: base} }

// NewArray returns an array-of-base type; length 0 means unbounded.
func NewArray(base *Type, length int) *Type {
	return &Type{Kind: KindArray, Base: base, Length: length}
}

// NewFunc returns a function-pointer type.
func NewFunc(sig *FuncSig) *Type { return &Type{Kind: KindFunc, Size: 32, Sig: sig} }

func (t *Type) String() string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case KindInt:
		sign := "i"
		if !t.Signed {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, t.Size)
	case KindFloat:
		return fmt.Sprintf("float%d", t.Size)
	case KindPointer:
		return t.Base.String() + "*"
	case KindArray:
		if t.Length > 0 {
			return fmt.Sprintf("%s[%d]", t.Base.String(), t.Length)
		}
		return t.Base.String() + "[]"
	case KindFunc:
		return "func"
	case KindUnion:
		return "union"
	default:
		return t.Kind.String()
	}
}

// Equal reports structural equality (not lattice equivalence).
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Size == o.Size && t.Signed == o.Signed
	case KindFloat:
		return t.Size == o.Size
	case KindPointer:
		return t.Base.Equal(o.Base)
	case KindArray:
		return t.Length == o.Length && t.Base.Equal(o.Base)
	default:
		return true
	}
}

// Clone performs a deep copy, required before any in-place mutation of
// a shared Type value (mirrors exp.Expr's clone-before-modify rule).
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	c.Base = t.Base.Clone()
	if t.Sig != nil {
		sig := &FuncSig{}
		for _, p := range t.Sig.Params {
			sig.Params = append(sig.Params, p.Clone())
		}
		for _, r := range t.Sig.Results {
			sig.Results = append(sig.Results, r.Clone())
		}
		c.Sig = sig
	}
	for _, m := range t.Members {
		c.Members = append(c.Members, m.Clone())
	}
	return &c
}

// Meet combines two types per the data-flow type lattice: Void is the
// identity (Void meet X = X); equal types meet to
// themselves; a pointer meets a pointer by meeting their bases; two
// integers meet to the wider size, signed only if both are; two arrays
// meet their bases and keep the first nonzero length; anything else
// meeting produces a Union recording both guesses,
// which a later visit may re-resolve once more context is known.
func Meet(a, b *Type) *Type {
	if a == nil || a.Kind == KindVoid {
		return b
	}
	if b == nil || b.Kind == KindVoid {
		return a
	}
	if a.Equal(b) {
		return a
	}
	if a.Kind == KindPointer && b.Kind == KindPointer {
		return NewPointer(Meet(a.Base, b.Base))
	}
	if a.Kind == KindInt && b.Kind == KindInt {
		size := a.Size
		if b.Size > size {
			size = b.Size
		}
		return NewInt(size, a.Signed && b.Signed)
	}
	if a.Kind == KindArray && b.Kind == KindArray {
		length := a.Length
		if length == 0 {
			length = b.Length
		}
		return NewArray(Meet(a.Base, b.Base), length)
	}
	return unite(a, b)
}

func unite(a, b *Type) *Type {
	members := unionMembers(a)
	for _, m := range unionMembers(b) {
		found := false
		for _, existing := range members {
			if existing.Equal(m) {
				found = true
				break
			}
		}
		if !found {
			members = append(members, m)
		}
	}
	if len(members) == 1 {
		return members[0]
	}
	return &Type{Kind: KindUnion, Members: members}
}

func unionMembers(t *Type) []*Type {
	if t.Kind == KindUnion {
		return t.Members
	}
	return []*Type{t}
}

// IsUnbounded reports whether an array type has no fixed length, the
// shape a printf-style length argument retypes.
func (t *Type) IsUnbounded() bool { return t != nil && t.Kind == KindArray && t.Length == 0 }
