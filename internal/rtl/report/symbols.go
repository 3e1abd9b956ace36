// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strings"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
)

// Symbols renders a C-like header declaring every recovered global and
// procedure in pr: one extern declaration per global, one prototype
// per procedure, parameter names taken from Procedure.Params. A
// procedure with no Params gets a "void" parameter list; no positional
// names are derived from its signature.
func Symbols(pr *proc.Program) string {
	var b strings.Builder
	b.WriteString("// decompiled symbols\n\n")
	for _, name := range pr.GlobalNames() {
		g := pr.GlobalByName(name)
		fmt.Fprintf(&b, "extern %s %s; // %s\n", cType(g.Type), g.Name, fmtAddr(g.Address))
	}
	if len(pr.GlobalNames()) > 0 {
		b.WriteString("\n")
	}
	for _, p := range sortedProcedures(pr) {
		fmt.Fprintf(&b, "%s; // %s\n", prototype(p), fmtAddr(p.Entry))
	}
	return b.String()
}

func prototype(p *proc.Procedure) string {
	ret := dtype.Void.String()
	params := "void"
	if p.Sig != nil {
		if len(p.Sig.Returns) > 0 {
			ret = cType(p.Sig.Returns[0])
		}
		if p.Sig.NoRet {
			ret = "[[noreturn]] " + ret
		}
	}
	if len(p.Params) > 0 {
		names := make([]string, len(p.Params))
		for i, prm := range p.Params {
			names[i] = fmt.Sprintf("%s %s", cType(prm.Type), prm.LHS.LocName)
		}
		params = strings.Join(names, ", ")
	}
	if ret == dtype.Void.String() {
		ret = "void"
	}
	return fmt.Sprintf("%s %s(%s)", ret, p.Name, params)
}

// cType maps a recovered dtype.Type onto the nearest C spelling, the
// same narrowing a decompiler's symbol header needs regardless of the
// lattice's own internal naming.
func cType(t *dtype.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case dtype.KindVoid:
		return "void"
	case dtype.KindBool:
		return "bool"
	case dtype.KindChar:
		return "char"
	case dtype.KindInt:
		if t.Signed {
			return fmt.Sprintf("int%d_t", t.Size)
		}
		return fmt.Sprintf("uint%d_t", t.Size)
	case dtype.KindFloat:
		if t.Size <= 32 {
			return "float"
		}
		return "double"
	case dtype.KindPointer:
		return cType(t.Base) + " *"
	case dtype.KindArray:
		if t.Length > 0 {
			return fmt.Sprintf("%s[%d]", cType(t.Base), t.Length)
		}
		return cType(t.Base) + " []"
	case dtype.KindFunc:
		return "void *"
	case dtype.KindUnion:
		return "void *" // conflicting inference, rendered as an opaque pointer
	}
	return "void"
}
