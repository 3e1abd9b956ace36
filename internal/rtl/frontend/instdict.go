// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend

import (
	"fmt"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// Template builds the RTL statements for one instantiation of a named
// mnemonic, given its operand expressions in encoding order. It is the
// parameterized half of an InstDict entry; Params documents the arity
// Template expects.
type Template func(operands []*exp.Expr) []*stmt.Stmt

// InstEntry is one row of an instruction dictionary: a mnemonic's
// operand count and the template that expands it into RTL statements.
type InstEntry struct {
	Params   int
	Template Template
}

// InstDict is a per-architecture table mapping mnemonic name to its
// parameterized RTL template, the shape of a semantics file's
// instruction table with the physical encoding/parsing stripped away:
// callers build an InstDict once per architecture and instantiate RTLs
// by mnemonic rather than hand-building expression trees at every call
// site, which is what frontend/fixture's decoder does for its literal
// test programs.
type InstDict struct {
	entries map[string]InstEntry
}

// NewInstDict returns an empty dictionary ready for Define calls.
func NewInstDict() *InstDict {
	return &InstDict{entries: map[string]InstEntry{}}
}

// Define registers (or replaces) the template for mnemonic name.
func (d *InstDict) Define(name string, params int, tmpl Template) {
	d.entries[name] = InstEntry{Params: params, Template: tmpl}
}

// Instantiate looks up name and expands it against operands, checking
// arity. An unknown mnemonic or a wrong operand count is reported as
// an error rather than panicking, so a fixture decoder can surface a
// bad test program as a normal decode failure.
func (d *InstDict) Instantiate(name string, operands []*exp.Expr) ([]*stmt.Stmt, error) {
	entry, ok := d.entries[name]
	if !ok {
		return nil, fmt.Errorf("frontend: unknown instruction mnemonic %q", name)
	}
	if len(operands) != entry.Params {
		return nil, fmt.Errorf("frontend: instruction %q wants %d operands, got %d", name, entry.Params, len(operands))
	}
	return entry.Template(operands), nil
}

// Has reports whether name is defined.
func (d *InstDict) Has(name string) bool {
	_, ok := d.entries[name]
	return ok
}
