// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import "github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"

// Symbols implements frontend.SymbolTable over two literal maps.
type Symbols struct {
	byName map[string]frontend.Symbol
	byAddr map[uint64]frontend.Symbol
}

// NewSymbols returns an empty Symbols table.
func NewSymbols() *Symbols {
	return &Symbols{byName: map[string]frontend.Symbol{}, byAddr: map[uint64]frontend.Symbol{}}
}

// Define adds or replaces sym, indexed by both name and address.
func (s *Symbols) Define(sym frontend.Symbol) {
	s.byName[sym.Name] = sym
	s.byAddr[sym.Address] = sym
}

// FindByName implements frontend.SymbolTable.
func (s *Symbols) FindByName(name string) (frontend.Symbol, bool) {
	sym, ok := s.byName[name]
	return sym, ok
}

// FindByAddress implements frontend.SymbolTable.
func (s *Symbols) FindByAddress(addr uint64) (frontend.Symbol, bool) {
	sym, ok := s.byAddr[addr]
	return sym, ok
}
