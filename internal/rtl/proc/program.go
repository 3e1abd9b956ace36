// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/5l1v3r1/boomerang-go/internal/event"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/dtype"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
)

// Global is one program-wide data symbol: its address, inferred or
// declared type, and name.
type Global struct {
	Name    string
	Address uint64
	Type    *dtype.Type
}

// Program owns every procedure under analysis, the binary image and
// symbol table they were decoded from, and the global variable table
// they share.
type Program struct {
	Modules []string

	Sink *event.Sink

	dec    frontend.Decoder
	img    frontend.BinaryImage
	syms   frontend.SymbolTable
	arch   frontend.ArchFrontend

	procs    []*Procedure
	byName   map[string]*Procedure
	byAddr   map[uint64]*Procedure

	globals map[string]*Global
	byGAddr map[uint64]*Global

	// symResolve dedups concurrent FindByAddress lookups for the same
	// address during report generation against a single in-flight
	// call to syms, the one place this single-threaded-core driver's
	// output stage (report) can legitimately be asked to resolve the
	// same address from more than one goroutine at once.
	symResolve singleflight.Group
}

// NewProgram returns an empty Program backed by dec/img/syms/arch for
// decoding and name/address resolution.
func NewProgram(dec frontend.Decoder, img frontend.BinaryImage, syms frontend.SymbolTable, arch frontend.ArchFrontend, sink *event.Sink) *Program {
	return &Program{
		Sink:    sink,
		dec:     dec,
		img:     img,
		syms:    syms,
		arch:    arch,
		byName:  map[string]*Procedure{},
		byAddr:  map[uint64]*Procedure{},
		globals: map[string]*Global{},
		byGAddr: map[uint64]*Global{},
	}
}

func (pr *Program) Decoder() frontend.Decoder        { return pr.dec }
func (pr *Program) Image() frontend.BinaryImage      { return pr.img }
func (pr *Program) Symbols() frontend.SymbolTable    { return pr.syms }
func (pr *Program) Arch() frontend.ArchFrontend      { return pr.arch }

// AddProcedure registers p under its name and (if nonzero) entry
// address.
func (pr *Program) AddProcedure(p *Procedure) {
	pr.procs = append(pr.procs, p)
	pr.byName[p.Name] = p
	if p.Entry != 0 {
		pr.byAddr[p.Entry] = p
	}
}

// ProcByName returns the procedure named name, or nil.
func (pr *Program) ProcByName(name string) *Procedure { return pr.byName[name] }

// ProcByAddr returns the procedure whose entry address is addr, or
// nil.
func (pr *Program) ProcByAddr(addr uint64) *Procedure { return pr.byAddr[addr] }

// Procedures returns every registered procedure, in registration
// order.
func (pr *Program) Procedures() []*Procedure {
	return append([]*Procedure(nil), pr.procs...)
}

// UserProcedures returns the registered procedures with a body,
// sorted by entry address, the order the top-level driver processes
// them in.
func (pr *Program) UserProcedures() []*Procedure {
	var out []*Procedure
	for _, p := range pr.procs {
		if !p.Lib {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entry < out[j].Entry })
	return out
}

// AddGlobal registers g, indexed by both name and address.
func (pr *Program) AddGlobal(g *Global) {
	pr.globals[g.Name] = g
	pr.byGAddr[g.Address] = g
}

// GlobalByName returns the global named name, or nil.
func (pr *Program) GlobalByName(name string) *Global { return pr.globals[name] }

// GlobalByAddr returns the global at addr, or nil.
func (pr *Program) GlobalByAddr(addr uint64) *Global { return pr.byGAddr[addr] }

// GlobalNames returns every registered global's name, sorted by
// address, the order a symbol header lists them in.
func (pr *Program) GlobalNames() []string {
	names := make([]string, 0, len(pr.globals))
	for name := range pr.globals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return pr.globals[names[i]].Address < pr.globals[names[j]].Address
	})
	return names
}

// ResolveSymbolName returns the best name for addr: a registered
// global, a procedure entry, or (failing both) the symbol table
// fronted by a singleflight.Group so concurrent report-generation
// goroutines resolving the same address collapse into a single
// lookup.
func (pr *Program) ResolveSymbolName(addr uint64) (string, bool) {
	if g := pr.GlobalByAddr(addr); g != nil {
		return g.Name, true
	}
	if p := pr.ProcByAddr(addr); p != nil {
		return p.Name, true
	}
	if pr.syms == nil {
		return "", false
	}
	v, err, _ := pr.symResolve.Do(symKey(addr), func() (interface{}, error) {
		sym, ok := pr.syms.FindByAddress(addr)
		if !ok {
			return "", nil
		}
		return sym.Name, nil
	})
	if err != nil || v.(string) == "" {
		return "", false
	}
	return v.(string), true
}

func symKey(addr uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[addr&0xf]
		addr >>= 4
	}
	return string(buf)
}
