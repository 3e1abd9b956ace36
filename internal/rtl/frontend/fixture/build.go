// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/exp"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
)

// InstSpec is one instruction in a procedure fixture's literal
// program: an address, the mnemonic to instantiate from an InstDict,
// and its operands. Next overrides the decoder's default stride when
// nonzero (used for the RTL immediately before a delay slot, or any
// instruction whose successor isn't simply addr+stride).
type InstSpec struct {
	Addr      uint64
	Mnemonic  string
	Operands  []*exp.Expr
	Next      uint64
	DelaySlot bool
}

// ProcFixture names one procedure's literal instruction stream and
// entry address.
type ProcFixture struct {
	Name  string
	Entry uint64
	Insts []InstSpec
}

// BuildDecoders instantiates one frontend.Decoder per fixture,
// expanding each InstSpec through dict concurrently across fixtures —
// the independent-procedure-fixtures-in-parallel step before the
// procedure driver takes over, which is strictly single-threaded and
// processes one Decoder at a time by name. An error in any fixture's
// instruction stream fails the whole batch (group.Wait's first error),
// since a fixture program is test data a caller controls and controls
// correctly, not live recoverable input.
func BuildDecoders(ctx context.Context, dict *frontend.InstDict, regs *RegFile, fixtures []ProcFixture) (map[string]*Decoder, error) {
	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	out := make(map[string]*Decoder, len(fixtures))
	for _, pf := range fixtures {
		pf := pf
		g.Go(func() error {
			dec := NewDecoder(regs, DefaultStride)
			for _, is := range pf.Insts {
				stmts, err := dict.Instantiate(is.Mnemonic, is.Operands)
				if err != nil {
					return fmt.Errorf("fixture %q: %w", pf.Name, err)
				}
				rtl := cfg.NewRTL(is.Addr, stmts...)
				dec.Define(is.Addr, rtl, is.Next, is.DelaySlot)
			}
			mu.Lock()
			out[pf.Name] = dec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
