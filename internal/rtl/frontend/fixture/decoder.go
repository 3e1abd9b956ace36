// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import (
	"fmt"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
)

// DefaultStride is the address delta used to compute an instruction's
// NextAddr when its fixture definition leaves one unspecified.
const DefaultStride = 4

// Decoder implements frontend.Decoder against a literal table of
// pre-built instructions, one per procedure fixture.
type Decoder struct {
	regs   *RegFile
	stride uint64
	insts  map[uint64]decoded
}

type decoded struct {
	rtl       *cfg.RTL
	next      uint64
	delaySlot bool
}

// NewDecoder returns a Decoder sharing regs, defaulting NextAddr to
// addr+stride for any instruction that doesn't override it.
func NewDecoder(regs *RegFile, stride uint64) *Decoder {
	if stride == 0 {
		stride = DefaultStride
	}
	return &Decoder{regs: regs, stride: stride, insts: map[uint64]decoded{}}
}

// Define installs the RTL at addr, with next defaulting to addr+stride
// when zero.
func (d *Decoder) Define(addr uint64, rtl *cfg.RTL, next uint64, delaySlot bool) {
	if next == 0 {
		next = addr + d.stride
	}
	d.insts[addr] = decoded{rtl: rtl, next: next, delaySlot: delaySlot}
}

// Decode implements frontend.Decoder.
func (d *Decoder) Decode(pc uint64) (frontend.DecodeResult, error) {
	inst, ok := d.insts[pc]
	if !ok {
		return frontend.DecodeResult{}, fmt.Errorf("fixture: no instruction defined at 0x%x", pc)
	}
	return frontend.DecodeResult{RTL: inst.rtl, NextAddr: inst.next, DelaySlot: inst.delaySlot}, nil
}

// RegName implements frontend.Decoder.
func (d *Decoder) RegName(num int) string { return d.regs.name(num) }

// RegSize implements frontend.Decoder.
func (d *Decoder) RegSize(num int) int { return d.regs.size(num) }

// RegNumByName implements frontend.Decoder.
func (d *Decoder) RegNumByName(name string) (int, bool) { return d.regs.numByName(name) }
