// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import (
	"fmt"
	"sort"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/frontend"
)

// Image implements frontend.BinaryImage over literal, addressed data:
// no real byte buffer, just maps keyed by address.
type Image struct {
	sections []frontend.Section
	words    map[uint64]uint64
	floats   map[uint64]float64
	strings  map[uint64]bool
	jumps    map[uint64]uint64
}

// NewImage returns an empty Image.
func NewImage() *Image {
	return &Image{
		words:   map[uint64]uint64{},
		floats:  map[uint64]float64{},
		strings: map[uint64]bool{},
		jumps:   map[uint64]uint64{},
	}
}

// AddSection registers a loaded section; SectionByAddr/IsReadOnly
// consult these in insertion order on overlap, earliest wins.
func (m *Image) AddSection(s frontend.Section) { m.sections = append(m.sections, s) }

// SetWord records the native-width integer value readable at addr.
func (m *Image) SetWord(addr uint64, v uint64) { m.words[addr] = v }

// SetFloat records the native-width float value readable at addr.
func (m *Image) SetFloat(addr uint64, v float64) { m.floats[addr] = v }

// MarkStringConstant records addr as the start of a string literal.
func (m *Image) MarkStringConstant(addr uint64) { m.strings[addr] = true }

// SetJumpTarget records addr as a computed-jump slot resolving to target.
func (m *Image) SetJumpTarget(addr, target uint64) { m.jumps[addr] = target }

// ReadNative implements frontend.BinaryImage.
func (m *Image) ReadNative(addr uint64, width int) (uint64, error) {
	v, ok := m.words[addr]
	if !ok {
		return 0, fmt.Errorf("fixture: no word defined at 0x%x", addr)
	}
	if width < 64 {
		v &= (uint64(1) << uint(width)) - 1
	}
	return v, nil
}

// ReadNativeFloat implements frontend.BinaryImage.
func (m *Image) ReadNativeFloat(addr uint64, width int) (float64, error) {
	v, ok := m.floats[addr]
	if !ok {
		return 0, fmt.Errorf("fixture: no float defined at 0x%x", addr)
	}
	return v, nil
}

// SectionByAddr implements frontend.BinaryImage.
func (m *Image) SectionByAddr(addr uint64) (frontend.Section, bool) {
	for _, s := range m.sections {
		if addr >= s.LowAddr && addr < s.HighAddr {
			return s, true
		}
	}
	return frontend.Section{}, false
}

// IsReadOnly implements frontend.BinaryImage.
func (m *Image) IsReadOnly(addr uint64) bool {
	s, ok := m.SectionByAddr(addr)
	return ok && s.ReadOnly
}

// IsStringConstant implements frontend.BinaryImage.
func (m *Image) IsStringConstant(addr uint64) bool { return m.strings[addr] }

// JumpTarget implements frontend.BinaryImage.
func (m *Image) JumpTarget(addr uint64) (uint64, bool) {
	t, ok := m.jumps[addr]
	return t, ok
}

// sectionNames returns section names sorted by name, used only by
// report formatting.
func (m *Image) sectionNames() []string {
	names := make([]string, 0, len(m.sections))
	for _, s := range m.sections {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
