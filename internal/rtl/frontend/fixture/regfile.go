// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fixture is a deterministic in-memory frontend: it implements
// every interface in frontend against a literal RTL program instead of
// a real disassembler, so the decompilation core's tests exercise the
// full pipeline without a binary loader.
package fixture

// RegFile is a shared, read-only register-name/size table used by every
// Decoder built against it.
type RegFile struct {
	names map[int]string
	nums  map[string]int
	sizes map[int]int
}

// NewRegFile returns an empty RegFile ready for Define calls.
func NewRegFile() *RegFile {
	return &RegFile{names: map[int]string{}, nums: map[string]int{}, sizes: map[int]int{}}
}

// Define registers regNum under name with the given bit width.
func (r *RegFile) Define(regNum int, name string, size int) {
	r.names[regNum] = name
	r.nums[name] = regNum
	r.sizes[regNum] = size
}

func (r *RegFile) name(num int) string {
	if n, ok := r.names[num]; ok {
		return n
	}
	return ""
}

func (r *RegFile) size(num int) int { return r.sizes[num] }

func (r *RegFile) numByName(name string) (int, bool) {
	n, ok := r.nums[name]
	return n, ok
}
