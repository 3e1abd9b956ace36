// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

// Status is the decompilation driver's view of how far a Procedure
// has progressed, ordered so status comparisons ("< Final") mean
// what they say.
type Status uint8

const (
	Undecoded Status = iota
	Decoded
	Visited
	InCycle
	EarlyDone
	Preserveds
	Final
	CodeGenerated
)

func (s Status) String() string {
	switch s {
	case Undecoded:
		return "Undecoded"
	case Decoded:
		return "Decoded"
	case Visited:
		return "Visited"
	case InCycle:
		return "InCycle"
	case EarlyDone:
		return "EarlyDone"
	case Preserveds:
		return "Preserveds"
	case Final:
		return "Final"
	case CodeGenerated:
		return "CodeGenerated"
	default:
		return "?"
	}
}
