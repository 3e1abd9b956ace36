// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

// CycleGroup is a set of mutually (possibly indirectly) recursive
// procedures discovered during the DFS that drives decompilation: a
// back-edge in the call graph unions every procedure between the
// loop's head and its tail into one group, the strongly-connected
// component that recursionGroupAnalysis processes as a unit.
type CycleGroup struct {
	Members map[*Procedure]bool
}

func newCycleGroup(p *Procedure) *CycleGroup {
	cg := &CycleGroup{Members: map[*Procedure]bool{p: true}}
	p.Group = cg
	return cg
}

// union merges other into cg in place, repointing every member of
// other at cg, and returns cg. A no-op if the two groups already
// coincide.
func (cg *CycleGroup) union(other *CycleGroup) *CycleGroup {
	if cg == nil {
		return other
	}
	if other == nil || cg == other {
		return cg
	}
	for m := range other.Members {
		cg.Members[m] = true
		m.Group = cg
	}
	return cg
}

// procs returns the group's members as a slice, in no particular
// order.
func (cg *CycleGroup) procs() []*Procedure {
	out := make([]*Procedure, 0, len(cg.Members))
	for p := range cg.Members {
		out = append(out, p)
	}
	return out
}
