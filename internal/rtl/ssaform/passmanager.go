// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssaform

import "github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"

// Pass is one named, idempotent-to-call step of an analysis pipeline;
// ExecuteOnProcedure reports whether it changed anything, letting a
// PassManager iterate to a fixpoint. This factors out the "pass
// sequencing originally controlled by boolean flags scattered through
// a monolithic procedure" the design notes call out.
type Pass struct {
	Name               string
	ExecuteOnProcedure func(c *cfg.CFG) bool
}

// PassManager runs an ordered list of passes to a fixpoint, capped at
// MaxPasses iterations of the whole list.
type PassManager struct {
	Passes    []Pass
	MaxPasses int
}

// Run executes every pass in order, repeating the whole list until no
// pass reports a change or MaxPasses rounds have run. Returns the
// number of rounds executed and whether it converged (false means the
// pass cap was hit, the FixpointExceeded).
func (pm *PassManager) Run(c *cfg.CFG) (rounds int, converged bool) {
	cap := pm.MaxPasses
	if cap <= 0 {
		cap = 1
	}
	for rounds = 0; rounds < cap; rounds++ {
		changed := false
		for _, p := range pm.Passes {
			if p.ExecuteOnProcedure(c) {
				changed = true
			}
		}
		if !changed {
			return rounds + 1, true
		}
	}
	return rounds, false
}
