// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import (
	"github.com/5l1v3r1/boomerang-go/internal/rtl/cfg"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/ssaform"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"
)

// callArgumentUpdatePass re-derives every call's Arguments from its
// (possibly just-promoted) signature and use-collector, registered as
// its own ssaform.Pass rather than folded into propagation: a
// promoteSignature step earlier in middleDecompile can grow a
// callee's parameter list independently of anything propagate/rename
// touch, and the pass manager's fixpoint is the natural place to
// re-settle every call site against the new shape.
var callArgumentUpdatePass = ssaform.Pass{
	Name:               "CallArgumentUpdate",
	ExecuteOnProcedure: runCallArgumentUpdate,
}

func runCallArgumentUpdate(c *cfg.CFG) bool {
	changed := false
	for _, b := range c.Blocks {
		if b.Kind != cfg.Call {
			continue
		}
		for _, s := range b.Statements() {
			if s.Kind != stmt.KindCall || s.Sig == nil {
				continue
			}
			before := len(s.Arguments)
			s.UpdateArguments(s.UseCollector)
			if len(s.Arguments) != before {
				changed = true
			}
		}
	}
	return changed
}
