// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exp

import (
	"github.com/kr/pretty"

	"github.com/5l1v3r1/boomerang-go/internal/event"
)

// Dump renders a verbose field-by-field view of e for interactive
// debugging, gated on the package-level debug flag
// (SPEC_FULL.md §4.A) so normal runs never pay for it. When debug
// dumping is disabled it falls back to the cheap String() rendering.
func (e *Expr) Dump() string {
	if !event.DebugEnabled() {
		return e.String()
	}
	return pretty.Sprint(e)
}
