// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stmt

import "github.com/5l1v3r1/boomerang-go/internal/rtl/exp"

func cloneExprSlice(s []*exp.Expr) []*exp.Expr {
	if s == nil {
		return nil
	}
	out := make([]*exp.Expr, len(s))
	for i, e := range s {
		out[i] = e.Clone()
	}
	return out
}

func containsExpr(s []*exp.Expr, e *exp.Expr) bool {
	for _, x := range s {
		if exp.Equal(x, e) {
			return true
		}
	}
	return false
}
