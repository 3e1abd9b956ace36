// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report implements the read-only dump formats over an
// already-decompiled *proc.Program: dotty-style graph text for call
// graphs and per-procedure CFGs, a C-like symbol header, and a
// Markdown decompilation report. None of these feed back into the
// core; they are pure formatters, the same role go/cfg's standalone
// dump CLI played for the teacher's own CFG package.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/width"

	"github.com/5l1v3r1/boomerang-go/internal/rtl/proc"
)

// displayWidth returns s's on-screen column count, widening East
// Asian fullwidth/wide runes to 2 columns the way a monospace
// terminal renders them, so padRight can align fixed-width columns even
// when a symbol name carries non-ASCII characters pulled from a
// foreign binary's string table.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// padRight pads s with spaces to at least n display columns.
func padRight(s string, n int) string {
	if d := n - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

// sortedProcedures returns pr's user procedures in entry-address
// order, the stable order every report format in this package walks.
func sortedProcedures(pr *proc.Program) []*proc.Procedure {
	procs := pr.UserProcedures()
	sort.Slice(procs, func(i, j int) bool { return procs[i].Entry < procs[j].Entry })
	return procs
}

func fmtAddr(addr uint64) string {
	return fmt.Sprintf("0x%x", addr)
}
