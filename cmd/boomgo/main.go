// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command boomgo runs the decompilation driver against a JSON-encoded
// fixture program and writes the requested report artifacts. It is a
// demo/test harness, not a real binary loader: the fixture format
// (see fixture.go) stands in for the disassembler/loader spec.md §6
// treats as an external collaborator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"golang.org/x/mod/semver"

	"github.com/5l1v3r1/boomerang-go/internal/event"
	"github.com/5l1v3r1/boomerang-go/internal/rtl/report"
)

var version = "v0.0.0"

func main() {
	os.Exit(boomgoMain())
}

// boomgoMain reads the process's own argv/stdout/stderr, the shape
// testscript's RunMain expects for a registered subcommand.
func boomgoMain() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("boomgo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fixturePath := fs.String("fixture", "", "path to a JSON fixture program")
	reportPath := fs.String("report", "", "write a Markdown decompilation report to this path")
	dottyPath := fs.String("dotty", "", "write the whole-program call graph as dotty text to this path")
	symbolsPath := fs.String("symbols", "", "write a C-like symbol header to this path")
	debug := fs.Bool("debug", false, "enable verbose kr/pretty dumps")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		if !semver.IsValid(version) {
			fmt.Fprintf(stderr, "boomgo: invalid build version %q\n", version)
			return 1
		}
		fmt.Fprintln(stdout, version)
		return 0
	}
	if *fixturePath == "" {
		fmt.Fprintln(stderr, "boomgo: -fixture is required")
		return 2
	}

	sink := event.NewSink(stderr)
	sink.SetDebug(*debug)
	event.SetDebug(*debug)

	pr, err := loadProgram(*fixturePath, sink)
	if err != nil {
		fmt.Fprintf(stderr, "boomgo: %v\n", err)
		return 1
	}

	pr.DecompileAll()

	if *debug {
		for _, p := range pr.UserProcedures() {
			fmt.Fprintf(stderr, "%# v\n", pretty.Formatter(p))
		}
	}

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report.Markdown(pr)), 0o644); err != nil {
			fmt.Fprintf(stderr, "boomgo: writing report: %v\n", err)
			return 1
		}
	}
	if *dottyPath != "" {
		if err := os.WriteFile(*dottyPath, []byte(report.CallGraph(pr)), 0o644); err != nil {
			fmt.Fprintf(stderr, "boomgo: writing dotty: %v\n", err)
			return 1
		}
	}
	if *symbolsPath != "" {
		if err := os.WriteFile(*symbolsPath, []byte(report.Symbols(pr)), 0o644); err != nil {
			fmt.Fprintf(stderr, "boomgo: writing symbols: %v\n", err)
			return 1
		}
	}

	for _, p := range pr.UserProcedures() {
		fmt.Fprintf(stdout, "%s: %s\n", p.Name, p.Status)
	}
	return 0
}
