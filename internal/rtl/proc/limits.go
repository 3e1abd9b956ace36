// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

// Named pass caps for the driver's fixpoint loops, standing in
// for the magic numbers the original control-flow tuned by hand.
// Each is generous relative to the shapes middleDecompile actually
// produces (procedures with at most a few dozen locations and a
// handful of loops), so hitting one is itself diagnostic of a
// non-terminating rewrite rather than a normal run needing more
// headroom.
const (
	// passCapMiddleDecompile bounds the {placePhiFunctions; rename;
	// updateReturns; propagate; removeSpAssigns} round in
	// middleDecompile.
	passCapMiddleDecompile = 12

	// passCapInterference is not consulted by any loop: FromSSAform
	// makes a single de-SSA pass, and the driver does not call it.
	passCapInterference = 100000

	// passCapASTSearch bounds the preservation prover's structural
	// recursion depth (the "give up and report ProofGaveUp" ceiling).
	passCapASTSearch = 100

	// passCapTypeAnalysis is not consulted: structure.RunTypeAnalysis
	// caps its own fixpoint at structure.MaxTypeAnalysisPasses (100),
	// both per-procedure and in Program.GlobalTypeAnalysis.
	passCapTypeAnalysis = 64
)
