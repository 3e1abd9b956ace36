// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proc

import "golang.org/x/xerrors"

// FixpointExceededError reports that a bounded pass loop hit its cap
// without converging. Always a warning, never fatal: the caller keeps
// whatever the last round produced and moves on.
type FixpointExceededError struct {
	Proc string
	Pass string
	Cap  int
}

func (e *FixpointExceededError) Error() string {
	return xerrors.Errorf("%s: %s did not converge within %d passes", e.Proc, e.Pass, e.Cap).Error()
}

// UnanalysableIndirectTargetError reports that analyseIndirectJumps
// could not resolve a computed jump or call to a bounded set of
// targets.
type UnanalysableIndirectTargetError struct {
	Proc string
	Addr uint64
}

func (e *UnanalysableIndirectTargetError) Error() string {
	return xerrors.Errorf("%s: indirect target at 0x%x could not be resolved", e.Proc, e.Addr).Error()
}

// TypeAnalysisInconsistencyError reports that RunTypeAnalysis hit its
// pass cap (structure.MaxTypeAnalysisPasses) without reaching a fixed
// point.
type TypeAnalysisInconsistencyError struct {
	Proc string
}

func (e *TypeAnalysisInconsistencyError) Error() string {
	return xerrors.Errorf("%s: type analysis did not converge", e.Proc).Error()
}

// ProofGaveUpError reports that prover hit passCapASTSearch without
// proving or refuting lhs = rhs; the caller treats this as "not
// proven" rather than aborting.
type ProofGaveUpError struct {
	Proc string
	LHS  string
}

func (e *ProofGaveUpError) Error() string {
	return xerrors.Errorf("%s: preservation proof for %s gave up", e.Proc, e.LHS).Error()
}
