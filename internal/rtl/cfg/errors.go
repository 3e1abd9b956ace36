// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import "golang.org/x/xerrors"

// BBAlreadyExistsError is returned (never panicked — a design note
// replaces the source's exception with a result value) when newBB
// is asked to create a block at an address already occupied by a
// complete BasicBlock.
type BBAlreadyExistsError struct {
	Existing *BasicBlock
}

func (e *BBAlreadyExistsError) Error() string {
	return xerrors.Errorf("newBB: %v already exists and is complete", e.Existing).Error()
}

// WellFormednessFailure records why wellFormCfg rejected a CFG
//.
type WellFormednessFailure struct {
	Reason string
}

func (e *WellFormednessFailure) Error() string {
	return xerrors.Errorf("CFG not well formed: %s", e.Reason).Error()
}
