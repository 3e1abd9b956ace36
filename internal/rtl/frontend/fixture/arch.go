// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fixture

import "github.com/5l1v3r1/boomerang-go/internal/rtl/stmt"

// Arch implements frontend.ArchFrontend with literal, test-configured
// policy tables in place of real platform/ABI detection.
type Arch struct {
	Name     string
	Win32    bool
	NoReturn map[string]bool
	Defaults map[string]*stmt.Signature
}

// NewArch returns an Arch named name, targeting a non-Win32 ABI by
// default.
func NewArch(name string) *Arch {
	return &Arch{Name: name, NoReturn: map[string]bool{}, Defaults: map[string]*stmt.Signature{}}
}

// MarkNoReturn records name as a call destination that never returns.
func (a *Arch) MarkNoReturn(name string) { a.NoReturn[name] = true }

// SetDefaultSignature records sig as the fallback signature for calls
// to name when no reaching-definition-based signature has been proven.
func (a *Arch) SetDefaultSignature(name string, sig *stmt.Signature) { a.Defaults[name] = sig }

// IsNoReturnCallDest implements frontend.ArchFrontend.
func (a *Arch) IsNoReturnCallDest(name string) bool { return a.NoReturn[name] }

// DefaultSignature implements frontend.ArchFrontend.
func (a *Arch) DefaultSignature(name string) *stmt.Signature { return a.Defaults[name] }

// IsWin32 implements frontend.ArchFrontend.
func (a *Arch) IsWin32() bool { return a.Win32 }

// ArchName implements frontend.ArchFrontend.
func (a *Arch) ArchName() string { return a.Name }
