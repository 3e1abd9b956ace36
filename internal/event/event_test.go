// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"bytes"
	"strings"
	"testing"
)

func TestSinkStampsRunID(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	s.Log("hello", "proc", "foo")
	out := buf.String()
	if !strings.Contains(out, s.RunID()) {
		t.Errorf("log line %q missing run id %q", out, s.RunID())
	}
	if !strings.Contains(out, "proc=foo") {
		t.Errorf("log line %q missing label", out)
	}
}

func TestWithLabelsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewSink(&buf)
	child := parent.WithLabels("pass", "early")
	child.Log("child event")
	parent.Log("parent event")
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "pass=early") {
		t.Errorf("child line missing label: %q", lines[0])
	}
	if strings.Contains(lines[1], "pass=early") {
		t.Errorf("parent line polluted by child label: %q", lines[1])
	}
}

func TestDiscardSwallowsEverything(t *testing.T) {
	s := Discard()
	s.Error("boom")
	s.Warning("careful")
	// No panic, no observable output; nothing further to assert.
}

func TestGlobalDebugGate(t *testing.T) {
	SetDebug(false)
	if DebugEnabled() {
		t.Fatalf("expected debug disabled")
	}
	SetDebug(true)
	defer SetDebug(false)
	if !DebugEnabled() {
		t.Fatalf("expected debug enabled")
	}
}
