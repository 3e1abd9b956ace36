// Copyright 2026 The Boomerang-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event is the ambient structured-logging layer (SPEC_FULL.md
// this is a small
// Sink interface, an Export entry point, and a label-carrying
// builder, rather than a global logger singleton.
package event

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// globalDebug gates package-level debug dumping helpers (exp.Expr.Dump,
// stmt.Stmt.Dump) that have no Sink of their own to ask. Distinct from
// a Sink's own per-instance debug flag used for its Export output.
var globalDebug int32

// SetDebug toggles the package-level debug gate used by DebugEnabled.
func SetDebug(v bool) {
	if v {
		atomic.StoreInt32(&globalDebug, 1)
	} else {
		atomic.StoreInt32(&globalDebug, 0)
	}
}

// DebugEnabled reports whether package-level verbose dumping is on.
func DebugEnabled() bool { return atomic.LoadInt32(&globalDebug) != 0 }

// Level is the severity of a logged Event.
type Level uint8

const (
	LevelLog Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "log"
	}
}

// Event is one structured log line: a level, a message, and a set of
// key/value labels (procedure name, pass name, run id, ...).
type Event struct {
	Level   Level
	Message string
	Labels  map[string]string
	When    time.Time
}

// Sink receives Events. The zero value of *Sink is not usable; build
// one with NewSink.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	runID  string
	debug  bool
	labels map[string]string
}

// NewSink creates a Sink writing to w, stamping every event with a
// fresh correlation id.
func NewSink(w io.Writer) *Sink {
	return &Sink{out: w, runID: uuid.NewString()}
}

// RunID returns this sink's correlation id.
func (s *Sink) RunID() string { return s.runID }

// SetDebug toggles whether DebugEnabled reports true for this sink.
func (s *Sink) SetDebug(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = v
}

// DebugEnabled reports whether verbose (kr/pretty) dumping is enabled
// for this sink.
func (s *Sink) DebugEnabled() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

// WithLabels returns a derived Sink that prepends the given labels to
// every event it logs, without mutating the receiver.
func (s *Sink) WithLabels(kv ...string) *Sink {
	child := &Sink{out: s.out, runID: s.runID, debug: s.debug, labels: mergeLabels(s.labels, kv)}
	return child
}

func mergeLabels(base map[string]string, kv []string) map[string]string {
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

// Log emits an informational event.
func (s *Sink) Log(msg string, kv ...string) { s.export(LevelLog, msg, kv) }

// Warning emits a warning event (FixpointExceeded,
// ProofGaveUp and similar are always warnings, never fatal).
func (s *Sink) Warning(msg string, kv ...string) { s.export(LevelWarning, msg, kv) }

// Error emits an error event for catastrophic, procedure-local
// failures.
func (s *Sink) Error(msg string, kv ...string) { s.export(LevelError, msg, kv) }

func (s *Sink) export(level Level, msg string, kv []string) {
	if s == nil {
		return
	}
	labels := mergeLabels(s.labels, kv)
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%s] run=%s %s%s\n", level, s.runID, msg, labelSuffix(labels))
}

func labelSuffix(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	s := ""
	for k, v := range labels {
		s += fmt.Sprintf(" %s=%s", k, v)
	}
	return s
}

// Discard is a Sink that drops every event, useful for tests that
// don't want to assert on log output.
func Discard() *Sink { return NewSink(io.Discard) }
