// This file is part of grunt.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"io"

	"github.com/pkg/errors"
)

const (
	defaultCapacity      = 32
	defaultMaxMessageLen = 122
)

// EmitFunc is the capability the host supplies for FLUSH to externalize
// state through. The VM never owns the transport; it only calls emit.
type EmitFunc func(eventType EventType, eventID uint16, message []byte)

// EventType distinguishes an ERROR event from the one summary INFORMATION
// event the reference program emits.
type EventType uint8

const (
	EventError EventType = iota
	EventInformation
)

func (t EventType) String() string {
	if t == EventInformation {
		return "INFORMATION"
	}
	return "ERROR"
}

// HookFunc is an optional begin/end instrumentation hook. The VM calls it
// around the run but embeds no transport-specific logic of its own.
type HookFunc func()

// Machine is a per-run Grunt VM instance. All of its state -- stacks, input
// cursor, output cursor, pc -- is exclusive to one run and is created fresh
// by New; nothing persists across runs and nothing is visible to concurrent
// runs.
type Machine struct {
	pc       uint16
	program  Program
	strings  StringTable
	stack    *dualStack
	in       *inputQueue
	out      *outputQueue
	emit     EmitFunc
	debug    io.Writer
	onBegin  HookFunc
	onEnd    HookFunc
	insCount int64
}

// Option configures a Machine at construction time, mirroring the
// functional-options pattern used throughout this codebase's ancestry.
type Option func(*Machine) error

// WithCapacity sets the combined argument/control stack capacity. The
// reference program needs at least 32 combined slots; that is the default.
func WithCapacity(capacity int) Option {
	return func(m *Machine) error {
		if capacity < 1 {
			return errors.Errorf("grunt: stack capacity must be positive, got %d", capacity)
		}
		m.stack = newDualStack(capacity)
		return nil
	}
}

// WithMaxMessageLength sets the output queue's byte capacity, including the
// reserved terminating NUL. The framework default used for testing is 122.
func WithMaxMessageLength(n int) Option {
	return func(m *Machine) error {
		if n < 1 {
			return errors.Errorf("grunt: max message length must be positive, got %d", n)
		}
		m.out = newOutputQueue(n)
		return nil
	}
}

// WithDebugStream configures the out-of-band diagnostic stream a failing run
// writes one line to (Section 7). The default is io.Discard.
func WithDebugStream(w io.Writer) Option {
	return func(m *Machine) error {
		m.debug = w
		return nil
	}
}

// WithHooks installs optional begin/end instrumentation hooks around Run.
// Either may be nil. These exist so a host can time a run without the VM
// embedding any transport-specific performance-logging logic itself.
func WithHooks(onBegin, onEnd HookFunc) Option {
	return func(m *Machine) error {
		m.onBegin, m.onEnd = onBegin, onEnd
		return nil
	}
}

// New constructs a Machine ready to run program against the bytes of input,
// resolving StringRef literals through strings and delivering FLUSH events
// through emit. emit must not be nil; FLUSH is the reference program's only
// externally visible side effect and a nil sink would silently discard it.
func New(program Program, strings StringTable, input []byte, emit EmitFunc, opts ...Option) (*Machine, error) {
	if emit == nil {
		return nil, errors.New("grunt: emit must not be nil")
	}
	m := &Machine{
		program: program,
		strings: strings,
		emit:    emit,
		debug:   io.Discard,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if m.stack == nil {
		m.stack = newDualStack(defaultCapacity)
	}
	if m.out == nil {
		m.out = newOutputQueue(defaultMaxMessageLen)
	}
	if err := Validate(program, strings, len(m.out.buf)); err != nil {
		return nil, err
	}
	m.in = newInputQueue(input)
	return m, nil
}

// PC returns the current program counter. It is primarily useful from
// within the out-of-band debug line and from tests pinning dispatcher
// behavior against literal pc values.
func (m *Machine) PC() uint16 { return m.pc }

// InstructionCount returns the number of instructions dispatched so far in
// this run.
func (m *Machine) InstructionCount() int64 { return m.insCount }
