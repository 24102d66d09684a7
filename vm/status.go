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

// Status is the single word a run returns: either one of the two
// program-intended halts, or a runtime error code. Status implements error
// so callers that want Go error-handling idiom can use it directly; callers
// that want the raw framework status word can compare it numerically.
type Status uint8

// ok is the zero Status, used internally as "no error yet"; it is never a
// valid return value from run and is never exposed outside this package.
const ok Status = 0

const (
	HaltTrue        Status = 0x01
	HaltFalse       Status = 0x02
	InterpreterBug  Status = 0x11
	InvalidArgument Status = 0x12
	InvalidLiteral  Status = 0x13
	InvalidOpcode   Status = 0x14
	NoLoops         Status = 0x15
	NoProgram       Status = 0x16
	OutOfBounds     Status = 0x17
)

var statusNames = map[Status]string{
	HaltTrue:        "HaltTrue",
	HaltFalse:       "HaltFalse",
	InterpreterBug:  "InterpreterBug",
	InvalidArgument: "InvalidArgument",
	InvalidLiteral:  "InvalidLiteral",
	InvalidOpcode:   "InvalidOpcode",
	NoLoops:         "NoLoops",
	NoProgram:       "NoProgram",
	OutOfBounds:     "OutOfBounds",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Status(?)"
}

// Error satisfies the error interface so a Status can be returned wherever
// Go code expects one; it is not wrapped or allocated for the hot path.
func (s Status) Error() string { return s.String() }

// Halted reports whether s is one of the two program-intended halts.
func (s Status) Halted() bool { return s == HaltTrue || s == HaltFalse }

// Failed reports whether s is a runtime error, i.e. anything that is not a
// program-intended halt.
func (s Status) Failed() bool { return !s.Halted() }

// IsInterpreterBug reports whether s signals an internal invariant violation
// that well-formed opcode handlers should never trigger.
func (s Status) IsInterpreterBug() bool { return s == InterpreterBug }
