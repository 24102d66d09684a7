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

import "github.com/pkg/errors"

// Instruction is one opcode plus its optional immediate. Which field of the
// immediate is meaningful is determined entirely by Op; handlers never read
// a field the opcode doesn't define.
type Instruction struct {
	Op   Opcode
	Rep  uint16 // repetition count: AND/DUP/EQ/INPUT/OR/POP/REWIND/ROLL
	Lit  Value  // literal value: PUSHB/PUSHN/PUSHS
	Addr uint16 // jump/call target: CALL (absolute), JMPIF (forward offset)
}

// Program is a finite, read-only, ordered instruction sequence. Execution
// begins at index 0. The maximum length a u16 pc can address is 65536.
type Program []Instruction

const maxProgramLength = 1 << 16

// StringTable is a read-only ordered sequence of immutable strings backing
// StringRef values. Each entry must fit within maxMessageLen bytes,
// including the NUL terminator the output queue reserves for it.
type StringTable []string

// Validate checks the structural invariants Program and StringTable must
// satisfy before a run can start: program length fits in a u16 index, and
// every string is short enough to ever be flushed whole.
func Validate(prog Program, strs StringTable, maxMessageLen int) error {
	if len(prog) == 0 {
		return errors.New("grunt: program must contain at least one instruction")
	}
	if len(prog) > maxProgramLength {
		return errors.Errorf("grunt: program length %d exceeds u16 index space", len(prog))
	}
	for i, s := range strs {
		if len(s)+1 > maxMessageLen {
			return errors.Errorf("grunt: string table entry %d (%q) exceeds max message length %d including NUL", i, s, maxMessageLen)
		}
	}
	return nil
}
