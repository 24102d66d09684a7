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

// Opcode identifies the operation performed by one Instruction.
type Opcode uint8

// The twenty-two Grunt opcodes, with the hex values fixed by the external
// wire contract -- these are not reassignable by reordering a Go const block.
const (
	OpADD    Opcode = 0x01
	OpAND    Opcode = 0x02
	OpCALL   Opcode = 0x03
	OpDUP    Opcode = 0x04
	OpEQ     Opcode = 0x05
	OpFLUSH  Opcode = 0x06
	OpGT     Opcode = 0x07
	OpHALT   Opcode = 0x08
	OpJMPIF  Opcode = 0x09
	OpLT     Opcode = 0x0A
	OpNOT    Opcode = 0x0B
	OpOR     Opcode = 0x0C
	OpOUTPUT Opcode = 0x0D
	OpPOP    Opcode = 0x0E
	OpPUSHB  Opcode = 0x0F
	OpPUSHN  Opcode = 0x10
	OpPUSHS  Opcode = 0x11
	OpINPUT  Opcode = 0x12
	OpRETURN Opcode = 0x13
	OpREWIND Opcode = 0x14
	OpROLL   Opcode = 0x15
	OpSUB    Opcode = 0x16
)

var opcodeNames = map[Opcode]string{
	OpADD:    "ADD",
	OpAND:    "AND",
	OpCALL:   "CALL",
	OpDUP:    "DUP",
	OpEQ:     "EQ",
	OpFLUSH:  "FLUSH",
	OpGT:     "GT",
	OpHALT:   "HALT",
	OpJMPIF:  "JMPIF",
	OpLT:     "LT",
	OpNOT:    "NOT",
	OpOR:     "OR",
	OpOUTPUT: "OUTPUT",
	OpPOP:    "POP",
	OpPUSHB:  "PUSHB",
	OpPUSHN:  "PUSHN",
	OpPUSHS:  "PUSHS",
	OpINPUT:  "INPUT",
	OpRETURN: "RETURN",
	OpREWIND: "REWIND",
	OpROLL:   "ROLL",
	OpSUB:    "SUB",
}

// opcodeIndex is built in init and used by the assembler to resolve mnemonics
// back to opcodes; kept here, next to the canonical table, so the two can
// never drift apart.
var opcodeIndex = make(map[string]Opcode, len(opcodeNames))

func init() {
	for op, name := range opcodeNames {
		opcodeIndex[name] = op
	}
}

// OpcodeByName looks up an opcode by its canonical mnemonic (case-sensitive,
// upper-case, matching the Section 6.1 table).
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "???"
}
