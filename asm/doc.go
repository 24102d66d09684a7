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

// Package asm assembles and disassembles Grunt VM programs.
//
// Grunt assembly is a flat sequence of whitespace-separated mnemonics and
// operands, one instruction per mnemonic; the twenty-two opcodes and
// their immediate kinds are exactly those of vm.Opcode:
//
//	ADD  AND n  CALL label  DUP n  EQ n  FLUSH  GT  HALT  JMPIF label
//	LT  NOT  OR n  OUTPUT  POP n  PUSHB true|false  PUSHN n  PUSHS "s"|name
//	INPUT n  RETURN  REWIND n  ROLL n  SUB
//
// Comments are parenthesized, with the parentheses separated from their
// contents by whitespace:
//
//	( this is a comment )
//
// Labels are defined with a leading colon and referenced without one:
//
//	PUSHB true  JMPIF done  PUSHN 1  :done  HALT
//
// CALL resolves its label to an absolute instruction index, matching the
// VM's own CALL semantics. JMPIF resolves its label to a forward offset
// relative to the JMPIF instruction's own index -- the assembler computes
// this so assembly authors never have to reason about the dispatcher's
// pre-increment convention by hand; at the VM level the offset the assembler
// emits is exactly what a hand-built Instruction would carry, preserving
// the distinction between CALL's absolute target and JMPIF's relative one.
//
// Directives:
//
//	.equ NAME value
//
// binds NAME to an integer constant usable wherever an integer literal is
// expected (AND/DUP/EQ/INPUT/OR/POP/REWIND/ROLL repetition counts, PUSHN
// operands).
//
//	.string NAME "text"
//
// appends "text" to the program's string table and binds NAME to its index,
// so PUSHS NAME can be used instead of a bare string literal. PUSHS also
// accepts an inline string literal directly; identical inline literals are
// interned to the same table entry.
package asm
