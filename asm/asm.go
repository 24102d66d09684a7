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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vspells/grunt/internal/ngi"
	"github.com/vspells/grunt/vm"
)

// Assemble compiles Grunt assembly source text and returns the resulting
// Program and StringTable.
//
// The name parameter is used only in error messages to identify the source;
// if source came from a file, name should be that file's name.
func Assemble(name string, source string) (vm.Program, vm.StringTable, error) {
	return newParser().Parse(name, source)
}

// Disassemble writes one instruction's mnemonic and immediate, formatted at
// position pc, to w and returns the index of the next instruction.
func Disassemble(prog vm.Program, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*ngi.ErrWriter)
	if ew == nil {
		ew = ngi.NewErrWriter(w)
	}

	instr := prog[pc]
	io.WriteString(ew, instr.Op.String())
	switch instr.Op {
	case vm.OpAND, vm.OpDUP, vm.OpEQ, vm.OpOR, vm.OpPOP, vm.OpREWIND, vm.OpROLL, vm.OpINPUT:
		fmt.Fprintf(ew, " %d", instr.Rep)
	case vm.OpPUSHB:
		fmt.Fprintf(ew, " %v", instr.Lit.Bool)
	case vm.OpPUSHN:
		fmt.Fprintf(ew, " %d", instr.Lit.Num)
	case vm.OpPUSHS:
		fmt.Fprintf(ew, " #%d", instr.Lit.Ref)
	case vm.OpCALL:
		fmt.Fprintf(ew, " %d", instr.Addr)
	case vm.OpJMPIF:
		fmt.Fprintf(ew, " +%d", instr.Addr)
	}
	return pc + 1, ew.Err
}

// DisassembleAll writes a disassembly of every instruction in prog to w, one
// per line prefixed with its address.
func DisassembleAll(prog vm.Program, w io.Writer) error {
	ew := ngi.NewErrWriter(w)
	width := len(strconv.Itoa(len(prog) - 1))
	for pc := 0; pc < len(prog); {
		fmt.Fprintf(ew, "%*d\t", width, pc)
		pc, _ = Disassemble(prog, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
