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

package asm_test

import (
	"fmt"
	"os"

	"github.com/vspells/grunt/asm"
)

// ExampleAssemble shows a tiny program that adds two numbers and halts true.
func ExampleAssemble() {
	prog, _, err := asm.Assemble("raw_string", `
		( push two numbers and add them )
		PUSHN 2
		PUSHN 3
		ADD
		POP 1
		PUSHB true
		HALT
	`)
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(prog, os.Stdout)

	// Output:
	// 0	PUSHN 2
	// 1	PUSHN 3
	// 2	ADD
	// 3	POP 1
	// 4	PUSHB true
	// 5	HALT
}

// ExampleDisassemble shows a forward CALL/RETURN pair and its disassembly.
func ExampleDisassemble() {
	prog, _, err := asm.Assemble("calls", `
		CALL double
		HALT
	:double
		PUSHN 2
		RETURN
	`)
	if err != nil {
		panic(err)
	}

	for pc := 0; pc < len(prog); {
		fmt.Printf("%d\t", pc)
		pc, err = asm.Disassemble(prog, pc, os.Stdout)
		if err != nil {
			panic(err)
		}
		fmt.Println()
	}

	// Output:
	// 0	CALL 2
	// 1	HALT
	// 2	PUSHN 2
	// 3	RETURN
}
