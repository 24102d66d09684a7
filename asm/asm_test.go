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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vspells/grunt/asm"
	"github.com/vspells/grunt/vm"
)

func TestAssemble_simple(t *testing.T) {
	prog, _, err := asm.Assemble("t", `
		PUSHN 1
		PUSHN 2
		ADD
		HALT
	`)
	require.NoError(t, err)
	require.Len(t, prog, 4)
	assert.Equal(t, vm.OpPUSHN, prog[0].Op)
	assert.Equal(t, uint32(1), prog[0].Lit.Num)
	assert.Equal(t, vm.OpADD, prog[2].Op)
	assert.Equal(t, vm.OpHALT, prog[3].Op)
}

func TestAssemble_callAbsolute(t *testing.T) {
	prog, _, err := asm.Assemble("t", `
		CALL sub
		HALT
	:sub
		RETURN
	`)
	require.NoError(t, err)
	require.Len(t, prog, 3)
	assert.Equal(t, uint16(2), prog[0].Addr)
}

func TestAssemble_jmpifRelativeOffset(t *testing.T) {
	prog, _, err := asm.Assemble("t", `
		PUSHB true
		JMPIF skip
		PUSHB false
	:skip
		HALT
	`)
	require.NoError(t, err)
	// JMPIF is instruction index 1; skip is index 3; offset = 3-1 = 2.
	assert.Equal(t, uint16(2), prog[1].Addr)
}

func TestAssemble_callMustBeForward(t *testing.T) {
	_, _, err := asm.Assemble("t", `
	:loop
		CALL loop
	`)
	assert.Error(t, err)
}

func TestAssemble_jmpifFloorRejected(t *testing.T) {
	_, _, err := asm.Assemble("t", `
		PUSHB true
	:here
		JMPIF here
	`)
	assert.Error(t, err)
}

func TestAssemble_equConstant(t *testing.T) {
	prog, _, err := asm.Assemble("t", `
		.equ TWO 2
		AND TWO
	`)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), prog[0].Rep)
}

func TestAssemble_stringTable(t *testing.T) {
	prog, strs, err := asm.Assemble("t", `
		.string greeting "hello"
		PUSHS greeting
		PUSHS "hello"
		PUSHS "world"
	`)
	require.NoError(t, err)
	require.Equal(t, vm.StringTable{"hello", "world"}, strs)
	assert.Equal(t, uint16(0), prog[0].Lit.Ref)
	assert.Equal(t, uint16(0), prog[1].Lit.Ref)
	assert.Equal(t, uint16(1), prog[2].Lit.Ref)
}

func TestAssemble_unknownMnemonic(t *testing.T) {
	_, _, err := asm.Assemble("t", "NOTANOPCODE")
	assert.Error(t, err)
}

func TestAssemble_undefinedLabel(t *testing.T) {
	_, _, err := asm.Assemble("t", "CALL nowhere")
	assert.Error(t, err)
}
