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

// Package vm implements the Grunt virtual machine: a minimal, sub-Turing
// stack machine built to provide, by construction, control-flow safety,
// memory safety, and termination for any program it hosts.
//
// A Machine is created fresh per run with New and is never reused across
// runs; all of its state -- stacks, input cursor, output cursor, program
// counter -- belongs exclusively to that run. FLUSH is the machine's only
// externally visible side effect, delivered through the EmitFunc supplied
// to New.
//
// The dispatcher in Run pre-increments the program counter before
// dispatching each instruction, so a CALL's captured return address is
// unambiguously "the instruction after the call" and JMPIF's forward offset
// is relative to that already-advanced pc. This is a real asymmetry in the
// instruction set, not an oversight: CALL targets are absolute instruction
// indices, JMPIF targets are forward offsets. Both are enforced strictly
// forward, which is what makes every hosted program terminate in bounded
// steps.
//
// TODO:
//	- expose a Reset that reuses a Machine's backing arrays across runs
//	  instead of allocating a new one each time, once a caller needs it.
package vm
