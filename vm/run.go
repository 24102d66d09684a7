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
	"fmt"
	"math"
)

// Run executes the program from pc 0 until a HALT or a runtime error. The
// fetch-decode-dispatch loop pre-increments pc before dispatching, so a
// CALL's captured return address is unambiguously "the instruction after
// the call", and JMPIF's offset is relative to that already-advanced pc.
// This convention is load-bearing: opcode handlers below depend on it.
//
// If a runtime error terminates the run, pc is rewound to the address of
// the instruction that triggered it and a single diagnostic line is written
// to the configured debug stream before returning.
func (m *Machine) Run() Status {
	if m.onBegin != nil {
		m.onBegin()
	}
	if m.onEnd != nil {
		defer m.onEnd()
	}
	m.insCount = 0
	for {
		if int(m.pc) >= len(m.program) {
			return m.fail(NoProgram)
		}
		beforePC := m.pc
		instr := m.program[m.pc]
		m.pc++

		var st Status
		switch instr.Op {
		case OpADD:
			st = m.opAddSub(true)
		case OpSUB:
			st = m.opAddSub(false)
		case OpAND:
			st = m.opAndOr(int(instr.Rep), true)
		case OpOR:
			st = m.opAndOr(int(instr.Rep), false)
		case OpEQ:
			st = m.opEQ(int(instr.Rep))
		case OpLT:
			st = m.opLtGt(true)
		case OpGT:
			st = m.opLtGt(false)
		case OpNOT:
			st = m.opNot()
		case OpDUP:
			st = m.opDup(int(instr.Rep))
		case OpPOP:
			st = m.opPop(int(instr.Rep))
		case OpROLL:
			st = m.opRoll(int(instr.Rep))
		case OpPUSHB:
			st = m.opPushB(instr.Lit)
		case OpPUSHN:
			st = m.opPushN(instr.Lit)
		case OpPUSHS:
			st = m.opPushS(instr.Lit)
		case OpCALL:
			st = m.opCall(instr.Addr, beforePC)
		case OpJMPIF:
			st = m.opJmpif(instr.Addr)
		case OpRETURN:
			st = m.opReturn()
		case OpHALT:
			st = m.opHalt()
		case OpINPUT:
			st = m.opInput(int(instr.Rep))
		case OpREWIND:
			st = m.opRewind(int(instr.Rep))
		case OpOUTPUT:
			st = m.opOutput()
		case OpFLUSH:
			st = m.opFlush()
		default:
			st = InvalidOpcode
		}
		m.insCount++

		if st == ok {
			continue
		}
		if st.Halted() {
			return st
		}
		m.pc = beforePC
		return m.fail(st)
	}
}

func (m *Machine) fail(st Status) Status {
	fmt.Fprintf(m.debug, "program counter %d: %s\n", m.pc, st)
	return st
}

// -- arithmetic --------------------------------------------------------

func (m *Machine) opAddSub(add bool) Status {
	y, st := m.stack.argPop()
	if st != ok {
		return st
	}
	x, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if x.Kind != KindNumber || y.Kind != KindNumber {
		return InvalidArgument
	}
	if add {
		if y.Num > math.MaxUint32-x.Num {
			return OutOfBounds
		}
		return m.stack.argPush(Number(x.Num + y.Num))
	}
	if x.Num < y.Num {
		return OutOfBounds
	}
	return m.stack.argPush(Number(x.Num - y.Num))
}

// -- logic ---------------------------------------------------------------

func (m *Machine) opAndOr(n int, and bool) Status {
	if n < 2 {
		return InvalidLiteral
	}
	result := and
	for i := 0; i < n; i++ {
		v, st := m.stack.argPop()
		if st != ok {
			return st
		}
		if v.Kind != KindBool {
			return InvalidArgument
		}
		if and {
			result = result && v.Bool
		} else {
			result = result || v.Bool
		}
	}
	return m.stack.argPush(Bool(result))
}

func (m *Machine) opEQ(n int) Status {
	if n < 2 {
		return InvalidLiteral
	}
	var first uint32
	equal := true
	for i := 0; i < n; i++ {
		v, st := m.stack.argPop()
		if st != ok {
			return st
		}
		if v.Kind != KindNumber {
			return InvalidArgument
		}
		if i == 0 {
			first = v.Num
		} else if v.Num != first {
			equal = false
		}
	}
	return m.stack.argPush(Bool(equal))
}

func (m *Machine) opLtGt(lt bool) Status {
	y, st := m.stack.argPop()
	if st != ok {
		return st
	}
	x, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if x.Kind != KindNumber || y.Kind != KindNumber {
		return InvalidArgument
	}
	if lt {
		return m.stack.argPush(Bool(x.Num < y.Num))
	}
	return m.stack.argPush(Bool(x.Num > y.Num))
}

func (m *Machine) opNot() Status {
	v, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if v.Kind != KindBool {
		return InvalidArgument
	}
	return m.stack.argPush(Bool(!v.Bool))
}

// -- stack -----------------------------------------------------------------

func (m *Machine) opDup(n int) Status {
	if n < 1 {
		return InvalidLiteral
	}
	return m.stack.argDup(n)
}

func (m *Machine) opPop(n int) Status {
	if n < 1 {
		return InvalidLiteral
	}
	for i := 0; i < n; i++ {
		if _, st := m.stack.argPop(); st != ok {
			return st
		}
	}
	return ok
}

func (m *Machine) opRoll(n int) Status {
	if n < 2 {
		return InvalidLiteral
	}
	return m.stack.argRoll(n)
}

func (m *Machine) opPushB(lit Value) Status {
	if lit.Kind != KindBool {
		return InvalidLiteral
	}
	return m.stack.argPush(lit)
}

func (m *Machine) opPushN(lit Value) Status {
	if lit.Kind != KindNumber {
		return InvalidLiteral
	}
	return m.stack.argPush(lit)
}

func (m *Machine) opPushS(lit Value) Status {
	if lit.Kind != KindStringRef {
		return InvalidLiteral
	}
	return m.stack.argPush(lit)
}

// -- control -----------------------------------------------------------------

// opCall requires t to strictly exceed the CALL instruction's own address
// (beforePC); this is the forward-only guarantee the termination argument
// relies on. The pushed return address is the already pre-incremented pc.
func (m *Machine) opCall(t, beforePC uint16) Status {
	if t <= beforePC {
		return NoLoops
	}
	if st := m.stack.ctlPush(ReturnAddress(m.pc)); st != ok {
		return st
	}
	m.pc = t
	return ok
}

// opJmpif treats t as a forward offset from the already pre-incremented pc.
// t < 2 is InvalidLiteral: offset 2 is the smallest that still advances pc
// by at least one full instruction beyond the jump, so this floor is what
// makes JMPIF forward-only by construction, with no separate address check.
func (m *Machine) opJmpif(t uint16) Status {
	if t < 2 {
		return InvalidLiteral
	}
	v, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if v.Kind != KindBool {
		return InvalidArgument
	}
	if !v.Bool {
		return ok
	}
	if int(t) > (math.MaxUint16 - int(m.pc)) {
		return NoProgram
	}
	m.pc = m.pc + t - 1
	return ok
}

func (m *Machine) opReturn() Status {
	v, st := m.stack.ctlPop()
	if st != ok {
		return st
	}
	m.pc = v.Ref
	return ok
}

func (m *Machine) opHalt() Status {
	v, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if v.Kind != KindBool {
		return InvalidArgument
	}
	if v.Bool {
		return HaltTrue
	}
	return HaltFalse
}

// -- I/O -----------------------------------------------------------------

func (m *Machine) opInput(n int) Status {
	v, st := m.in.read(n)
	if st != ok {
		return st
	}
	return m.stack.argPush(Number(v))
}

func (m *Machine) opRewind(n int) Status {
	return m.in.rewind(n)
}

func (m *Machine) opOutput() Status {
	v, st := m.stack.argPop()
	if st != ok {
		return st
	}
	switch v.Kind {
	case KindBool:
		return m.out.appendBool(v.Bool)
	case KindNumber:
		return m.out.appendNumber(v.Num)
	case KindStringRef:
		if int(v.Ref) >= len(m.strings) {
			return InvalidLiteral
		}
		return m.out.appendString(m.strings[v.Ref])
	default:
		return InvalidArgument
	}
}

func (m *Machine) opFlush() Status {
	idv, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if idv.Kind != KindNumber {
		return InvalidArgument
	}
	typev, st := m.stack.argPop()
	if st != ok {
		return st
	}
	if typev.Kind != KindNumber {
		return InvalidArgument
	}
	m.emit(EventType(typev.Num), uint16(idv.Num), m.out.bytes())
	m.out.reset()
	return ok
}
