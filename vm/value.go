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

import "fmt"

// Kind discriminates the variant held by a Value. Go has no native tagged
// union, so Kind plays that role explicitly: every producer of a Value sets
// it and every consumer switches on it before touching the payload fields.
type Kind uint8

const (
	KindBool Kind = iota
	KindNumber
	KindStringRef
	KindReturnAddress
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindStringRef:
		return "StringRef"
	case KindReturnAddress:
		return "ReturnAddress"
	default:
		return "Unknown"
	}
}

// Value is the single runtime value type the VM manipulates: a tagged union
// of Bool, Number (u32), StringRef (u16 index into the program's string
// table) and ReturnAddress (u16 instruction index). Only Kind's tag says
// which field is live; callers must check Kind before reading a payload.
type Value struct {
	Kind Kind
	Bool bool
	Num  uint32
	Ref  uint16 // StringRef index or ReturnAddress instruction index
}

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number constructs a Number value.
func Number(n uint32) Value { return Value{Kind: KindNumber, Num: n} }

// StringRef constructs a StringRef value.
func StringRef(i uint16) Value { return Value{Kind: KindStringRef, Ref: i} }

// ReturnAddress constructs a ReturnAddress value.
func ReturnAddress(pc uint16) Value { return Value{Kind: KindReturnAddress, Ref: pc} }

// IsArgument reports whether v may reside on the argument stack.
func (v Value) IsArgument() bool { return v.Kind != KindReturnAddress }

// IsControl reports whether v may reside on the control stack.
func (v Value) IsControl() bool { return v.Kind == KindReturnAddress }

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("Bool(%v)", v.Bool)
	case KindNumber:
		return fmt.Sprintf("Number(%d)", v.Num)
	case KindStringRef:
		return fmt.Sprintf("StringRef(%d)", v.Ref)
	case KindReturnAddress:
		return fmt.Sprintf("ReturnAddress(%d)", v.Ref)
	default:
		return "Value(?)"
	}
}
