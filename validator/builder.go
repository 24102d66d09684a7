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

package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// progBuilder emits Grunt assembly text while tracking a symbolic model of
// the argument stack, so that DUP/POP counts needed to reach a value buried
// under later pushes are computed from the model rather than by hand. The
// reference program never bothers to pop working values that have gone
// stale; it only ever peeks the freshest copy of a named value, so the
// model's stack only grows. That is deliberate: removing a value from the
// middle of the VM's stack has no cheap primitive, while leaving it behind
// costs a few words of the generous capacity the validator runs with.
type progBuilder struct {
	sb     strings.Builder
	stack  []string
	labels int
}

func newProgBuilder() *progBuilder {
	return &progBuilder{}
}

func (b *progBuilder) line(format string, args ...interface{}) {
	fmt.Fprintf(&b.sb, format+"\n", args...)
}

func (b *progBuilder) push(name string) {
	b.stack = append(b.stack, name)
}

func (b *progBuilder) popN(n int) {
	b.stack = b.stack[:len(b.stack)-n]
}

// newLabelName reserves a unique label, without placing it yet.
func (b *progBuilder) newLabelName(prefix string) string {
	b.labels++
	return prefix + strconv.Itoa(b.labels)
}

func (b *progBuilder) placeLabel(name string) {
	b.line(":%s", name)
}

// depthOf returns how many elements sit above the most recently pushed
// occurrence of name (0 meaning name is already on top).
func (b *progBuilder) depthOf(name string) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i] == name {
			return len(b.stack) - 1 - i
		}
	}
	panic("validator: builder: name never pushed: " + name)
}

// peek non-destructively copies the freshest value named name to the top of
// the stack, leaving the original (and everything above it) untouched.
func (b *progBuilder) peek(name string) {
	d := b.depthOf(name)
	if d == 0 {
		b.line("DUP 1")
	} else {
		b.line("DUP %d", d+1)
		b.line("POP %d", d)
	}
	b.push(name)
}

// dupTop duplicates the current top of stack, which the caller asserts is
// already named name.
func (b *progBuilder) dupTop(name string) {
	b.line("DUP 1")
	b.push(name)
}

func (b *progBuilder) input(n int, name string) {
	b.line("INPUT %d", n)
	b.push(name)
}

func (b *progBuilder) pushn(lit int, name string) {
	b.line("PUSHN %d", lit)
	b.push(name)
}

func (b *progBuilder) pushb(v bool, name string) {
	b.line("PUSHB %t", v)
	b.push(name)
}

func (b *progBuilder) pushs(s string, name string) {
	b.line("PUSHS %q", s)
	b.push(name)
}

func (b *progBuilder) eq(n int, name string) {
	b.line("EQ %d", n)
	b.popN(n)
	b.push(name)
}

func (b *progBuilder) and(n int, name string) {
	b.line("AND %d", n)
	b.popN(n)
	b.push(name)
}

func (b *progBuilder) or(n int, name string) {
	b.line("OR %d", n)
	b.popN(n)
	b.push(name)
}

func (b *progBuilder) not(name string) {
	b.line("NOT")
	b.popN(1)
	b.push(name)
}

func (b *progBuilder) lt(name string) {
	b.line("LT")
	b.popN(2)
	b.push(name)
}

func (b *progBuilder) gt(name string) {
	b.line("GT")
	b.popN(2)
	b.push(name)
}

func (b *progBuilder) add(name string) {
	b.line("ADD")
	b.popN(2)
	b.push(name)
}

func (b *progBuilder) sub(name string) {
	b.line("SUB")
	b.popN(2)
	b.push(name)
}

// roll rotates the top n symbolic names the same way OpROLL rotates the
// argument stack: the topmost moves to the bottom of the n-window.
func (b *progBuilder) roll(n int) {
	b.line("ROLL %d", n)
	w := b.stack[len(b.stack)-n:]
	rotated := make([]string, n)
	rotated[0] = w[n-1]
	copy(rotated[1:], w[:n-1])
	copy(w, rotated)
}

func (b *progBuilder) pop(n int) {
	b.line("POP %d", n)
	b.popN(n)
}

func (b *progBuilder) output() {
	b.line("OUTPUT")
	b.popN(1)
}

func (b *progBuilder) flush() {
	b.line("FLUSH")
	b.popN(2)
}

func (b *progBuilder) rewind(n int) {
	b.line("REWIND %d", n)
}

func (b *progBuilder) jmpif(target string) {
	b.line("JMPIF %s", target)
	b.popN(1)
}

func (b *progBuilder) halt() {
	b.line("HALT")
	b.popN(1)
}

func (b *progBuilder) source() string {
	return b.sb.String()
}

// outStr and outNum OUTPUT a literal string or number fragment, consuming
// it immediately; they are building blocks for the fixed message templates.
func outStr(b *progBuilder, s string) {
	b.pushs(s, "frag")
	b.output()
}

func outNum(b *progBuilder, n int) {
	b.pushn(n, "frag")
	b.output()
}

// emitAndMerge assumes a freshly computed boolean sits on top of the
// stack. It FLUSHes the message built by emitFn if that boolean is true,
// then ORs it into the branch's running anyBad accumulator regardless.
func emitAndMerge(b *progBuilder, emitFn func()) {
	b.dupTop("bit")
	emitLabel := b.newLabelName("emit")
	skipLabel := b.newLabelName("skip")
	b.jmpif(emitLabel)
	b.pushb(true, "t")
	b.jmpif(skipLabel)
	b.placeLabel(emitLabel)
	emitFn()
	b.placeLabel(skipLabel)
	b.peek("anyBad")
	b.or(2, "anyBad")
}
