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
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/vspells/grunt/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0) || ch == '_' || ch == ':' || ch == '.'
}

type labelSite struct {
	pos scanner.Position
	// addr is the defined address, or -1 if only used so far.
	addr int
}

// patch records one forward reference that must be resolved once the whole
// label table is known: CALL targets are absolute instruction indices;
// JMPIF targets are forward offsets relative to the JMPIF instruction's own
// index, computed here so assembly authors never hand-compute the
// pre-increment adjustment the VM applies at run time.
type patch struct {
	pos      scanner.Position
	instr    int
	label    string
	relative bool
}

type parser struct {
	s       scanner.Scanner
	prog    vm.Program
	strs    vm.StringTable
	labels  map[string]*labelSite
	consts  map[string]uint32
	strRefs map[string]uint16
	patches []patch
	err     error
}

func newParser() *parser {
	return &parser{
		labels:  make(map[string]*labelSite),
		consts:  make(map[string]uint32),
		strRefs: make(map[string]uint16),
	}
}

func scanError(s *scanner.Scanner, msg string) error {
	pos := s.Position
	if !pos.IsValid() {
		pos = s.Pos()
	}
	return fmt.Errorf("%s: %s", pos, msg)
}

func (p *parser) fail(msg string) {
	if p.err == nil {
		p.err = scanError(&p.s, msg)
	}
}

func (p *parser) failf(format string, args ...interface{}) {
	p.fail(fmt.Sprintf(format, args...))
}

// scan returns the next significant token, transparently skipping
// parenthesized comments ("( like this )").
func (p *parser) scan() rune {
	for {
		tok := p.s.Scan()
		if tok != '(' {
			return tok
		}
		for {
			t := p.s.Scan()
			if t == scanner.EOF {
				p.fail("unterminated comment")
				return scanner.EOF
			}
			if t == ')' {
				break
			}
		}
	}
}

func (p *parser) expectIdent(context string) string {
	tok := p.scan()
	if p.err != nil {
		return ""
	}
	if tok != scanner.Ident {
		p.failf("%s: expected identifier, got %q", context, p.s.TokenText())
		return ""
	}
	return p.s.TokenText()
}

func (p *parser) expectString(context string) string {
	tok := p.scan()
	if p.err != nil {
		return ""
	}
	if tok != scanner.String {
		p.failf("%s: expected string literal, got %q", context, p.s.TokenText())
		return ""
	}
	s, err := strconv.Unquote(p.s.TokenText())
	if err != nil {
		p.failf("%s: invalid string literal: %v", context, err)
		return ""
	}
	return s
}

// expectNumber accepts an integer literal or a previously .equ-defined
// constant, wherever a repetition count or PUSHN operand is expected.
func (p *parser) expectNumber(context string) uint32 {
	tok := p.scan()
	if p.err != nil {
		return 0
	}
	text := p.s.TokenText()
	if tok == scanner.Ident {
		if v, ok := p.consts[text]; ok {
			return v
		}
		p.failf("%s: undefined constant %q", context, text)
		return 0
	}
	if tok != scanner.Int {
		p.failf("%s: expected integer, got %q", context, text)
		return 0
	}
	n, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		p.failf("%s: invalid integer %q: %v", context, text, err)
		return 0
	}
	return uint32(n)
}

func (p *parser) expectBool(context string) bool {
	text := p.expectIdent(context)
	switch strings.ToLower(text) {
	case "true":
		return true
	case "false":
		return false
	default:
		p.failf("%s: expected true or false, got %q", context, text)
		return false
	}
}

func (p *parser) useLabel(name string, instrIndex int, relative bool) {
	if _, ok := p.labels[name]; !ok {
		p.labels[name] = &labelSite{pos: p.s.Pos(), addr: -1}
	}
	p.patches = append(p.patches, patch{pos: p.s.Pos(), instr: instrIndex, label: name, relative: relative})
}

func (p *parser) defineLabel(name string) {
	if _, ok := p.consts[name]; ok {
		p.failf("label %q previously defined as a constant", name)
		return
	}
	l, ok := p.labels[name]
	if !ok {
		p.labels[name] = &labelSite{pos: p.s.Pos(), addr: len(p.prog)}
		return
	}
	if l.addr != -1 {
		p.failf("label %q redefined; first defined at %s", name, l.pos)
		return
	}
	l.addr = len(p.prog)
	l.pos = p.s.Pos()
}

func (p *parser) parseEqu() {
	name := p.expectIdent(".equ")
	if p.err != nil {
		return
	}
	if _, ok := p.labels[name]; ok {
		p.failf(".equ: %q already used as a label", name)
		return
	}
	p.consts[name] = p.expectNumber(".equ " + name)
}

func (p *parser) parseStringDirective() {
	name := p.expectIdent(".string")
	if p.err != nil {
		return
	}
	text := p.expectString(".string " + name)
	if p.err != nil {
		return
	}
	if _, ok := p.strRefs[name]; ok {
		p.failf(".string: %q already defined", name)
		return
	}
	idx := uint16(len(p.strs))
	p.strs = append(p.strs, text)
	p.strRefs[name] = idx
}

// internString interns an inline string literal used directly as a PUSHS
// operand, deduplicating against identical literals already in the table.
func (p *parser) internString(text string) uint16 {
	for i, s := range p.strs {
		if s == text {
			return uint16(i)
		}
	}
	idx := uint16(len(p.strs))
	p.strs = append(p.strs, text)
	return idx
}

func (p *parser) stringRef(context string) uint16 {
	tok := p.scan()
	if p.err != nil {
		return 0
	}
	if tok == scanner.String {
		text, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			p.failf("%s: invalid string literal: %v", context, err)
			return 0
		}
		return p.internString(text)
	}
	if tok == scanner.Ident {
		if idx, ok := p.strRefs[p.s.TokenText()]; ok {
			return idx
		}
	}
	p.failf("%s: expected string literal or .string name, got %q", context, p.s.TokenText())
	return 0
}

func (p *parser) assembleOp(op vm.Opcode) {
	instr := vm.Instruction{Op: op}
	idx := len(p.prog)
	switch op {
	case vm.OpADD, vm.OpFLUSH, vm.OpGT, vm.OpHALT, vm.OpLT, vm.OpNOT, vm.OpOUTPUT, vm.OpRETURN, vm.OpSUB:
		// no immediate
	case vm.OpAND, vm.OpDUP, vm.OpEQ, vm.OpOR, vm.OpPOP, vm.OpREWIND, vm.OpROLL, vm.OpINPUT:
		instr.Rep = uint16(p.expectNumber(op.String()))
	case vm.OpPUSHB:
		instr.Lit = vm.Bool(p.expectBool("PUSHB"))
	case vm.OpPUSHN:
		instr.Lit = vm.Number(p.expectNumber("PUSHN"))
	case vm.OpPUSHS:
		instr.Lit = vm.StringRef(p.stringRef("PUSHS"))
	case vm.OpCALL:
		p.useLabel(p.expectIdent("CALL"), idx, false)
	case vm.OpJMPIF:
		p.useLabel(p.expectIdent("JMPIF"), idx, true)
	default:
		p.failf("internal: unhandled opcode %s", op)
		return
	}
	if p.err != nil {
		return
	}
	p.prog = append(p.prog, instr)
}

func (p *parser) patch() {
	for _, pt := range p.patches {
		l := p.labels[pt.label]
		if l.addr == -1 {
			p.failf("undefined label %q (used at %s)", pt.label, pt.pos)
			return
		}
		if pt.relative {
			offset := l.addr - pt.instr
			if offset < 2 || offset > 0xFFFF {
				p.failf("JMPIF target %q at %s yields out-of-range forward offset %d", pt.label, pt.pos, offset)
				return
			}
			p.prog[pt.instr].Addr = uint16(offset)
		} else {
			if l.addr <= pt.instr {
				p.failf("CALL target %q at %s does not strictly follow its call site (no backward calls)", pt.label, pt.pos)
				return
			}
			p.prog[pt.instr].Addr = uint16(l.addr)
		}
	}
}

// Parse assembles Grunt assembly text into a Program and its accompanying
// StringTable. name is used only to identify the source in error messages.
func (p *parser) Parse(name string, text string) (vm.Program, vm.StringTable, error) {
	p.s.Init(strings.NewReader(text))
	p.s.Error = func(s *scanner.Scanner, msg string) { p.fail(msg) }
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings
	p.s.Filename = name

	for tok := p.scan(); p.err == nil && tok != scanner.EOF; tok = p.scan() {
		txt := p.s.TokenText()
		switch {
		case tok == scanner.Ident && strings.HasPrefix(txt, ":") && len(txt) > 1:
			p.defineLabel(txt[1:])
		case txt == ".equ":
			p.parseEqu()
		case txt == ".string":
			p.parseStringDirective()
		case tok == scanner.Ident:
			op, ok := vm.OpcodeByName(strings.ToUpper(txt))
			if !ok {
				p.failf("unknown mnemonic or directive %q", txt)
				break
			}
			p.assembleOp(op)
		default:
			p.failf("unexpected token %q", txt)
		}
	}
	if p.err == nil {
		p.patch()
	}
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.prog, p.strs, nil
}
