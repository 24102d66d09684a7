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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/vspells/grunt/vm"
)

// binaryMagic identifies a Grunt binary program encoding, the format
// produced by EncodeProgram and consumed by DecodeProgram. It exists for
// programs too large to keep around as embedded assembly source; grunt
// asm/disasm round-trip through it on the command line.
var binaryMagic = [4]byte{'G', 'R', 'N', 'T'}

const binaryVersion = 1

// EncodeProgram writes prog and strs to w in the Grunt binary program
// format: a small fixed-width header followed by one fixed-width record per
// instruction and one length-prefixed record per string table entry.
func EncodeProgram(prog vm.Program, strs vm.StringTable, w io.Writer) error {
	if len(prog) > 0xFFFF || len(strs) > 0xFFFF {
		return errors.New("grunt: program or string table too large to encode")
	}
	bw := bufio(w)
	if _, err := bw.Write(binaryMagic[:]); err != nil {
		return errors.Wrap(err, "writing magic")
	}
	header := struct {
		Version  uint8
		Reserved uint8
		NumInstr uint16
		NumStr   uint16
	}{binaryVersion, 0, uint16(len(prog)), uint16(len(strs))}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, ins := range prog {
		rec := struct {
			Op   uint8
			Rep  uint16
			Kind uint8
			Lit  uint32
			Addr uint16
		}{
			Op:   uint8(ins.Op),
			Rep:  ins.Rep,
			Kind: uint8(ins.Lit.Kind),
			Lit:  litWord(ins.Lit),
			Addr: ins.Addr,
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return errors.Wrap(err, "writing instruction")
		}
	}
	for _, s := range strs {
		if len(s) > 0xFFFF {
			return errors.New("grunt: string table entry too large to encode")
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(s))); err != nil {
			return errors.Wrap(err, "writing string length")
		}
		if _, err := bw.Write([]byte(s)); err != nil {
			return errors.Wrap(err, "writing string")
		}
	}
	return bw.flushErr()
}

// LooksLikeBinaryProgram reports whether data begins with the magic header
// EncodeProgram writes, so a caller holding an arbitrary file's bytes can
// decide between DecodeProgram and Assemble without duplicating the magic
// value itself.
func LooksLikeBinaryProgram(data []byte) bool {
	return len(data) >= len(binaryMagic) && bytes.Equal(data[:len(binaryMagic)], binaryMagic[:])
}

// DecodeProgram reads a Grunt binary program previously written by
// EncodeProgram.
func DecodeProgram(r io.Reader) (vm.Program, vm.StringTable, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, nil, errors.Wrap(err, "reading magic")
	}
	if magic != binaryMagic {
		return nil, nil, errors.New("grunt: not a Grunt binary program")
	}
	var header struct {
		Version  uint8
		Reserved uint8
		NumInstr uint16
		NumStr   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, nil, errors.Wrap(err, "reading header")
	}
	if header.Version != binaryVersion {
		return nil, nil, errors.Errorf("grunt: unsupported binary program version %d", header.Version)
	}

	prog := make(vm.Program, header.NumInstr)
	for i := range prog {
		var rec struct {
			Op   uint8
			Rep  uint16
			Kind uint8
			Lit  uint32
			Addr uint16
		}
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, nil, errors.Wrapf(err, "reading instruction %d", i)
		}
		prog[i] = vm.Instruction{
			Op:   vm.Opcode(rec.Op),
			Rep:  rec.Rep,
			Lit:  wordLit(vm.Kind(rec.Kind), rec.Lit),
			Addr: rec.Addr,
		}
	}

	strs := make(vm.StringTable, header.NumStr)
	for i := range strs {
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, nil, errors.Wrapf(err, "reading string %d length", i)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, nil, errors.Wrapf(err, "reading string %d", i)
		}
		strs[i] = string(buf)
	}
	return prog, strs, nil
}

// litWord packs a Value's payload into a single uint32 for the on-disk
// instruction record, regardless of which field Kind says is live.
func litWord(v vm.Value) uint32 {
	switch v.Kind {
	case vm.KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case vm.KindNumber:
		return v.Num
	case vm.KindStringRef, vm.KindReturnAddress:
		return uint32(v.Ref)
	default:
		return 0
	}
}

// wordLit is litWord's inverse, reconstructing a Value from its on-disk
// Kind tag and packed payload word.
func wordLit(kind vm.Kind, word uint32) vm.Value {
	switch kind {
	case vm.KindBool:
		return vm.Bool(word != 0)
	case vm.KindNumber:
		return vm.Number(word)
	case vm.KindStringRef:
		return vm.StringRef(uint16(word))
	case vm.KindReturnAddress:
		return vm.ReturnAddress(uint16(word))
	default:
		return vm.Value{}
	}
}

// bufWriter is the minimal buffered-writer surface EncodeProgram needs; a
// plain io.Writer works directly with binary.Write, but batching through
// bytes.Buffer first keeps a single partial write from leaving a
// half-encoded record on the wire.
type bufWriter struct {
	buf bytes.Buffer
	out io.Writer
}

func bufio(w io.Writer) *bufWriter { return &bufWriter{out: w} }

func (b *bufWriter) Write(p []byte) (int, error) { return b.buf.Write(p) }

func (b *bufWriter) flushErr() error {
	_, err := b.out.Write(b.buf.Bytes())
	return errors.Wrap(err, "flushing program")
}
