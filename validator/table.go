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

// Package validator hosts a Grunt VM program that checks a four-entry
// parameter table against the animal/direction scheme used by the rest of
// this repository's examples, and exposes it behind a plain Go API.
package validator

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Parameter identifiers. Each table entry's parm_id byte is either Unused or
// exactly one of the eight named flags; any other byte value (including
// composites of two or more flags) is simply invalid.
const (
	ParmUnused byte = 0x00
	ParmApe    byte = 0x01
	ParmBat    byte = 0x02
	ParmCat    byte = 0x04
	ParmDog    byte = 0x08
	ParmNorth  byte = 0x10
	ParmSouth  byte = 0x20
	ParmEast   byte = 0x40
	ParmWest   byte = 0x80
)

// Animal and Direction bound the valid low/high values for, respectively,
// the animal flags (Ape, Bat, Cat, Dog) and the direction flags (North,
// South, East, West).
var (
	Animal    = BoundRange{Low: 0x00000010, High: 0x00001000}
	Direction = BoundRange{Low: 0x00010000, High: 0x01000000}
)

// BoundRange is an inclusive [Low, High] range for a parameter's bound_low
// and bound_high fields.
type BoundRange struct {
	Low  uint32
	High uint32
}

// NumEntries is the fixed number of entries in a Table.
const NumEntries = 4

// entrySize is the wire size of one Entry: parm_id (1) + pad (3) +
// bound_low (4) + bound_high (4).
const entrySize = 1 + 3 + 4 + 4

// TableSize is the wire size of a whole Table image.
const TableSize = NumEntries * entrySize

// Entry is one row of a parameter table.
type Entry struct {
	ParmID    byte
	Pad       [3]byte
	BoundLow  uint32
	BoundHigh uint32
}

// Table is the fixed four-entry parameter table the reference validator
// checks.
type Table [NumEntries]Entry

// Bytes encodes t to its wire representation: four 12-byte entries, each
// parm_id | pad[3] | bound_low (u32 LE) | bound_high (u32 LE).
func (t Table) Bytes() []byte {
	buf := make([]byte, TableSize)
	for i, e := range t {
		off := i * entrySize
		buf[off] = e.ParmID
		copy(buf[off+1:off+4], e.Pad[:])
		binary.LittleEndian.PutUint32(buf[off+4:off+8], e.BoundLow)
		binary.LittleEndian.PutUint32(buf[off+8:off+12], e.BoundHigh)
	}
	return buf
}

// DecodeTable parses a wire-format table image produced by Bytes.
func DecodeTable(b []byte) (Table, error) {
	var t Table
	if len(b) != TableSize {
		return t, errors.Errorf("table image must be %d bytes, got %d", TableSize, len(b))
	}
	for i := range t {
		off := i * entrySize
		t[i].ParmID = b[off]
		copy(t[i].Pad[:], b[off+1:off+4])
		t[i].BoundLow = binary.LittleEndian.Uint32(b[off+4 : off+8])
		t[i].BoundHigh = binary.LittleEndian.Uint32(b[off+8 : off+12])
	}
	return t, nil
}
