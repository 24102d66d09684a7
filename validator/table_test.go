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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_bytesRoundTrip(t *testing.T) {
	want := Table{
		{ParmID: ParmApe, BoundLow: Animal.Low, BoundHigh: Animal.High},
		{ParmID: ParmUnused},
		{ParmID: ParmNorth, BoundLow: Direction.Low, BoundHigh: Direction.High},
		{ParmID: 0xff, Pad: [3]byte{1, 2, 3}, BoundLow: 7, BoundHigh: 9},
	}

	buf := want.Bytes()
	assert.Len(t, buf, TableSize)

	got, err := DecodeTable(buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTable_bytesLayout(t *testing.T) {
	var tbl Table
	tbl[1] = Entry{ParmID: ParmBat, Pad: [3]byte{0, 0, 0}, BoundLow: 0x00000100, BoundHigh: 0x00000200}

	buf := tbl.Bytes()
	off := entrySize
	assert.Equal(t, ParmBat, buf[off])
	assert.Equal(t, []byte{0, 0, 0}, buf[off+1:off+4])
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, buf[off+4:off+8])
	assert.Equal(t, []byte{0x00, 0x02, 0x00, 0x00}, buf[off+8:off+12])
}

func TestDecodeTable_wrongLength(t *testing.T) {
	_, err := DecodeTable(make([]byte, TableSize-1))
	assert.Error(t, err)
}
