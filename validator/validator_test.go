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

	"github.com/vspells/grunt/vm"
)

type event struct {
	Type vm.EventType
	ID   uint16
	Msg  string
}

func collect(t *testing.T, tbl Table) ([]event, vm.Status) {
	t.Helper()
	var events []event
	emit := func(eventType vm.EventType, eventID uint16, message []byte) {
		events = append(events, event{eventType, eventID, string(message)})
	}
	status, err := Validate(tbl.Bytes(), emit)
	require.NoError(t, err)
	return events, status
}

func TestValidate_scenario1_allUnused(t *testing.T) {
	var tbl Table // every entry ParmUnused, all-zero
	events, status := collect(t, tbl)
	require.Len(t, events, 1)
	assert.Equal(t, vm.EventInformation, events[0].Type)
	assert.Equal(t, EventValidationInfo, events[0].ID)
	assert.Equal(t, renderInfo(0, 0, 4), events[0].Msg)
	assert.Equal(t, vm.HaltTrue, status)
}

func TestValidate_scenario2_twoValidNamedEntries(t *testing.T) {
	tbl := Table{
		{ParmID: ParmBat, BoundLow: 0x10, BoundHigh: 0x1000},
		{ParmID: ParmEast, BoundLow: 0x10000, BoundHigh: 0x1000000},
	}
	events, status := collect(t, tbl)
	require.Len(t, events, 1)
	assert.Equal(t, renderInfo(2, 0, 2), events[0].Msg)
	assert.Equal(t, vm.HaltTrue, status)
}

func TestValidate_scenario3_extraErrAfterValidUnused(t *testing.T) {
	tbl := Table{
		{ParmID: ParmBat, BoundLow: 0x10, BoundHigh: 0x1000},
		{},
		{},
		{ParmID: ParmApe, BoundLow: 0x10, BoundHigh: 0x1000},
	}
	events, status := collect(t, tbl)
	require.Len(t, events, 2)
	assert.Equal(t, EventExtraErr, events[0].ID)
	assert.Equal(t, renderNamed(4, "Ape", msgExtraSuffix), events[0].Msg)
	assert.Equal(t, renderInfo(1, 1, 2), events[1].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_scenario4_orderErr(t *testing.T) {
	tbl := Table{
		{ParmID: ParmSouth, BoundLow: 0x10000, BoundHigh: 0x10000},
		{ParmID: ParmApe, BoundLow: 0x1000, BoundHigh: 0x10},
	}
	events, status := collect(t, tbl)
	require.Len(t, events, 2)
	assert.Equal(t, EventOrderErr, events[0].ID)
	assert.Equal(t, renderNamed(2, "Ape", msgOrderSuffix), events[0].Msg)
	assert.Equal(t, renderInfo(1, 1, 2), events[1].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_scenario5_redefErr(t *testing.T) {
	tbl := Table{
		{ParmID: ParmWest, BoundLow: 0x808000, BoundHigh: 0x1000000},
		{ParmID: ParmWest, BoundLow: 0x10000, BoundHigh: 0x1000000},
	}
	events, status := collect(t, tbl)
	require.Len(t, events, 2)
	assert.Equal(t, EventRedefErr, events[0].ID)
	assert.Equal(t, renderNamed(2, "West", msgRedefSuffix), events[0].Msg)
	assert.Equal(t, renderInfo(1, 1, 2), events[1].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_scenario6_compositeAndRedef(t *testing.T) {
	tbl := Table{
		{ParmID: ParmDog | ParmWest, Pad: [3]byte{0xFF, 0xFF, 0xFF}, BoundLow: 0x1000001, BoundHigh: 0x0F},
		{},
		{ParmID: ParmDog, Pad: [3]byte{0xFF, 0xFF, 0xFF}, BoundLow: 0x1000001, BoundHigh: 0x0F},
		{ParmID: ParmDog, Pad: [3]byte{0xFF, 0xFF, 0xFF}, BoundLow: 0x1000001, BoundHigh: 0x0F},
	}
	events, status := collect(t, tbl)

	ids := make([]uint16, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint16{
		EventParmErr,
		EventPadErr, EventLbndErr, EventHbndErr, EventOrderErr, EventExtraErr,
		EventPadErr, EventLbndErr, EventHbndErr, EventOrderErr, EventExtraErr, EventRedefErr,
		EventValidationInfo,
	}, ids)

	assert.Equal(t, renderParmErr(1), events[0].Msg)
	assert.Equal(t, renderInfo(0, 3, 1), events[len(events)-1].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_zeroErrOnMalformedUnused(t *testing.T) {
	tbl := Table{
		{ParmID: ParmUnused, Pad: [3]byte{1, 0, 0}},
	}
	events, status := collect(t, tbl)
	require.GreaterOrEqual(t, len(events), 1)
	assert.Equal(t, EventZeroErr, events[0].ID)
	assert.Equal(t, renderZeroErr(1), events[0].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_padErrAlone(t *testing.T) {
	tbl := Table{
		{ParmID: ParmCat, Pad: [3]byte{0, 1, 0}, BoundLow: Animal.Low, BoundHigh: Animal.High},
	}
	events, _ := collect(t, tbl)
	assert.Equal(t, EventPadErr, events[0].ID)
	assert.Equal(t, renderNamed(1, "Cat", msgPadSuffix), events[0].Msg)
}

func TestValidate_lbndErrAlone(t *testing.T) {
	tbl := Table{
		{ParmID: ParmCat, BoundLow: Animal.Low - 1, BoundHigh: Animal.High},
	}
	events, _ := collect(t, tbl)
	assert.Equal(t, EventLbndErr, events[0].ID)
	assert.Equal(t, renderNamed(1, "Cat", msgLbndSuffix), events[0].Msg)
}

func TestValidate_hbndErrAlone(t *testing.T) {
	tbl := Table{
		{ParmID: ParmCat, BoundLow: Animal.Low, BoundHigh: Animal.High + 1},
	}
	events, _ := collect(t, tbl)
	assert.Equal(t, EventHbndErr, events[0].ID)
	assert.Equal(t, renderNamed(1, "Cat", msgHbndSuffix), events[0].Msg)
}

func TestValidate_parmErrOnUnrecognizedByte(t *testing.T) {
	tbl := Table{
		{ParmID: 0xAA, BoundLow: 1, BoundHigh: 2},
	}
	events, status := collect(t, tbl)
	assert.Equal(t, EventParmErr, events[0].ID)
	assert.Equal(t, renderParmErr(1), events[0].Msg)
	assert.Equal(t, vm.HaltFalse, status)
}

func TestValidate_invalidUnusedDoesNotTriggerExtraErr(t *testing.T) {
	// A malformed "unused" entry is not a valid-unused entry, so it must not
	// trigger EXTRA_ERR on the named entry that follows it.
	tbl := Table{
		{ParmID: ParmUnused, Pad: [3]byte{1, 0, 0}},
		{ParmID: ParmApe, BoundLow: Animal.Low, BoundHigh: Animal.High},
	}
	events, _ := collect(t, tbl)
	for _, e := range events {
		assert.NotEqual(t, EventExtraErr, e.ID)
	}
}

func TestValidate_redefUsesExactByteNotComposite(t *testing.T) {
	// entry 1's invalid composite APE|NORTH must not mask a later plain APE.
	tbl := Table{
		{ParmID: ParmApe | ParmNorth, BoundLow: 1, BoundHigh: 2},
		{ParmID: ParmApe, BoundLow: Animal.Low, BoundHigh: Animal.High},
	}
	events, _ := collect(t, tbl)
	for _, e := range events {
		assert.NotEqual(t, EventRedefErr, e.ID)
	}
}

func TestValidate_eventOrderWithinEntryIsTabular(t *testing.T) {
	// entry 2 trips PAD, LBND, HBND and ORDER simultaneously; they must be
	// emitted in that fixed order.
	tbl := Table{
		{ParmID: ParmDog, BoundLow: Animal.Low, BoundHigh: Animal.High},
		{ParmID: ParmDog, Pad: [3]byte{1, 0, 0}, BoundLow: Animal.High + 1, BoundHigh: Animal.Low - 1},
	}
	events, _ := collect(t, tbl)

	var ids []uint16
	for _, e := range events {
		if e.Type == vm.EventError {
			ids = append(ids, e.ID)
		}
	}
	require.Len(t, ids, 5) // entry2: PAD, LBND, HBND, ORDER, REDEF
	assert.Equal(t, []uint16{EventPadErr, EventLbndErr, EventHbndErr, EventOrderErr, EventRedefErr}, ids)
}

func TestValidate_entriesProcessedIndexAscending(t *testing.T) {
	tbl := Table{
		{ParmID: 0xAA},
		{ParmID: 0xAB},
		{ParmID: 0xAC},
		{ParmID: 0xAD},
	}
	events, _ := collect(t, tbl)
	require.Len(t, events, 5) // 4 PARM_ERR + summary
	for i := 0; i < 4; i++ {
		assert.Equal(t, renderParmErr(i+1), events[i].Msg)
	}
}
