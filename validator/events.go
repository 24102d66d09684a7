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

import "strconv"

// Event identifiers FLUSHed by the reference program. ValidationInfo is an
// EventInformation; the rest are EventError.
const (
	EventValidationInfo uint16 = 0x0008
	EventZeroErr        uint16 = 0x2001
	EventParmErr        uint16 = 0x2002
	EventPadErr         uint16 = 0x2004
	EventLbndErr        uint16 = 0x2008
	EventHbndErr        uint16 = 0x2010
	EventOrderErr       uint16 = 0x2020
	EventExtraErr       uint16 = 0x2040
	EventRedefErr       uint16 = 0x2080
)

const (
	msgPrefix            = "Table entry "
	msgParmErrSuffix     = " invalid Parm ID"
	msgParmSep           = " parm "
	msgUnusedSuffix      = "Unused not zeroed"
	msgPadSuffix         = " padding not zeroed"
	msgLbndSuffix        = " invalid low bound"
	msgHbndSuffix        = " invalid high bound"
	msgOrderSuffix       = " invalid bound order"
	msgExtraSuffix       = " follows an unused entry"
	msgRedefSuffix       = " redefines earlier entry"
	msgInfoPrefix        = "Table image entries: "
	msgInfoValidSep      = " valid, "
	msgInfoInvalidSep    = " invalid, "
	msgInfoUnusedSuffix  = " unused"
)

// flagDef names one named parameter flag and the bound range its
// bound_low/bound_high fields must fall within.
type flagDef struct {
	name  string
	value byte
	min   uint32
	max   uint32
}

var flags = []flagDef{
	{"Ape", ParmApe, Animal.Low, Animal.High},
	{"Bat", ParmBat, Animal.Low, Animal.High},
	{"Cat", ParmCat, Animal.Low, Animal.High},
	{"Dog", ParmDog, Animal.Low, Animal.High},
	{"North", ParmNorth, Direction.Low, Direction.High},
	{"South", ParmSouth, Direction.Low, Direction.High},
	{"East", ParmEast, Direction.Low, Direction.High},
	{"West", ParmWest, Direction.Low, Direction.High},
}

// renderParmErr, renderZeroErr, renderNamed and renderInfo reproduce the
// exact text the assembled program builds by OUTPUTing string and number
// fragments; tests use them to construct expected messages without
// duplicating the literal fragments by hand.
func renderParmErr(entry int) string {
	return msgPrefix + strconv.Itoa(entry) + msgParmErrSuffix
}

func renderZeroErr(entry int) string {
	return msgPrefix + strconv.Itoa(entry) + msgParmSep + msgUnusedSuffix
}

func renderNamed(entry int, name, suffix string) string {
	return msgPrefix + strconv.Itoa(entry) + msgParmSep + name + suffix
}

func renderInfo(valid, invalid, unused int) string {
	return msgInfoPrefix + strconv.Itoa(valid) + msgInfoValidSep +
		strconv.Itoa(invalid) + msgInfoInvalidSep +
		strconv.Itoa(unused) + msgInfoUnusedSuffix
}
