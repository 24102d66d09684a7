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

	"github.com/vspells/grunt/asm"
	"github.com/vspells/grunt/vm"
)

const (
	eventTypeError       = int(vm.EventError)
	eventTypeInformation = int(vm.EventInformation)
)

// program and strings are assembled once, at package init, from the
// generated source in buildSource. A single reference program serves every
// call to Validate.
var (
	program     vm.Program
	stringTable vm.StringTable
)

func init() {
	src := buildSource()
	p, s, err := asm.Assemble("validator", src)
	if err != nil {
		panic(fmt.Sprintf("validator: reference program failed to assemble: %v", err))
	}
	program, stringTable = p, s
}

// buildSource generates the Grunt assembly for the reference table
// validator. It walks the four table entries in order; for each, it reads
// the parm_id byte and dispatches on it (Unused, one of the eight named
// flags, or anything else, which is always a PARM_ERR). Running valid and
// invalid counts live at the bottom of the stack for the whole program;
// unused-entry count is never tracked, only derived at the end as
// 4 - valid - invalid.
func buildSource() string {
	b := newProgBuilder()

	b.pushn(0, "V")
	b.pushn(0, "I")

	for entry := 1; entry <= NumEntries; entry++ {
		genEntry(b, entry)
	}

	genSummary(b)

	return b.source()
}

func genEntry(b *progBuilder, entry int) {
	doneLabel := b.newLabelName(fmt.Sprintf("entry%dDone", entry))

	b.input(1, "parm")

	unusedLabel := b.newLabelName(fmt.Sprintf("entry%dUnused", entry))
	b.dupTop("parm")
	b.pushn(int(ParmUnused), "lit")
	b.eq(2, "isUnused")
	b.jmpif(unusedLabel)

	flagLabels := make([]string, len(flags))
	for i, f := range flags {
		flagLabels[i] = b.newLabelName(fmt.Sprintf("entry%d%s", entry, f.name))
		b.dupTop("parm")
		b.pushn(int(f.value), "lit")
		b.eq(2, "isFlag")
		b.jmpif(flagLabels[i])
	}

	// default case: an unrecognized (or composite) parm_id is PARM_ERR.
	genParmErr(b, entry, doneLabel)

	b.placeLabel(unusedLabel)
	genUnusedBranch(b, entry, doneLabel)

	for i, f := range flags {
		b.placeLabel(flagLabels[i])
		genNamedBranch(b, entry, f, doneLabel)
	}

	b.placeLabel(doneLabel)
}

// genParmErr discards the parm byte (already known invalid) plus the
// remaining 11 bytes of the entry, reports PARM_ERR and always counts the
// entry as invalid: an unrecognized parm_id has no other possible outcome.
func genParmErr(b *progBuilder, entry int, doneLabel string) {
	b.pop(1) // parm
	for i := 0; i < 3; i++ {
		b.input(1, "junk")
		b.pop(1)
	}
	b.input(4, "junk")
	b.pop(1)
	b.input(4, "junk")
	b.pop(1)

	outStr(b, msgPrefix)
	outNum(b, entry)
	outStr(b, msgParmErrSuffix)
	b.pushn(eventTypeError, "et")
	b.pushn(int(EventParmErr), "eid")
	b.flush()

	incCounter(b, "I")
	jumpTo(b, doneLabel)
}

// genUnusedBranch reads the remaining five fields of an Unused entry and
// checks they are all zero; ZERO_ERR if not. A valid Unused entry increments
// neither counter -- it is tallied only implicitly, as 4-V-I at the end.
func genUnusedBranch(b *progBuilder, entry int, doneLabel string) {
	b.pop(1) // parm, known zero

	b.input(1, "pad0")
	b.pushn(0, "z")
	b.eq(2, "zPad0")
	b.input(1, "pad1")
	b.pushn(0, "z")
	b.eq(2, "zPad1")
	b.input(1, "pad2")
	b.pushn(0, "z")
	b.eq(2, "zPad2")
	b.input(4, "bh")
	b.pushn(0, "z")
	b.eq(2, "zBH")
	b.input(4, "bl")
	b.pushn(0, "z")
	b.eq(2, "zBL")
	b.and(5, "allZero")
	b.not("zeroBad")

	b.dupTop("zeroBad")
	emitLabel := b.newLabelName("unusedEmit")
	skipLabel := b.newLabelName("unusedSkip")
	b.jmpif(emitLabel)
	b.pushb(true, "t")
	b.jmpif(skipLabel)
	b.placeLabel(emitLabel)
	outStr(b, msgPrefix)
	outNum(b, entry)
	outStr(b, msgParmSep)
	outStr(b, msgUnusedSuffix)
	b.pushn(eventTypeError, "et")
	b.pushn(int(EventZeroErr), "eid")
	b.flush()
	b.placeLabel(skipLabel)

	// stack: [zeroBad, ...]; consume it to decide the increment.
	incLabel := b.newLabelName("unusedInc")
	doneIncLabel := b.newLabelName("unusedIncDone")
	b.jmpif(incLabel)
	b.pushb(true, "t")
	b.jmpif(doneIncLabel)
	b.placeLabel(incLabel)
	incCounter(b, "I")
	b.placeLabel(doneIncLabel)

	jumpTo(b, doneLabel)
}

// genNamedBranch checks one of the eight named parameter entries: padding,
// low/high bound, bound order and, from the second entry on, whether it
// follows an Unused entry (EXTRA_ERR) or redefines an earlier entry's
// parm_id (REDEF_ERR). Every check follows the same shape: compute a bad
// bit, emit its message if set, OR it into anyBad.
func genNamedBranch(b *progBuilder, entry int, f flagDef, doneLabel string) {
	b.pop(1) // parm, statically known to equal f.value
	b.pushb(false, "anyBad")

	// PAD_ERR: any of the three padding bytes is nonzero.
	b.input(1, "pad0")
	b.pushn(0, "z")
	b.eq(2, "zPad0")
	b.not("nzPad0")
	b.input(1, "pad1")
	b.pushn(0, "z")
	b.eq(2, "zPad1")
	b.not("nzPad1")
	b.or(2, "nz01")
	b.input(1, "pad2")
	b.pushn(0, "z")
	b.eq(2, "zPad2")
	b.not("nzPad2")
	b.or(2, "padBad")
	emitAndMerge(b, func() {
		emitNamedErr(b, entry, f.name, msgPadSuffix, EventPadErr)
	})

	// LBND_ERR / HBND_ERR: bound_low / bound_high outside [min, max].
	b.input(4, "bl")
	b.peek("bl")
	b.pushn(int(f.min), "lit")
	b.lt("blLow")
	b.peek("bl")
	b.pushn(int(f.max), "lit")
	b.gt("blHigh")
	b.or(2, "lbndBad")
	emitAndMerge(b, func() {
		emitNamedErr(b, entry, f.name, msgLbndSuffix, EventLbndErr)
	})

	b.input(4, "bh")
	b.peek("bh")
	b.pushn(int(f.min), "lit")
	b.lt("bhLow")
	b.peek("bh")
	b.pushn(int(f.max), "lit")
	b.gt("bhHigh")
	b.or(2, "hbndBad")
	emitAndMerge(b, func() {
		emitNamedErr(b, entry, f.name, msgHbndSuffix, EventHbndErr)
	})

	// ORDER_ERR: bound_low > bound_high.
	b.peek("bl")
	b.peek("bh")
	b.gt("orderBad")
	emitAndMerge(b, func() {
		emitNamedErr(b, entry, f.name, msgOrderSuffix, EventOrderErr)
	})

	// EXTRA_ERR / REDEF_ERR: compare against every earlier entry j. The
	// cursor is rewound to the start of entry j, its six fields re-read to
	// test whether it was a valid Unused entry (EXTRA_ERR) or carried the
	// same parm_id (REDEF_ERR), then the cursor is caught back up to where
	// entry i's own fields resume.
	if entry > 1 {
		b.pushb(false, "extraAcc")
		b.pushb(false, "redefAcc")
		for j := 1; j < entry; j++ {
			b.rewind(entrySize * (entry - j + 1))

			b.input(1, "parmj")
			b.dupTop("parmj")
			b.pushn(0, "z")
			b.eq(2, "isParmUnused")
			b.input(1, "pad0j")
			b.pushn(0, "z")
			b.eq(2, "isPad0Zero")
			b.input(1, "pad1j")
			b.pushn(0, "z")
			b.eq(2, "isPad1Zero")
			b.input(1, "pad2j")
			b.pushn(0, "z")
			b.eq(2, "isPad2Zero")
			b.input(4, "blj")
			b.pushn(0, "z")
			b.eq(2, "isBlZero")
			b.input(4, "bhj")
			b.pushn(0, "z")
			b.eq(2, "isBhZero")
			b.and(6, "isValidUnusedJ")
			b.peek("extraAcc")
			b.or(2, "extraAcc")

			b.peek("parmj")
			b.pushn(int(f.value), "lit")
			b.eq(2, "parmEqFlag")
			b.peek("redefAcc")
			b.or(2, "redefAcc")

			for k := 0; k < (entry-j)*3; k++ {
				b.input(4, "junk")
				b.pop(1)
			}
		}

		b.peek("extraAcc")
		emitAndMerge(b, func() {
			emitNamedErr(b, entry, f.name, msgExtraSuffix, EventExtraErr)
		})
		b.peek("redefAcc")
		emitAndMerge(b, func() {
			emitNamedErr(b, entry, f.name, msgRedefSuffix, EventRedefErr)
		})
	}

	// tally: invalid if anyBad, valid otherwise.
	b.peek("anyBad")
	b.not("isValid")
	validLabel := b.newLabelName("valid")
	endLabel := b.newLabelName("validEnd")
	b.jmpif(validLabel)
	incCounter(b, "I")
	b.pushb(true, "t")
	b.jmpif(endLabel)
	b.placeLabel(validLabel)
	incCounter(b, "V")
	b.placeLabel(endLabel)

	jumpTo(b, doneLabel)
}

func emitNamedErr(b *progBuilder, entry int, name, suffix string, eventID uint16) {
	outStr(b, msgPrefix)
	outNum(b, entry)
	outStr(b, msgParmSep)
	outStr(b, name)
	outStr(b, suffix)
	b.pushn(eventTypeError, "et")
	b.pushn(int(eventID), "eid")
	b.flush()
}

func incCounter(b *progBuilder, name string) {
	b.peek(name)
	b.pushn(1, "one")
	b.add(name)
}

func jumpTo(b *progBuilder, label string) {
	b.pushb(true, "t")
	b.jmpif(label)
}

// genSummary computes the unused count as 4-V-I, emits the single
// VALIDATION_INF summary event, and HALTs true iff no entry was invalid.
func genSummary(b *progBuilder) {
	b.peek("I")
	b.peek("V")
	b.add("used")
	b.pushn(NumEntries, "four")
	b.roll(2)
	b.sub("U")

	outStr(b, msgInfoPrefix)
	b.peek("V")
	b.output()
	outStr(b, msgInfoValidSep)
	b.peek("I")
	b.output()
	outStr(b, msgInfoInvalidSep)
	b.peek("U")
	b.output()
	outStr(b, msgInfoUnusedSuffix)
	b.pushn(eventTypeInformation, "et")
	b.pushn(int(EventValidationInfo), "eid")
	b.flush()

	b.peek("I")
	b.pushn(0, "zero")
	b.eq(2, "success")
	b.halt()
}
