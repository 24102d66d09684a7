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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualStack_argPushPop(t *testing.T) {
	s := newDualStack(4)
	require.Equal(t, ok, s.argPush(Number(1)))
	require.Equal(t, ok, s.argPush(Number(2)))
	assert.Equal(t, 2, s.argDepth())

	v, st := s.argPop()
	require.Equal(t, ok, st)
	assert.Equal(t, Number(2), v)
	assert.Equal(t, 1, s.argDepth())
}

func TestDualStack_argPopUnderflow(t *testing.T) {
	s := newDualStack(4)
	_, st := s.argPop()
	assert.Equal(t, OutOfBounds, st)
}

func TestDualStack_stackTypePurity(t *testing.T) {
	s := newDualStack(4)
	assert.Equal(t, InterpreterBug, s.argPush(ReturnAddress(1)))
	assert.Equal(t, InterpreterBug, s.ctlPush(Number(1)))
	assert.Equal(t, InterpreterBug, s.ctlPush(Bool(true)))
	assert.Equal(t, InterpreterBug, s.ctlPush(StringRef(1)))
}

func TestDualStack_combinedCapacity(t *testing.T) {
	s := newDualStack(2)
	require.Equal(t, ok, s.argPush(Number(1)))
	require.Equal(t, ok, s.ctlPush(ReturnAddress(1)))
	// capacity exhausted: one more of either kind must fail OutOfBounds.
	assert.Equal(t, OutOfBounds, s.argPush(Number(2)))
	assert.Equal(t, OutOfBounds, s.ctlPush(ReturnAddress(2)))
}

func TestDualStack_argDup(t *testing.T) {
	s := newDualStack(8)
	require.Equal(t, ok, s.argPush(Number(1)))
	require.Equal(t, ok, s.argPush(Number(2)))
	require.Equal(t, ok, s.argDup(2))
	assert.Equal(t, 4, s.argDepth())
	assert.Equal(t, Number(2), s.argPeek(0))
	assert.Equal(t, Number(1), s.argPeek(1))
	assert.Equal(t, Number(2), s.argPeek(2))
	assert.Equal(t, Number(1), s.argPeek(3))
}

func TestDualStack_argDupInsufficientDepth(t *testing.T) {
	s := newDualStack(8)
	require.Equal(t, ok, s.argPush(Number(1)))
	assert.Equal(t, OutOfBounds, s.argDup(2))
}

func TestDualStack_argDupCapacity(t *testing.T) {
	s := newDualStack(3)
	require.Equal(t, ok, s.argPush(Number(1)))
	require.Equal(t, ok, s.argPush(Number(2)))
	// depth 2, n=2: would need 4 slots total, only 3 available.
	assert.Equal(t, OutOfBounds, s.argDup(2))
}

func TestDualStack_argRoll(t *testing.T) {
	s := newDualStack(8)
	require.Equal(t, ok, s.argPush(Number(1)))
	require.Equal(t, ok, s.argPush(Number(2)))
	require.Equal(t, ok, s.argPush(Number(3)))
	require.Equal(t, ok, s.argRoll(3))
	// q1 q2 q3 -> q3 q1 q2, so from bottom of the window: 3 1 2.
	assert.Equal(t, Number(2), s.argPeek(0))
	assert.Equal(t, Number(1), s.argPeek(1))
	assert.Equal(t, Number(3), s.argPeek(2))
}

func TestDualStack_argRollInsufficientDepth(t *testing.T) {
	s := newDualStack(8)
	require.Equal(t, ok, s.argPush(Number(1)))
	assert.Equal(t, OutOfBounds, s.argRoll(2))
}

func TestDualStack_controlStackNoShortcuts(t *testing.T) {
	// the control stack exposes only push/pop; dup/roll simply do not exist
	// for it at the API level, which is the "deliberate guarantee" from the
	// specification that return addresses cannot be duplicated or reordered.
	s := newDualStack(4)
	require.Equal(t, ok, s.ctlPush(ReturnAddress(5)))
	v, st := s.ctlPop()
	require.Equal(t, ok, st)
	assert.Equal(t, ReturnAddress(5), v)
}

func TestDualStack_ctlPopUnderflow(t *testing.T) {
	s := newDualStack(4)
	_, st := s.ctlPop()
	assert.Equal(t, OutOfBounds, st)
}
