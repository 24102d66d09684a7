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
	"github.com/pkg/errors"

	"github.com/vspells/grunt/vm"
)

// defaultCapacity is generous: the reference program never reclaims a
// working value once it has gone stale, so the argument stack grows
// monotonically over the whole run rather than staying flat between
// entries. A handful of temporaries per check, times four entries, times up
// to three history lookups each, comfortably fits well under this.
const defaultCapacity = 4096

// MaxMessageLen is the maximum FLUSH message length, including the
// terminating NUL, the reference program is validated against.
const MaxMessageLen = 122

// Validate runs the reference table-validator program over image, an
// encoded Table (see Table.Bytes), delivering every VALIDATION_INF and
// *_ERR event to emit in table order. It returns HaltTrue iff no entry was
// invalid (unused entries do not count against the table).
func Validate(image []byte, emit vm.EmitFunc, opts ...vm.Option) (vm.Status, error) {
	if err := vm.Validate(program, stringTable, MaxMessageLen); err != nil {
		return 0, errors.Wrap(err, "validator: reference program is malformed")
	}

	allOpts := make([]vm.Option, 0, len(opts)+1)
	allOpts = append(allOpts, vm.WithCapacity(defaultCapacity))
	allOpts = append(allOpts, opts...)

	m, err := vm.New(program, stringTable, image, emit, allOpts...)
	if err != nil {
		return 0, errors.Wrap(err, "validator: failed to create machine")
	}
	return m.Run(), nil
}
