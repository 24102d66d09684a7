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

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vspells/grunt/validator"
	"github.com/vspells/grunt/vm"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate table.bin",
		Short: "Run the reference four-entry parameter table validator over a raw table image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}
			if len(image) != validator.TableSize {
				return errors.Errorf("%s: table image must be exactly %d bytes, got %d", args[0], validator.TableSize, len(image))
			}

			emit := func(eventType vm.EventType, eventID uint16, message []byte) {
				cmd.Printf("%s %#04x: %s\n", eventType, eventID, message)
			}

			status, err := validator.Validate(image, emit, vm.WithDebugStream(cmd.ErrOrStderr()))
			if err != nil {
				return errors.Wrap(err, "running validator")
			}
			cmd.Println(status)
			if status != vm.HaltTrue {
				return errors.Errorf("table failed validation: %s", status)
			}
			return nil
		},
	}
	return cmd
}
