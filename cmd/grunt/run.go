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
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vspells/grunt/vm"
)

func newRunCmd() *cobra.Command {
	var inputPath string
	var maxMessageLen int
	cmd := &cobra.Command{
		Use:   "run file.gasm",
		Short: "Assemble and run a Grunt program, printing every emitted event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, strs, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			var input []byte
			if inputPath != "" {
				input, err = os.ReadFile(inputPath)
				if err != nil {
					return errors.Wrapf(err, "reading %s", inputPath)
				}
			}

			out := cmd.OutOrStdout()
			emit := func(eventType vm.EventType, eventID uint16, message []byte) {
				fmt.Fprintf(out, "%s %#04x: %s\n", eventType, eventID, message)
			}

			m, err := vm.New(prog, strs, input, emit, vm.WithMaxMessageLength(maxMessageLen), vm.WithDebugStream(cmd.ErrOrStderr()))
			if err != nil {
				return errors.Wrap(err, "creating machine")
			}
			status := m.Run()
			io.WriteString(out, status.String()+"\n")
			if status.Failed() {
				return errors.Errorf("run failed: %s", status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "file supplying the program's INPUT byte stream")
	cmd.Flags().IntVar(&maxMessageLen, "max-message-len", defaultMaxMessageLen, "maximum FLUSH message length, including the terminating NUL")
	return cmd
}
