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
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vspells/grunt/asm"
	"github.com/vspells/grunt/vm"
)

const defaultMaxMessageLen = 122

func newAsmCmd() *cobra.Command {
	var maxMessageLen int
	var outPath string
	cmd := &cobra.Command{
		Use:   "asm file.gasm",
		Short: "Assemble a Grunt source file, validate it, and optionally write a binary program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, strs, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			if err := vm.Validate(prog, strs, maxMessageLen); err != nil {
				return errors.Wrap(err, "program failed validation")
			}
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return errors.Wrapf(err, "creating %s", outPath)
				}
				defer f.Close()
				if err := asm.EncodeProgram(prog, strs, f); err != nil {
					return errors.Wrapf(err, "writing %s", outPath)
				}
			}
			cmd.Printf("ok: %d instructions, %d strings\n", len(prog), len(strs))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxMessageLen, "max-message-len", defaultMaxMessageLen, "maximum FLUSH message length, including the terminating NUL")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the assembled program in Grunt binary program encoding to this file")
	return cmd
}

// loadProgram reads path and assembles it, accepting either Grunt assembly
// source or a previously encoded Grunt binary program (EncodeProgram's
// format, identified by its magic header) so every subcommand can take
// either a .gasm or a .gprog file interchangeably.
func loadProgram(path string) (vm.Program, vm.StringTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	if asm.LooksLikeBinaryProgram(raw) {
		prog, strs, err := asm.DecodeProgram(bytes.NewReader(raw))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "decoding %s", path)
		}
		return prog, strs, nil
	}
	prog, strs, err := asm.Assemble(path, string(raw))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "assembling %s", path)
	}
	return prog, strs, nil
}
