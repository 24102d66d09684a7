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

// The grunt command line tool assembles, disassembles and runs Grunt VM
// programs, and drives the reference table validator.
//
// Usage:
//
//	grunt asm file.gasm
//	grunt disasm file.gasm
//	grunt run file.gasm [--input file]
//	grunt validate table.bin
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "grunt",
		Short:         "Assemble, run and inspect Grunt VM programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAsmCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	return root
}
