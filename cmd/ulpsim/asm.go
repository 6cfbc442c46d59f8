// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aamcrae/ulp/asm"
)

var asmOut string

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source.lps",
	Short: "Assemble an LP core program.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		b, err := asm.Assemble(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := os.WriteFile(asmOut, b, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bytes\n", asmOut, len(b))
		return nil
	},
}

func init() {
	asmCmd.Flags().StringVarP(&asmOut, "output", "o", "a.bin", "Output file")
}
