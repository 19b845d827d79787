// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path(s)",
	Short: "check that assembly files parse cleanly.",
	Long: `Parse the assembly files identified by the given paths, reporting any
	 diagnostics without generating documentation.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		filenames, err := FindSourceFiles(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		//
		files, diagnostics := ParseAll(filenames)
		//
		for _, d := range diagnostics {
			d.Report()
		}
		//
		if len(diagnostics) > 0 {
			os.Exit(1)
		}
		//
		fmt.Printf("%d file(s) ok\n", len(files))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
