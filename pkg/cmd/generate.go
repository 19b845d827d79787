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
	"path/filepath"
	"strings"

	"github.com/consensys/go-asmdoc/pkg/asm"
	"github.com/consensys/go-asmdoc/pkg/docs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] path(s)",
	Short: "generate documentation for an assembly project.",
	Long: `Parse the assembly files identified by the given paths (traversing directories
	 recursively), resolve cross-file symbol references, and write one markdown
	 document per source file into the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		outDir := GetString(cmd, "output")
		// An existing non-directory output path is a startup-time fatal.
		if info, err := os.Stat(outDir); err == nil && !info.IsDir() {
			fmt.Fprintf(os.Stderr, "output path %s is not a directory\n", outDir)
			os.Exit(2)
		}
		//
		project, ok := parseProject(args)
		if !ok {
			os.Exit(1)
		}
		//
		if err := writeDocs(project, outDir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	},
}

// parseProject discovers, parses and resolves all assembly files under the
// given paths.  All parse failures are reported before giving up.
func parseProject(paths []string) (*asm.Project, bool) {
	filenames, err := FindSourceFiles(paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, false
	}
	//
	if len(filenames) == 0 {
		log.Warn("no assembly files found")
	}
	//
	files, diagnostics := ParseAll(filenames)
	//
	for _, d := range diagnostics {
		d.Report()
	}
	//
	if len(diagnostics) > 0 {
		return nil, false
	}
	//
	return asm.NewProject(files), true
}

// writeDocs renders every file's document tree to markdown, rewriting
// cross-file references via a path map constructed up front.
func writeDocs(project *asm.Project, outDir string) error {
	var (
		backend  docs.Markdown
		fileDocs = project.GenerateDocs()
		fileMap  = make(map[string]string, len(fileDocs))
	)
	// Every referenced file needs an entry before any rendering happens.
	for _, d := range fileDocs {
		fileMap[d.Path] = docFilename(d.Path)
	}
	//
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	//
	for _, d := range fileDocs {
		text, err := backend.Format(d.Docs, fileMap)
		if err != nil {
			return err
		}
		//
		outPath := filepath.Join(outDir, fileMap[d.Path])
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return err
		}
		//
		log.Debugf("wrote %s", outPath)
	}
	//
	return nil
}

// docFilename determines the output filename documenting a given source file:
// its basename with the extension replaced.
func docFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".md"
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "docs", "output directory for generated documentation")
}
