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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/consensys/go-asmdoc/pkg/asm"
	"github.com/consensys/go-asmdoc/pkg/asm/nasm"
	"github.com/consensys/go-asmdoc/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// canParse determines whether a given path identifies an assembly source file,
// based on its extension.
func canParse(path string) bool {
	switch filepath.Ext(path) {
	case ".asm", ".nasm":
		return true
	}
	//
	return false
}

// FindSourceFiles expands a set of paths into the assembly source files they
// identify.  Files are taken as given when their extension matches;
// directories are traversed recursively.  Anything else is skipped.
func FindSourceFiles(paths []string) ([]string, error) {
	var filenames []string
	//
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		//
		if !info.IsDir() {
			if canParse(path) {
				filenames = append(filenames, path)
			} else {
				log.Debugf("skipping %s (not an assembly file)", path)
			}
			//
			continue
		}
		//
		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			//
			if !d.IsDir() && canParse(entry) {
				filenames = append(filenames, entry)
			}
			//
			return nil
		})
		//
		if err != nil {
			return nil, err
		}
	}
	//
	sort.Strings(filenames)
	//
	return filenames, nil
}

// Diagnostic pairs a failed file's source with the error its parse produced,
// so the failure can be reported against the offending line.
type Diagnostic struct {
	Srcfile *source.File
	Err     error
}

// ParseAll reads and parses all given files, producing one file model per
// successful parse plus a diagnostic per failure.  Parses of distinct files
// are independent, so they proceed concurrently; one failed parse does not
// affect the others.
func ParseAll(filenames []string) (map[string]*asm.File, []Diagnostic) {
	var (
		mutex       sync.Mutex
		group       errgroup.Group
		files       = make(map[string]*asm.File)
		diagnostics []Diagnostic
	)
	//
	group.SetLimit(runtime.GOMAXPROCS(0))
	//
	for _, filename := range filenames {
		filename := filename
		group.Go(func() error {
			srcfile, err := source.ReadFile(filename)
			//
			var file *asm.File
			if err == nil {
				file, err = asm.Parse(srcfile, nasm.Syntax{})
			}
			//
			mutex.Lock()
			defer mutex.Unlock()
			//
			if err != nil {
				diagnostics = append(diagnostics, Diagnostic{srcfile, err})
			} else {
				files[filename] = file
			}
			//
			return nil
		})
	}
	// Workers never return errors; diagnostics carry the failures.
	_ = group.Wait()
	// Deterministic reporting order.
	sort.Slice(diagnostics, func(i, j int) bool {
		return diagnosticName(diagnostics[i]) < diagnosticName(diagnostics[j])
	})
	//
	return files, diagnostics
}

func diagnosticName(d Diagnostic) string {
	if d.Srcfile != nil {
		return d.Srcfile.Filename()
	}
	//
	return d.Err.Error()
}

// Report prints a diagnostic to stderr.  Parse errors are rendered with their
// full rule trace, followed by the offending source line with the failure
// span highlighted (coloured when stderr is a terminal).
func (d Diagnostic) Report() {
	var parseError *nasm.ParseError
	//
	if !errors.As(d.Err, &parseError) || d.Srcfile == nil {
		fmt.Fprintln(os.Stderr, d.Err)
		return
	}
	//
	fmt.Fprintf(os.Stderr, "%s: %s\n", d.Srcfile.Filename(), parseError)
	printSourceLine(d.Srcfile, parseError.Span)
}

// printSourceLine echoes the line enclosing a given span, underlining the
// span itself.
func printSourceLine(srcfile *source.File, span source.Span) {
	var (
		line  = srcfile.FindFirstEnclosingLine(span)
		start = span.Start() - line.Start()
		text  = line.String()
	)
	// Clamp to the enclosing line.
	start = max(0, min(start, len(text)))
	length := max(1, min(span.Length(), len(text)-start))
	//
	fmt.Fprintf(os.Stderr, "%4d | %s\n", line.Number(), strings.ReplaceAll(text, "\t", " "))
	//
	marker := strings.Repeat("^", length)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		marker = "\033[31m" + marker + "\033[0m"
	}
	//
	fmt.Fprintf(os.Stderr, "     | %s%s\n", strings.Repeat(" ", start), marker)
}
