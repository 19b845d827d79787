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
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-asmdoc/pkg/asm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] path(s)",
	Short: "dump parsed file models as TOML.",
	Long: `Parse the assembly files identified by the given paths and print their
	 structured file models to stdout as TOML, without resolving or generating
	 documentation.  Useful for inspecting what the parser extracted.`,
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
		if err := toml.NewEncoder(os.Stdout).Encode(dumpModels(files)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	},
}

// tomlFile is the serialisable view of one parsed file model.
type tomlFile struct {
	Bits     uint                `toml:"bits"`
	Includes []string            `toml:"includes,omitempty"`
	Globals  []string            `toml:"globals,omitempty"`
	Externs  []string            `toml:"externs,omitempty"`
	Defines  []string            `toml:"defines,omitempty"`
	Macros   []tomlMacro         `toml:"macros,omitempty"`
	Sections map[string][]string `toml:"sections,omitempty"`
}

type tomlMacro struct {
	Name string `toml:"name"`
	Args uint   `toml:"args"`
}

func dumpModels(files map[string]*asm.File) map[string]tomlFile {
	models := make(map[string]tomlFile, len(files))
	//
	for path, file := range files {
		models[path] = dumpModel(file)
	}
	//
	return models
}

func dumpModel(file *asm.File) tomlFile {
	var (
		globals  []string
		macros   []tomlMacro
		sections map[string][]string
	)
	//
	for name := range file.Globals {
		globals = append(globals, name)
	}
	//
	sort.Strings(globals)
	//
	for _, macro := range file.Macros {
		macros = append(macros, tomlMacro{macro.Name, macro.ArgCount})
	}
	//
	for _, kind := range asm.SectionKinds {
		items := file.Sections[kind]
		if len(items) == 0 {
			continue
		}
		//
		if sections == nil {
			sections = make(map[string][]string)
		}
		//
		for _, item := range items {
			sections[kind.String()] = append(sections[kind.String()], dumpItem(item))
		}
	}
	//
	return tomlFile{
		Bits:     file.Bits,
		Includes: file.Includes,
		Globals:  globals,
		Externs:  file.Externs,
		Defines:  file.Defines,
		Macros:   macros,
		Sections: sections,
	}
}

func dumpItem(item asm.Item) string {
	switch item := item.(type) {
	case asm.Label:
		return item.Name + ":"
	case asm.MacroCall:
		return "$" + item.Name
	}
	//
	return "???"
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
