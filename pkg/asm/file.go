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
package asm

import (
	"github.com/consensys/go-asmdoc/pkg/util/source/lex"
)

// SectionKind identifies one of the memory sections an assembly construct can
// be placed into.
type SectionKind uint8

const (
	// Text identifies the executable code section.
	Text SectionKind = iota
	// Data identifies the initialised data section.
	Data
	// BSS identifies the uninitialised data section.
	BSS
	// ReadOnlyData identifies the read-only data section.
	ReadOnlyData
)

// SectionKinds lists all section kinds in their canonical scanning order.
var SectionKinds = []SectionKind{Text, Data, ReadOnlyData, BSS}

func (s SectionKind) String() string {
	switch s {
	case Text:
		return "text"
	case Data:
		return "data"
	case BSS:
		return "bss"
	case ReadOnlyData:
		return "read-only data"
	}
	//
	return "???"
}

// Item represents a single construct appearing within a section, either a
// label or a macro invocation.
type Item interface {
	isItem()
}

// Label is a named position within a section.  Names beginning with a dot are
// sub-labels of the nearest preceding top-level label.
type Label struct {
	Name string
}

// MacroCall is an invocation of a macro within a section.  Arguments are not
// decoded at this time; the raw token run following the call is retained so
// the call could be re-emitted verbatim.
type MacroCall struct {
	Name string
	Args []Item
	// Tail holds the undecoded tokens following the call on the same line.
	Tail []lex.Token
}

func (p Label) isItem()     {}
func (p MacroCall) isItem() {}

// Macro is a preprocessor macro definition.  Bodies are recorded as empty
// placeholders, since macro expansion is outside the scope of documentation
// extraction.
type Macro struct {
	Name     string
	ArgCount uint
	Body     []Item
}

// File is the structured representation of one parsed assembly source file,
// optimised for documentation generation.  A File is never mutated once its
// parse has completed.
type File struct {
	// Target word size, in bits.
	Bits uint
	// Paths referenced by include directives, in order of appearance.
	Includes []string
	// Names declared globally visible.
	Globals map[string]bool
	// Names declared as external references, in order of appearance.
	Externs []string
	// Macro definitions, in order of appearance.
	Macros []Macro
	// Preprocessor define names, in order of appearance.
	Defines []string
	// Items grouped by the section they were parsed under.  Ordering is
	// preserved within a section, but not across sections.
	Sections map[SectionKind][]Item
}

// NewFile constructs an empty file model with the default 64-bit word size.
func NewFile() *File {
	return &File{
		Bits:     64,
		Globals:  make(map[string]bool),
		Sections: make(map[SectionKind][]Item),
	}
}

// Append adds an item to the end of a given section.
func (p *File) Append(section SectionKind, item Item) {
	p.Sections[section] = append(p.Sections[section], item)
}

// IsGlobal checks whether a given name was declared globally visible in this
// file.
func (p *File) IsGlobal(name string) bool {
	return p.Globals[name]
}
