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

// Package docs provides an abstract, backend-agnostic document tree into
// which resolved assembly projects are projected, along with backends which
// render such trees into readable text.
package docs

// Docs is a node in the abstract document tree.  Ownership flows strictly
// parent to child; nodes carry no back-references.
type Docs interface {
	// IsEmpty indicates whether this node would render no content at all,
	// allowing backends to elide empty sections.
	IsEmpty() bool
}

// File is the root node for the documentation of one source file.
type File struct {
	// Path of the documented source file.
	Path string
	// Symbol table documentation.
	Symbols Docs
	// Preprocessor define documentation.
	Defines Docs
	// Macro documentation.
	Macros Docs
}

// Paragraphs is a sequence of separated blocks.
type Paragraphs struct {
	Items []Docs
}

// List is a bulleted list of items.
type List struct {
	Items []Docs
}

// Table is a grid of cells with a header row.
type Table struct {
	Header []Docs
	Rows   [][]Docs
}

// Macro documents a macro definition by name and arity.
type Macro struct {
	Name     string
	ArgCount uint
}

// Define documents a preprocessor define by name.
type Define struct {
	Name string
}

// InlineCode is a verbatim code fragment.
type InlineCode struct {
	Code string
}

// Text is a plain text fragment.
type Text struct {
	Text string
}

// CellLines stacks several fragments as separate lines within a single table
// cell.
type CellLines struct {
	Lines []Docs
}

// ResolveFile is a cross-reference to the documentation of another source
// file.  The referenced path is resolved to its rendered location at format
// time, via the file map supplied to the backend.
type ResolveFile struct {
	Path string
}

// Concat joins fragments with no separator.
type Concat struct {
	Items []Docs
}

// IsEmpty for a file is always false, since a file renders its own heading.
func (p File) IsEmpty() bool { return false }

// IsEmpty for paragraphs holds when there are no blocks.
func (p Paragraphs) IsEmpty() bool { return len(p.Items) == 0 }

// IsEmpty for a list holds when there are no items.
func (p List) IsEmpty() bool { return len(p.Items) == 0 }

// IsEmpty for a table holds when there are no rows.
func (p Table) IsEmpty() bool { return len(p.Rows) == 0 }

// IsEmpty for a macro is always false.
func (p Macro) IsEmpty() bool { return false }

// IsEmpty for a define is always false.
func (p Define) IsEmpty() bool { return false }

// IsEmpty for inline code is always false.
func (p InlineCode) IsEmpty() bool { return false }

// IsEmpty for text is always false.
func (p Text) IsEmpty() bool { return false }

// IsEmpty for cell lines holds when there are no lines.
func (p CellLines) IsEmpty() bool { return len(p.Lines) == 0 }

// IsEmpty for a cross-reference is always false.
func (p ResolveFile) IsEmpty() bool { return false }

// IsEmpty for a concatenation holds when there are no fragments.
func (p Concat) IsEmpty() bool { return len(p.Items) == 0 }

// Backend renders document trees into text in some concrete output format.
// The file map must contain, for each file referenced by the tree, the
// intended location of that file's rendered documentation.  For example, if a
// tree references "foo.nasm" then the map must supply the path (e.g.
// "foo.md") where the documentation for "foo.nasm" will be written.
type Backend interface {
	// Format renders a given document tree, failing only when a
	// cross-reference has no entry in the file map.
	Format(d Docs, fileMap map[string]string) (string, error)
}
