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

// Visibility classifies how a symbol can be referenced across files.
type Visibility uint8

const (
	// Global symbols are defined in this file and declared visible outside it.
	Global Visibility = iota
	// Private symbols are defined in this file with no global declaration.
	Private
	// External symbols are declared as referenced here but defined elsewhere.
	External
)

func (v Visibility) String() string {
	switch v {
	case Global:
		return "global"
	case Private:
		return "private"
	case External:
		return "external"
	}
	//
	return "???"
}

// Symbol is a resolved name within one file, as computed by the project
// resolver.  The section is only meaningful for symbols defined in this file
// (i.e. globals and privates), as indicated by Defined.
type Symbol struct {
	Name       string
	Visibility Visibility
	// Section this symbol was defined in, when Defined holds.
	Section SectionKind
	// Defined indicates whether this symbol has a definition in this file.
	Defined bool
}

// SymbolTable is an insertion-ordered mapping from symbol names to symbols.
// Overwriting an existing entry updates it in place, retaining its original
// position in the order.
type SymbolTable struct {
	order   []string
	entries map[string]Symbol
}

// NewSymbolTable constructs an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]Symbol)}
}

// Insert adds a symbol, overwriting any existing symbol of the same name.
func (p *SymbolTable) Insert(symbol Symbol) {
	if _, ok := p.entries[symbol.Name]; !ok {
		p.order = append(p.order, symbol.Name)
	}
	//
	p.entries[symbol.Name] = symbol
}

// Get returns the symbol recorded under a given name, if any.
func (p *SymbolTable) Get(name string) (Symbol, bool) {
	symbol, ok := p.entries[name]
	return symbol, ok
}

// Names returns all symbol names in insertion order.
func (p *SymbolTable) Names() []string {
	return p.order
}

// Len returns the number of symbols in this table.
func (p *SymbolTable) Len() int {
	return len(p.order)
}
