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
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Project links a fixed set of parsed file models into a project-wide symbol
// table.  Resolution happens once, at construction, and is a pure function of
// the input set: it never fails, and a Project is immutable thereafter.
//
// Files are processed in sorted path order, making resolution fully
// deterministic.  When two files declare the same name global, the first
// declaration (in that order) wins and the collision is reported as a
// non-fatal warning.
type Project struct {
	// All file models, keyed by path.
	files map[string]*File
	// Sorted paths of all files.
	paths []string
	// Maps every globally declared name to its declaring file.
	globalSources map[string]string
	// Maps extern names to their defining file, for externs resolvable
	// within the project.  Unresolvable externs are simply absent.
	internalExterns map[string]string
	// Per-file symbol tables, keyed by path.
	symbols map[string]*SymbolTable
	// Maps each top-level label to its sub-labels, in encounter order.
	// Labels are assumed project-unique by convention, hence this is not
	// scoped per file.
	constituents map[string][]string
}

// NewProject resolves a given set of file models into a project.
func NewProject(files map[string]*File) *Project {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	//
	sort.Strings(paths)
	//
	p := &Project{
		files:           files,
		paths:           paths,
		globalSources:   make(map[string]string),
		internalExterns: make(map[string]string),
		symbols:         make(map[string]*SymbolTable),
		constituents:    make(map[string][]string),
	}
	//
	p.resolve()
	//
	return p
}

// Files returns the paths of all files in this project, in sorted order.
func (p *Project) Files() []string {
	return p.paths
}

// File returns the file model recorded under a given path, if any.
func (p *Project) File(path string) (*File, bool) {
	file, ok := p.files[path]
	return file, ok
}

// GlobalSource determines which file declared a given name global, if any.
func (p *Project) GlobalSource(name string) (string, bool) {
	path, ok := p.globalSources[name]
	return path, ok
}

// InternalExtern determines the file defining a given extern name, provided
// the name is defined somewhere within the project.
func (p *Project) InternalExtern(name string) (string, bool) {
	path, ok := p.internalExterns[name]
	return path, ok
}

// Symbols returns the resolved symbol table for a given file.
func (p *Project) Symbols(path string) *SymbolTable {
	return p.symbols[path]
}

// Constituents returns the sub-labels of a given top-level label, in
// encounter order.
func (p *Project) Constituents(label string) []string {
	return p.constituents[label]
}

func (p *Project) resolve() {
	// Determine the declaring file of every global name.
	for _, path := range p.paths {
		for _, name := range sortedNames(p.files[path].Globals) {
			if existing, ok := p.globalSources[name]; ok {
				log.Warnf("global %s declared in both %s and %s (keeping %s)",
					name, existing, path, existing)
				continue
			}
			//
			p.globalSources[name] = path
		}
	}
	// Link externs against project-internal definitions.  Externs with no
	// matching global are external to the project (e.g. runtime symbols)
	// and remain unresolved.
	for _, path := range p.paths {
		for _, name := range p.files[path].Externs {
			if source, ok := p.globalSources[name]; ok {
				p.internalExterns[name] = source
			}
		}
	}
	// Build per-file symbol tables.
	for _, path := range p.paths {
		p.symbols[path] = p.resolveFile(path)
	}
}

// resolveFile computes the symbol table of one file: externs first, then all
// labels in section order.  The scan threads a rolling "current top-level
// label" accumulator, under which dotted sub-labels are grouped.
func (p *Project) resolveFile(path string) *SymbolTable {
	var (
		file    = p.files[path]
		table   = NewSymbolTable()
		current = ""
	)
	//
	for _, name := range file.Externs {
		table.Insert(Symbol{Name: name, Visibility: External})
	}
	//
	for _, kind := range SectionKinds {
		for _, item := range file.Sections[kind] {
			label, ok := item.(Label)
			if !ok {
				continue
			}
			//
			if strings.HasPrefix(label.Name, ".") {
				if current == "" {
					log.Debugf("%s: sub-label %s has no owning label", path, label.Name)
					continue
				}
				// Group under the owning label, qualified by its name.
				p.constituents[current] = append(p.constituents[current], current+label.Name)
				//
				continue
			}
			//
			current = label.Name
			visibility := Private
			//
			if file.IsGlobal(label.Name) {
				visibility = Global
			}
			//
			table.Insert(Symbol{
				Name:       label.Name,
				Visibility: visibility,
				Section:    kind,
				Defined:    true,
			})
		}
	}
	//
	return table
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}
