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
	"github.com/consensys/go-asmdoc/pkg/docs"
)

// FileDocs pairs a source file path with its projected document tree.
type FileDocs struct {
	Path string
	Docs docs.Docs
}

// GenerateDocs projects the resolved project into one document tree per file,
// in sorted path order.  The trees are backend-agnostic; rendering them is
// the responsibility of a docs.Backend.
func (p *Project) GenerateDocs() []FileDocs {
	generated := make([]FileDocs, 0, len(p.paths))
	//
	for _, path := range p.paths {
		file := p.files[path]
		//
		generated = append(generated, FileDocs{
			Path: path,
			Docs: docs.File{
				Path:    path,
				Symbols: p.symbolDocs(path),
				Defines: defineDocs(file),
				Macros:  macroDocs(file),
			},
		})
	}
	//
	return generated
}

// symbolDocs projects one file's symbol table into a table with one row per
// symbol: its visibility, its name stacked above any sub-label constituents,
// the section it was defined in, and (for externs resolved within the
// project) a cross-reference to the defining file.
func (p *Project) symbolDocs(path string) docs.Docs {
	var (
		table = p.symbols[path]
		rows  [][]docs.Docs
	)
	//
	for _, name := range table.Names() {
		symbol, _ := table.Get(name)
		//
		rows = append(rows, []docs.Docs{
			docs.Text{Text: symbol.Visibility.String()},
			p.symbolNameCell(symbol),
			sectionCell(symbol),
			p.definedInCell(symbol),
		})
	}
	//
	return docs.Table{
		Header: []docs.Docs{
			docs.Text{Text: "Visibility"},
			docs.Text{Text: "Symbol"},
			docs.Text{Text: "Section"},
			docs.Text{Text: "Defined in"},
		},
		Rows: rows,
	}
}

func (p *Project) symbolNameCell(symbol Symbol) docs.Docs {
	lines := []docs.Docs{docs.InlineCode{Code: symbol.Name}}
	//
	for _, constituent := range p.constituents[symbol.Name] {
		lines = append(lines, docs.Concat{Items: []docs.Docs{
			docs.Text{Text: "&emsp;"},
			docs.InlineCode{Code: constituent},
		}})
	}
	//
	return docs.CellLines{Lines: lines}
}

func sectionCell(symbol Symbol) docs.Docs {
	if !symbol.Defined {
		return docs.Text{}
	}
	//
	return docs.Text{Text: symbol.Section.String()}
}

func (p *Project) definedInCell(symbol Symbol) docs.Docs {
	if symbol.Visibility == External {
		if source, ok := p.internalExterns[symbol.Name]; ok {
			return docs.ResolveFile{Path: source}
		}
	}
	//
	return docs.Text{}
}

func defineDocs(file *File) docs.Docs {
	var items []docs.Docs
	//
	for _, name := range file.Defines {
		items = append(items, docs.Define{Name: name})
	}
	//
	return docs.List{Items: items}
}

func macroDocs(file *File) docs.Docs {
	var items []docs.Docs
	//
	for _, macro := range file.Macros {
		items = append(items, docs.Macro{Name: macro.Name, ArgCount: macro.ArgCount})
	}
	//
	return docs.List{Items: items}
}
