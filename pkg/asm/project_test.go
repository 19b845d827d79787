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
package asm_test

import (
	"testing"

	"github.com/consensys/go-asmdoc/pkg/asm"
	"github.com/consensys/go-asmdoc/pkg/asm/nasm"
	"github.com/consensys/go-asmdoc/pkg/docs"
	"github.com/consensys/go-asmdoc/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFiles(t *testing.T, sources map[string]string) map[string]*asm.File {
	files := make(map[string]*asm.File)
	//
	for path, text := range sources {
		srcfile := source.NewFile(path, []byte(text))
		//
		file, err := asm.Parse(srcfile, nasm.Syntax{})
		require.NoError(t, err)
		//
		files[path] = file
	}
	//
	return files
}

func TestProject_00(t *testing.T) {
	// global in A, extern'd by B, resolves back to A
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "global start\nsection .text\nstart:\nret\n",
		"b.asm": "extern start\nsection .text\nhelper:\ncall start\nret\n",
	}))
	//
	assert.Equal(t, []string{"a.asm", "b.asm"}, project.Files())
	//
	src, ok := project.GlobalSource("start")
	assert.True(t, ok)
	assert.Equal(t, "a.asm", src)
	//
	src, ok = project.InternalExtern("start")
	assert.True(t, ok)
	assert.Equal(t, "a.asm", src)
	//
	sym, ok := project.Symbols("a.asm").Get("start")
	require.True(t, ok)
	assert.Equal(t, asm.Global, sym.Visibility)
	//
	sym, ok = project.Symbols("b.asm").Get("start")
	require.True(t, ok)
	assert.Equal(t, asm.External, sym.Visibility)
}

func TestProject_01(t *testing.T) {
	// visibility classification within one file
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "global start\nextern printf\nsection .text\nstart:\nret\nhelper:\nret\n",
	}))
	//
	table := project.Symbols("a.asm")
	require.NotNil(t, table)
	assert.Equal(t, []string{"printf", "start", "helper"}, table.Names())
	//
	sym, ok := table.Get("printf")
	require.True(t, ok)
	assert.Equal(t, asm.External, sym.Visibility)
	assert.False(t, sym.Defined)
	//
	sym, ok = table.Get("start")
	require.True(t, ok)
	assert.Equal(t, asm.Global, sym.Visibility)
	assert.Equal(t, asm.Text, sym.Section)
	assert.True(t, sym.Defined)
	//
	sym, ok = table.Get("helper")
	require.True(t, ok)
	assert.Equal(t, asm.Private, sym.Visibility)
	assert.True(t, sym.Defined)
}

func TestProject_02(t *testing.T) {
	// sub-labels group under their owning label and stay out of the table
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "section .text\nlabel:\n.sub1:\nret\n.sub2:\nret\nother:\nret\n",
	}))
	//
	table := project.Symbols("a.asm")
	assert.Equal(t, []string{"label", "other"}, table.Names())
	assert.Equal(t, []string{"label.sub1", "label.sub2"}, project.Constituents("label"))
	assert.Nil(t, project.Constituents("other"))
}

func TestProject_03(t *testing.T) {
	// externs with no matching global remain unresolved
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "extern exit\nsection .text\nstart:\ncall exit\n",
	}))
	//
	_, ok := project.InternalExtern("exit")
	assert.False(t, ok)
	//
	sym, ok := project.Symbols("a.asm").Get("exit")
	require.True(t, ok)
	assert.Equal(t, asm.External, sym.Visibility)
}

func TestProject_04(t *testing.T) {
	// labels pick up the section in effect when declared
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "section .data\nmsg:\ndb \"hi\"\nsection .bss\nbuf:\nsection .rodata\ntable:\n",
	}))
	//
	table := project.Symbols("a.asm")
	//
	sym, _ := table.Get("msg")
	assert.Equal(t, asm.Data, sym.Section)
	sym, _ = table.Get("buf")
	assert.Equal(t, asm.BSS, sym.Section)
	sym, _ = table.Get("table")
	assert.Equal(t, asm.ReadOnlyData, sym.Section)
}

func TestProject_05(t *testing.T) {
	// duplicate globals: the declaration in the first file (sorted order) wins
	project := asm.NewProject(parseFiles(t, map[string]string{
		"b.asm": "global start\nsection .text\nstart:\nret\n",
		"a.asm": "global start\nsection .text\nstart:\nret\n",
	}))
	//
	src, ok := project.GlobalSource("start")
	assert.True(t, ok)
	assert.Equal(t, "a.asm", src)
}

func TestProject_06(t *testing.T) {
	// resolution is a pure function of the input set
	sources := map[string]string{
		"a.asm": "global start\nsection .text\nstart:\n.loop:\nret\n",
		"b.asm": "extern start\nsection .text\nmain:\ncall start\nret\n",
	}
	//
	first := asm.NewProject(parseFiles(t, sources))
	second := asm.NewProject(parseFiles(t, sources))
	//
	assert.Equal(t, first.Files(), second.Files())
	assert.Equal(t, first.Constituents("start"), second.Constituents("start"))
	//
	for _, path := range first.Files() {
		assert.Equal(t, first.Symbols(path).Names(), second.Symbols(path).Names())
	}
}

func TestGenerateDocs_00(t *testing.T) {
	// project the resolved symbols all the way to rendered markdown
	project := asm.NewProject(parseFiles(t, map[string]string{
		"a.asm": "global start\nsection .text\nstart:\nret\n",
		"b.asm": "extern start\n%define RETRIES 3\n%macro $put 2\nmov %1, %2\n%endmacro\n",
	}))
	//
	generated := project.GenerateDocs()
	require.Len(t, generated, 2)
	assert.Equal(t, "a.asm", generated[0].Path)
	assert.Equal(t, "b.asm", generated[1].Path)
	//
	fileMap := map[string]string{"a.asm": "a.md", "b.asm": "b.md"}
	//
	text, err := docs.Markdown{}.Format(generated[1].Docs, fileMap)
	require.NoError(t, err)
	// the resolved extern cross-references its defining file
	assert.Contains(t, text, "| external | `start` |  | [a.asm](a.md) |")
	assert.Contains(t, text, "- `RETRIES`")
	assert.Contains(t, text, "- `put` (2 arguments)")
}

func TestSymbolTable_00(t *testing.T) {
	table := asm.NewSymbolTable()
	//
	table.Insert(asm.Symbol{Name: "a", Visibility: asm.External})
	table.Insert(asm.Symbol{Name: "b", Visibility: asm.Private, Defined: true})
	// overwrite keeps the original position
	table.Insert(asm.Symbol{Name: "a", Visibility: asm.Global, Defined: true})
	//
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"a", "b"}, table.Names())
	//
	sym, ok := table.Get("a")
	require.True(t, ok)
	assert.Equal(t, asm.Global, sym.Visibility)
}
