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
package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func format(t *testing.T, d Docs, fileMap map[string]string) string {
	text, err := Markdown{}.Format(d, fileMap)
	require.NoError(t, err)
	//
	return text
}

func TestMarkdown_00(t *testing.T) {
	assert.Equal(t, "plain", format(t, Text{Text: "plain"}, nil))
	assert.Equal(t, "`foo`", format(t, InlineCode{Code: "foo"}, nil))
	assert.Equal(t, "`BUFSZ`", format(t, Define{Name: "BUFSZ"}, nil))
}

func TestMarkdown_01(t *testing.T) {
	// argument count pluralisation
	assert.Equal(t, "`put` (1 argument)", format(t, Macro{Name: "put", ArgCount: 1}, nil))
	assert.Equal(t, "`put` (2 arguments)", format(t, Macro{Name: "put", ArgCount: 2}, nil))
	assert.Equal(t, "`put` (0 arguments)", format(t, Macro{Name: "put", ArgCount: 0}, nil))
}

func TestMarkdown_02(t *testing.T) {
	list := List{Items: []Docs{
		Define{Name: "A"},
		Define{Name: "B"},
	}}
	//
	assert.Equal(t, "- `A`\n- `B`\n", format(t, list, nil))
}

func TestMarkdown_03(t *testing.T) {
	table := Table{
		Header: []Docs{Text{Text: "Name"}, Text{Text: "Kind"}},
		Rows: [][]Docs{
			{InlineCode{Code: "start"}, Text{Text: "global"}},
			{InlineCode{Code: "loop"}, Text{Text: "private"}},
		},
	}
	//
	expected := "\n| Name | Kind |\n" +
		"| --- | --- |\n" +
		"| `start` | global |\n" +
		"| `loop` | private |\n"
	//
	assert.Equal(t, expected, format(t, table, nil))
}

func TestMarkdown_04(t *testing.T) {
	// cell lines stack with <br> separators
	cell := CellLines{Lines: []Docs{
		InlineCode{Code: "label"},
		Concat{Items: []Docs{Text{Text: "&emsp;"}, InlineCode{Code: "label.sub1"}}},
	}}
	//
	assert.Equal(t, "`label`<br>&emsp;`label.sub1`", format(t, cell, nil))
}

func TestMarkdown_05(t *testing.T) {
	fileMap := map[string]string{"lib/util.asm": "util.md"}
	//
	assert.Equal(t, "[util.asm](util.md)",
		format(t, ResolveFile{Path: "lib/util.asm"}, fileMap))
}

func TestMarkdown_06(t *testing.T) {
	// a cross-reference with no file map entry is an error
	_, err := Markdown{}.Format(ResolveFile{Path: "missing.asm"}, nil)
	//
	require.Error(t, err)
	assert.Equal(t, "no documentation location known for missing.asm", err.Error())
}

func TestMarkdown_07(t *testing.T) {
	// empty sections are elided entirely
	file := File{
		Path:    "src/hello.asm",
		Symbols: Table{Header: []Docs{Text{Text: "Symbol"}}},
		Defines: List{},
		Macros:  List{Items: []Docs{Macro{Name: "put", ArgCount: 1}}},
	}
	//
	expected := "<!-- This file was generated by go-asmdoc. -->\n" +
		"# hello.asm\n\n" +
		"## Macros\n" +
		"- `put` (1 argument)\n\n"
	//
	assert.Equal(t, expected, format(t, file, nil))
}

func TestMarkdown_08(t *testing.T) {
	file := File{
		Path: "hello.asm",
		Symbols: Table{
			Header: []Docs{Text{Text: "Visibility"}, Text{Text: "Symbol"}},
			Rows: [][]Docs{
				{Text{Text: "external"}, InlineCode{Code: "helper"}},
			},
		},
	}
	//
	expected := "<!-- This file was generated by go-asmdoc. -->\n" +
		"# hello.asm\n\n" +
		"## Symbols\n" +
		"\n| Visibility | Symbol |\n" +
		"| --- | --- |\n" +
		"| external | `helper` |\n\n"
	//
	assert.Equal(t, expected, format(t, file, nil))
}
