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
package nasm

import (
	"testing"

	"github.com/consensys/go-asmdoc/pkg/asm"
	"github.com/consensys/go-asmdoc/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, input string) *asm.File {
	srcfile := source.NewFile("test.asm", []byte(input))
	//
	file, err := Parse(srcfile)
	require.Nil(t, err)
	//
	return file
}

func parseError(t *testing.T, input string) *ParseError {
	srcfile := source.NewFile("test.asm", []byte(input))
	//
	file, err := Parse(srcfile)
	require.Nil(t, file)
	require.NotNil(t, err)
	//
	return err
}

func TestParser_00(t *testing.T) {
	// an empty file parses to the default model
	file := parseString(t, "")
	//
	assert.Equal(t, uint(64), file.Bits)
	assert.Empty(t, file.Includes)
	assert.Empty(t, file.Globals)
	assert.Empty(t, file.Externs)
	assert.Empty(t, file.Macros)
	assert.Empty(t, file.Defines)
	assert.Empty(t, file.Sections)
}

func TestParser_01(t *testing.T) {
	file := parseString(t, "bits 32\n")
	assert.Equal(t, uint(32), file.Bits)
}

func TestParser_02(t *testing.T) {
	// N labels in the text section appear in file order
	file := parseString(t, "section .text\nfirst:\nsecond:\nthird:\n")
	//
	assert.Equal(t, []asm.Item{
		asm.Label{Name: "first"},
		asm.Label{Name: "second"},
		asm.Label{Name: "third"},
	}, file.Sections[asm.Text])
}

func TestParser_03(t *testing.T) {
	// labels land in the section active when they were parsed
	file := parseString(t, "section .data\nmsg:\ndb \"hi\"\nsection .bss\nbuf:\n")
	//
	assert.Equal(t, []asm.Item{asm.Label{Name: "msg"}}, file.Sections[asm.Data])
	assert.Equal(t, []asm.Item{asm.Label{Name: "buf"}}, file.Sections[asm.BSS])
}

func TestParser_04(t *testing.T) {
	file := parseString(t, "global start\nextern printf\nextern exit\n")
	//
	assert.True(t, file.IsGlobal("start"))
	assert.Equal(t, []string{"printf", "exit"}, file.Externs)
}

func TestParser_05(t *testing.T) {
	file := parseString(t, "%include \"lib.asm\"\n%include 'sys.asm'\n")
	assert.Equal(t, []string{"lib.asm", "sys.asm"}, file.Includes)
}

func TestParser_06(t *testing.T) {
	// the defined value is not modelled
	file := parseString(t, "%define BUFSZ 1024 * 4\n")
	assert.Equal(t, []string{"BUFSZ"}, file.Defines)
}

func TestParser_07(t *testing.T) {
	// macro bodies are opaque: arbitrary tokens are fine
	file := parseString(t, "%macro $put 2\nmov %1, %2\nsyscall\n%endmacro\n")
	//
	require.Len(t, file.Macros, 1)
	assert.Equal(t, "put", file.Macros[0].Name)
	assert.Equal(t, uint(2), file.Macros[0].ArgCount)
	assert.Empty(t, file.Macros[0].Body)
}

func TestParser_08(t *testing.T) {
	// macro calls land in the active section with their raw tail retained
	file := parseString(t, "section .text\n$put 1, 2\n")
	//
	require.Len(t, file.Sections[asm.Text], 1)
	call, ok := file.Sections[asm.Text][0].(asm.MacroCall)
	require.True(t, ok)
	assert.Equal(t, "put", call.Name)
	assert.Empty(t, call.Args)
	assert.Len(t, call.Tail, 3)
}

func TestParser_09(t *testing.T) {
	// operands are discarded without inspection
	file := parseString(t, "section .text\nentry:\nmov rax, [r8+8]\nret\n")
	//
	assert.Equal(t, []asm.Item{asm.Label{Name: "entry"}}, file.Sections[asm.Text])
}

func TestParser_10(t *testing.T) {
	// a label may share a line with an instruction
	file := parseString(t, "section .text\nentry: ret\n")
	assert.Equal(t, []asm.Item{asm.Label{Name: "entry"}}, file.Sections[asm.Text])
}

func TestParser_11(t *testing.T) {
	// comments are skipped at top level
	file := parseString(t, "; header\nsection .text\nfoo: ; entry point\nret\n")
	assert.Equal(t, []asm.Item{asm.Label{Name: "foo"}}, file.Sections[asm.Text])
}

func TestParser_12(t *testing.T) {
	// section names are case-insensitive
	file := parseString(t, "section .RODATA\ntable:\n")
	assert.Equal(t, []asm.Item{asm.Label{Name: "table"}}, file.Sections[asm.ReadOnlyData])
}

func TestParserErr_00(t *testing.T) {
	err := parseError(t, "section .bogus\n")
	assert.Equal(t, InvalidSyntax, err.Kind)
}

func TestParserErr_01(t *testing.T) {
	err := parseError(t, "global\n")
	//
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, SYMBOL, err.Expected)
	require.NotNil(t, err.Received)
	assert.Equal(t, NEWLINE, err.Received.Kind)
	assert.Equal(t, "\n", err.Received.Text)
	//
	assert.Equal(t,
		"Expected Symbol, but received Newline (`\\n`): parse(test.asm:1:1) > global(test.asm:1:1)",
		err.Error())
}

func TestParserErr_02(t *testing.T) {
	// input ends where a symbol was expected
	err := parseError(t, "extern")
	//
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, SYMBOL, err.Expected)
	assert.Nil(t, err.Received)
}

func TestParserErr_03(t *testing.T) {
	// bits must be an unsigned integer
	err := parseError(t, "bits sixty\n")
	assert.Equal(t, UnexpectedToken, err.Kind)
	//
	err = parseError(t, "section .text\nsection 64\n")
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestParserErr_04(t *testing.T) {
	// a symbol without a colon is not a valid top-level construct
	err := parseError(t, "section .text\nfoo\n")
	assert.Equal(t, InvalidSyntax, err.Kind)
}

func TestParserErr_05(t *testing.T) {
	// unterminated macro definition
	err := parseError(t, "%macro $put 1\nmov %1, 0\n")
	//
	assert.Equal(t, UnexpectedToken, err.Kind)
	assert.Equal(t, KEYWORD_ENDMACRO, err.Expected)
	assert.Nil(t, err.Received)
}

func TestParserErr_06(t *testing.T) {
	// the trace reflects the rules active at the failure
	err := parseError(t, "global ok\nsection .text\nglobal\n")
	//
	require.Len(t, err.Trace, 2)
	assert.Equal(t, "parse", err.Trace[0].Rule)
	assert.Equal(t, source.Location{Filename: "test.asm", Line: 1, Column: 1}, err.Trace[0].Location)
	assert.Equal(t, "global", err.Trace[1].Rule)
	assert.Equal(t, source.Location{Filename: "test.asm", Line: 3, Column: 1}, err.Trace[1].Location)
}

func TestParserErr_07(t *testing.T) {
	// number at top level routes nowhere
	err := parseError(t, "123\n")
	assert.Equal(t, InvalidSyntax, err.Kind)
}
