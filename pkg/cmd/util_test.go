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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, text string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	//
	return path
}

func TestFindSourceFiles_00(t *testing.T) {
	dir := t.TempDir()
	//
	a := writeTempFile(t, dir, "a.asm", "")
	b := writeTempFile(t, dir, "sub/b.nasm", "")
	writeTempFile(t, dir, "readme.txt", "")
	//
	found, err := FindSourceFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, found)
}

func TestFindSourceFiles_01(t *testing.T) {
	// files given directly are taken as-is; non-assembly files are skipped
	dir := t.TempDir()
	//
	a := writeTempFile(t, dir, "a.asm", "")
	other := writeTempFile(t, dir, "notes.md", "")
	//
	found, err := FindSourceFiles([]string{other, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, found)
}

func TestFindSourceFiles_02(t *testing.T) {
	_, err := FindSourceFiles([]string{"no/such/path"})
	assert.Error(t, err)
}

func TestParseAll_00(t *testing.T) {
	dir := t.TempDir()
	//
	good := writeTempFile(t, dir, "good.asm", "section .text\nstart:\nret\n")
	bad := writeTempFile(t, dir, "bad.asm", "section .bogus\n")
	//
	files, diagnostics := ParseAll([]string{good, bad})
	//
	require.Len(t, files, 1)
	assert.NotNil(t, files[good])
	//
	require.Len(t, diagnostics, 1)
	assert.Equal(t, bad, diagnostics[0].Srcfile.Filename())
	assert.Error(t, diagnostics[0].Err)
}

func TestDocFilename_00(t *testing.T) {
	assert.Equal(t, "hello.md", docFilename("src/hello.asm"))
	assert.Equal(t, "util.md", docFilename("util.nasm"))
}
