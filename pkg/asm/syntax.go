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
	"github.com/consensys/go-asmdoc/pkg/util/source"
)

// Syntax captures the contract implemented by an assembly dialect front end.
// Parsing one source file is a pure function of its text: it either yields a
// complete file model, or fails with a (dialect-specific) terminal parse
// error.  No partial model is ever produced on failure.
type Syntax interface {
	// Name returns the name of this dialect (e.g. "nasm").
	Name() string
	// Parse parses a given source file into a file model.
	Parse(srcfile *source.File) (*File, error)
}

// Parse a given source file under a given dialect front end.
func Parse(srcfile *source.File, syntax Syntax) (*File, error) {
	return syntax.Parse(srcfile)
}
