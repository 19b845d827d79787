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
	"fmt"
	"strings"

	"github.com/consensys/go-asmdoc/pkg/util/source"
)

// ErrorKind distinguishes the failure modes of lexing and parsing.
type ErrorKind uint8

const (
	// InvalidInput signals a lexical failure: no grammar rule matched at
	// some position of the input.
	InvalidInput ErrorKind = iota
	// UnexpectedEOF signals a grammar rule entered at the end of input.
	UnexpectedEOF
	// UnexpectedToken signals a token-kind mismatch against an expectation.
	UnexpectedToken
	// InvalidSyntax signals a semantically invalid value for an otherwise
	// well-typed token, e.g. an unknown section name.
	InvalidSyntax
)

// Frame records one grammar rule invocation: the rule's name paired with the
// source location at which it was entered.
type Frame struct {
	Rule     string
	Location source.Location
}

// ReceivedToken describes the actual token encountered where another was
// expected.
type ReceivedToken struct {
	Kind uint
	Text string
}

// ParseError is the terminal error produced by a failed lex or parse.  It
// carries the error kind together with a snapshot of the rule invocations
// active at the failure point, enabling messages such as
//
//	Expected Symbol, but received Newline (`\n`): parse(foo.asm:1:1) > global(foo.asm:2:1)
//
// There is no recovery: the first failure aborts parsing of the file and no
// partial file model is produced.
type ParseError struct {
	Kind ErrorKind
	// Expected token kind (UnexpectedToken only).
	Expected uint
	// Actual token encountered, or nil when the input ended instead
	// (UnexpectedToken only).
	Received *ReceivedToken
	// Rule invocations active when the failure occurred, outermost first.
	Trace []Frame
	// Position of the failure within the source.
	Span source.Span
}

func (p *ParseError) Error() string {
	var builder strings.Builder
	//
	builder.WriteString(p.message())
	//
	for i, frame := range p.Trace {
		if i == 0 {
			builder.WriteString(": ")
		} else {
			builder.WriteString(" > ")
		}
		//
		builder.WriteString(fmt.Sprintf("%s(%s)", frame.Rule, frame.Location))
	}
	//
	return builder.String()
}

func (p *ParseError) message() string {
	switch p.Kind {
	case InvalidInput:
		return "Invalid input"
	case UnexpectedEOF:
		return "Unexpected end-of-file"
	case UnexpectedToken:
		msg := fmt.Sprintf("Expected %s", KindName(p.Expected))
		//
		if p.Received != nil {
			msg = fmt.Sprintf("%s, but received %s (`%s`)", msg,
				KindName(p.Received.Kind), escape(p.Received.Text))
		}
		//
		return msg
	case InvalidSyntax:
		return "Invalid syntax"
	}
	//
	return "???"
}

// escape makes token text printable within a single-line diagnostic.
func escape(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}
