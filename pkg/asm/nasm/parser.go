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

// Package nasm implements the NASM dialect front end: a token grammar plus a
// recursive-descent parser which turns raw assembly text into a file model,
// producing rule-trace-annotated diagnostics on malformed input.
package nasm

import (
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-asmdoc/pkg/asm"
	"github.com/consensys/go-asmdoc/pkg/util/source"
	"github.com/consensys/go-asmdoc/pkg/util/source/lex"
)

// Syntax is the NASM front end, implementing the asm.Syntax contract.
type Syntax struct{}

// Name implements the asm.Syntax interface.
func (p Syntax) Name() string {
	return "nasm"
}

// Parse implements the asm.Syntax interface.  Parsing is all-or-nothing: the
// first failure aborts and no partial file model is returned.
func (p Syntax) Parse(srcfile *source.File) (*asm.File, error) {
	file, err := Parse(srcfile)
	if err != nil {
		return nil, err
	}
	//
	return file, nil
}

// Parse a given source file into a file model, or fail with a structured
// parse error.
func Parse(srcfile *source.File) (*asm.File, *ParseError) {
	tokens, err := Lex(srcfile)
	if err != nil {
		return nil, err
	}
	//
	parser := &parser{
		srcfile: srcfile,
		tokens:  tokens,
		file:    asm.NewFile(),
		section: asm.Text,
	}
	//
	return parser.parse()
}

// parser consumes the token stream produced by Lex, applying one grammar rule
// per top-level construct and mutating a file model as it goes.  The trace
// field holds the stack of rule invocations currently active, which is
// snapshotted into any error produced.
type parser struct {
	srcfile *source.File
	// Token stream, terminated by an END_OF sentinel.
	tokens []lex.Token
	// Position within the tokens
	index int
	// File model under construction
	file *asm.File
	// Section currently in effect for labels and macro calls
	section asm.SectionKind
	// Stack of active rule invocations
	trace []Frame
}

func (p *parser) parse() (*asm.File, *ParseError) {
	if !p.isEOF() {
		p.trace = append(p.trace, Frame{"parse", p.location(p.current())})
	}
	//
	p.skip()
	//
	for !p.isEOF() {
		var err *ParseError
		// Route on the current token kind, with one token of lookahead to
		// tell labels apart from other symbol uses.
		switch tok := p.current(); tok.Kind {
		case KEYWORD_BITS:
			err = p.ruleBits()
		case KEYWORD_SECTION:
			err = p.ruleSection()
		case SYMBOL:
			if p.peekIs(COLON) {
				err = p.ruleLabel()
			} else {
				err = p.failure(InvalidSyntax)
			}
		case MNEMONIC:
			err = p.ruleMnemonic()
		case KEYWORD_GLOBAL:
			err = p.ruleGlobal()
		case KEYWORD_EXTERN:
			err = p.ruleExtern()
		case KEYWORD_MACRO:
			err = p.ruleMacroDefinition()
		case MACRO_CALL:
			err = p.ruleMacroCall()
		case COMMENT:
			// TODO: attach comments to the items they document.
			p.advance()
		case KEYWORD_INCLUDE:
			err = p.ruleInclude()
		case KEYWORD_DEFINE:
			err = p.ruleDefine()
		default:
			err = p.failure(InvalidSyntax)
		}
		//
		if err != nil {
			return nil, err
		}
		//
		p.skip()
	}
	//
	return p.file, nil
}

// ============================================================================
// Grammar rules
// ============================================================================

func (p *parser) ruleBits() *ParseError {
	if err := p.begin("bits"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_BITS); err != nil {
		return err
	}
	//
	tok, err := p.expect(NUMBER)
	if err != nil {
		return err
	}
	//
	bits, perr := strconv.ParseUint(p.text(tok), 10, 64)
	if perr != nil {
		return p.failure(InvalidSyntax)
	}
	//
	p.file.Bits = uint(bits)
	p.end()
	//
	return nil
}

func (p *parser) ruleSection() *ParseError {
	if err := p.begin("section"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_SECTION); err != nil {
		return err
	}
	//
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return err
	}
	//
	switch strings.ToLower(p.text(tok)) {
	case ".text":
		p.section = asm.Text
	case ".data":
		p.section = asm.Data
	case ".rodata":
		p.section = asm.ReadOnlyData
	case ".bss":
		p.section = asm.BSS
	default:
		return p.failure(InvalidSyntax)
	}
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.end()
	//
	return nil
}

func (p *parser) ruleLabel() *ParseError {
	if err := p.begin("label"); err != nil {
		return err
	}
	//
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return err
	}
	//
	if _, err := p.expect(COLON); err != nil {
		return err
	}
	// NOTE: no trailing newline required, since an instruction may follow a
	// label on the same line.
	p.file.Append(p.section, asm.Label{Name: p.text(tok)})
	p.end()
	//
	return nil
}

func (p *parser) ruleMnemonic() *ParseError {
	if err := p.begin("mnemonic"); err != nil {
		return err
	}
	//
	if _, err := p.expect(MNEMONIC); err != nil {
		return err
	}
	// Operands are deliberately opaque.
	p.discardToNewline()
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.end()
	//
	return nil
}

func (p *parser) ruleGlobal() *ParseError {
	if err := p.begin("global"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_GLOBAL); err != nil {
		return err
	}
	//
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return err
	}
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.file.Globals[p.text(tok)] = true
	p.end()
	//
	return nil
}

func (p *parser) ruleExtern() *ParseError {
	if err := p.begin("extern"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_EXTERN); err != nil {
		return err
	}
	//
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return err
	}
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.file.Externs = append(p.file.Externs, p.text(tok))
	p.end()
	//
	return nil
}

func (p *parser) ruleInclude() *ParseError {
	if err := p.begin("include"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_INCLUDE); err != nil {
		return err
	}
	//
	tok, err := p.expect(STRING)
	if err != nil {
		return err
	}
	// Strip surrounding quotes
	path := p.text(tok)
	path = path[1 : len(path)-1]
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.file.Includes = append(p.file.Includes, path)
	p.end()
	//
	return nil
}

func (p *parser) ruleDefine() *ParseError {
	if err := p.begin("define"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_DEFINE); err != nil {
		return err
	}
	//
	tok, err := p.expect(SYMBOL)
	if err != nil {
		return err
	}
	// The defined value (if any) is not modelled.
	p.discardToNewline()
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.file.Defines = append(p.file.Defines, p.text(tok))
	p.end()
	//
	return nil
}

func (p *parser) ruleMacroDefinition() *ParseError {
	if err := p.begin("macro_definition"); err != nil {
		return err
	}
	//
	if _, err := p.expect(KEYWORD_MACRO); err != nil {
		return err
	}
	//
	nameTok, err := p.expect(MACRO_CALL)
	if err != nil {
		return err
	}
	//
	countTok, err := p.expect(NUMBER)
	if err != nil {
		return err
	}
	//
	count, perr := strconv.ParseUint(p.text(countTok), 10, 64)
	if perr != nil {
		return p.failure(InvalidSyntax)
	}
	// The body is not structurally parsed.
	for !p.isEOF() && p.current().Kind != KEYWORD_ENDMACRO {
		p.advance()
	}
	//
	if _, err := p.expect(KEYWORD_ENDMACRO); err != nil {
		return err
	}
	//
	p.file.Macros = append(p.file.Macros, asm.Macro{
		Name:     macroName(p.text(nameTok)),
		ArgCount: uint(count),
	})
	//
	p.end()
	//
	return nil
}

func (p *parser) ruleMacroCall() *ParseError {
	if err := p.begin("macro_call"); err != nil {
		return err
	}
	//
	tok, err := p.expect(MACRO_CALL)
	if err != nil {
		return err
	}
	// Arguments are not decoded; retain the raw token run instead.
	tail := p.discardToNewline()
	//
	if _, err := p.expect(NEWLINE); err != nil {
		return err
	}
	//
	p.file.Append(p.section, asm.MacroCall{
		Name: macroName(p.text(tok)),
		Tail: tail,
	})
	//
	p.end()
	//
	return nil
}

// ============================================================================
// Parser machinery
// ============================================================================

// begin enters a named grammar rule, pushing it onto the trace.  Entering a
// rule at the end of input is itself a failure.
func (p *parser) begin(rule string) *ParseError {
	if p.isEOF() {
		return p.failure(UnexpectedEOF)
	}
	//
	p.trace = append(p.trace, Frame{rule, p.location(p.current())})
	//
	return nil
}

// end exits the current grammar rule after a successful application.
func (p *parser) end() {
	p.trace = p.trace[:len(p.trace)-1]
}

// expect consumes the current token provided it has the expected kind, and
// fails otherwise.
func (p *parser) expect(expected uint) (lex.Token, *ParseError) {
	if p.isEOF() {
		err := p.failure(UnexpectedToken)
		err.Expected = expected
		//
		return lex.Token{}, err
	}
	//
	tok := p.current()
	//
	if tok.Kind != expected {
		err := p.failure(UnexpectedToken)
		err.Expected = expected
		err.Received = &ReceivedToken{tok.Kind, p.text(tok)}
		//
		return lex.Token{}, err
	}
	//
	p.advance()
	//
	return tok, nil
}

// failure constructs an error of a given kind, snapshotting the stack of
// active rules together with the position at which the failure occurred.
func (p *parser) failure(kind ErrorKind) *ParseError {
	var (
		trace = slices.Clone(p.trace)
		span  = p.current().Span
	)
	//
	return &ParseError{Kind: kind, Trace: trace, Span: span}
}

func (p *parser) isEOF() bool {
	return p.current().Kind == END_OF
}

// current returns the token at the parsing position.  The END_OF sentinel
// guarantees there always is one, since advance never moves past it.
func (p *parser) current() lex.Token {
	return p.tokens[p.index]
}

func (p *parser) advance() {
	if p.index < len(p.tokens) && !p.isEOF() {
		p.index++
	}
}

// peekIs checks the kind of the token after the current one.
func (p *parser) peekIs(kind uint) bool {
	return p.index+1 < len(p.tokens) && p.tokens[p.index+1].Kind == kind
}

// skip passes over any run of newlines separating top-level constructs.
func (p *parser) skip() {
	for p.current().Kind == NEWLINE {
		p.advance()
	}
}

// discardToNewline advances to (but not past) the next newline, returning the
// tokens passed over.
func (p *parser) discardToNewline() []lex.Token {
	var tail []lex.Token
	//
	for !p.isEOF() && p.current().Kind != NEWLINE {
		tail = append(tail, p.current())
		p.advance()
	}
	//
	return tail
}

func (p *parser) text(tok lex.Token) string {
	return p.srcfile.Text(tok.Span)
}

func (p *parser) location(tok lex.Token) source.Location {
	return p.srcfile.Location(tok.Span.Start())
}

// macroName strips the leading call sigil from a macro reference, so that
// "$foo" defines (or invokes) the macro named "foo".
func macroName(text string) string {
	return strings.TrimPrefix(text, "$")
}
