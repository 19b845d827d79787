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
	"slices"

	"github.com/consensys/go-asmdoc/pkg/util/source"
	"github.com/consensys/go-asmdoc/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (excluding newlines)
const WHITESPACE uint = 1

// NEWLINE signals "\n", which separates statements
const NEWLINE uint = 2

// COMMENT signals "; ... \n"
const COMMENT uint = 3

// COLON signals ":"
const COLON uint = 4

// COMMA signals ","
const COMMA uint = 5

// LBRACKET signals "["
const LBRACKET uint = 6

// RBRACKET signals "]"
const RBRACKET uint = 7

// LPAREN signals "("
const LPAREN uint = 8

// RPAREN signals ")"
const RPAREN uint = 9

// PLUS signals "+"
const PLUS uint = 10

// MINUS signals "-"
const MINUS uint = 11

// STAR signals "*"
const STAR uint = 12

// SLASH signals "/"
const SLASH uint = 13

// TILDE signals "~"
const TILDE uint = 14

// PIPE signals "|"
const PIPE uint = 15

// CARET signals "^"
const CARET uint = 16

// AMPERSAND signals "&"
const AMPERSAND uint = 17

// NUMBER signals an unsigned integer literal
const NUMBER uint = 20

// STRING signals a single- or double-quoted string literal
const STRING uint = 21

// SYMBOL signals a generic identifier, including dotted label names
const SYMBOL uint = 22

// REGISTER signals a register-like token
const REGISTER uint = 23

// MACRO_CALL signals a sigil-prefixed macro reference, e.g. "$foo"
const MACRO_CALL uint = 24

// MACRO_ARG signals a macro argument placeholder, e.g. "%1"
const MACRO_ARG uint = 25

// CURRENT_POSITION signals a bare "$"
const CURRENT_POSITION uint = 26

// KEYWORD_BITS signals the "bits" directive
const KEYWORD_BITS uint = 30

// KEYWORD_SECTION signals the "section" directive
const KEYWORD_SECTION uint = 31

// KEYWORD_GLOBAL signals the "global" directive
const KEYWORD_GLOBAL uint = 32

// KEYWORD_EXTERN signals the "extern" directive
const KEYWORD_EXTERN uint = 33

// KEYWORD_QWORD signals the "qword" size hint
const KEYWORD_QWORD uint = 34

// KEYWORD_DWORD signals the "dword" size hint
const KEYWORD_DWORD uint = 35

// KEYWORD_INCLUDE signals the "%include" directive
const KEYWORD_INCLUDE uint = 36

// KEYWORD_DEFINE signals the "%define" directive
const KEYWORD_DEFINE uint = 37

// KEYWORD_MACRO signals the "%macro" directive
const KEYWORD_MACRO uint = 38

// KEYWORD_ENDMACRO signals the "%endmacro" directive
const KEYWORD_ENDMACRO uint = 39

// MNEMONIC signals a recognised instruction mnemonic
const MNEMONIC uint = 40

// kindNames maps token kinds to the names used within diagnostics.
var kindNames = map[uint]string{
	END_OF:           "EOF",
	WHITESPACE:       "Whitespace",
	NEWLINE:          "Newline",
	COMMENT:          "Comment",
	COLON:            "Colon",
	COMMA:            "Comma",
	LBRACKET:         "LeftBracket",
	RBRACKET:         "RightBracket",
	LPAREN:           "LeftParen",
	RPAREN:           "RightParen",
	PLUS:             "Plus",
	MINUS:            "Minus",
	STAR:             "Asterisk",
	SLASH:            "Slash",
	TILDE:            "BitNot",
	PIPE:             "BitOr",
	CARET:            "BitXor",
	AMPERSAND:        "BitAnd",
	NUMBER:           "Number",
	STRING:           "String",
	SYMBOL:           "Symbol",
	REGISTER:         "Register",
	MACRO_CALL:       "MacroCall",
	MACRO_ARG:        "MacroArg",
	CURRENT_POSITION: "CurrentPosition",
	KEYWORD_BITS:     "Bits",
	KEYWORD_SECTION:  "Section",
	KEYWORD_GLOBAL:   "Global",
	KEYWORD_EXTERN:   "Extern",
	KEYWORD_QWORD:    "QWord",
	KEYWORD_DWORD:    "DWord",
	KEYWORD_INCLUDE:  "Include",
	KEYWORD_DEFINE:   "Define",
	KEYWORD_MACRO:    "Macro",
	KEYWORD_ENDMACRO: "EndMacro",
	MNEMONIC:         "Mnemonic",
}

// KindName returns the diagnostic name of a given token kind.
func KindName(kind uint) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	//
	return "???"
}

// mnemonics is the closed set of recognised instruction names.  Operands are
// never decoded, so recognising the leading mnemonic is all the grammar needs.
var mnemonics = []string{
	"mov", "add", "jmp", "push", "pop", "call", "ret", "sub", "mul", "div",
	"inc", "dec", "and", "or", "xor", "not", "shl", "shr", "cmp", "test",
	"db", "dd", "align", "equ", "lea", "jne", "je", "imul", "syscall",
	"jz", "jnz",
}

// Rule for describing whitespace.  Newlines are deliberately excluded: they
// separate statements and must survive as tokens.
var whitespace lex.Scanner[rune] = lex.Some(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\f')))

// Comments run from ';' to the end of the line.
var comment lex.Scanner[rune] = lex.SequenceNullableLast(lex.Unit(';'), lex.Until('\n'))

// Rule for describing numbers
var (
	digit  = lex.Within('0', '9')
	number = lex.Some(digit)
)

// Rules for describing symbols.  A symbol starts with a letter, underscore or
// dot, and continues with alphanumerics, underscores, dots or sigils.  Since
// the continuation class subsumes the start class, both scan from the same
// position and the combined match is the longer of the two.
var (
	symbolStart lex.Scanner[rune] = lex.Or(
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'),
		lex.Unit('_'),
		lex.Unit('.'))

	symbolRest lex.Scanner[rune] = lex.Or(
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'),
		lex.Within('0', '9'),
		lex.Unit('_'),
		lex.Unit('.'),
		lex.Unit('$'))

	symbol lex.Scanner[rune] = lex.And(symbolStart, lex.Many(symbolRest))
)

// Rule for describing macro references, e.g. "$putchar".
var macroCall lex.Scanner[rune] = lex.Sequence(
	lex.Unit('$'),
	lex.Some(lex.Or(
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'),
		lex.Within('0', '9'),
		lex.Unit('_'),
		lex.Unit('.'))))

// Rule for describing macro argument placeholders, e.g. "%1".
var macroArg lex.Scanner[rune] = lex.Sequence(lex.Unit('%'), lex.Some(digit))

// Rule for describing register-like tokens.  Bounded so that e.g. "r10d"
// falls through to the symbol rule whole.
var register lex.Scanner[rune] = lex.Bounded(
	lex.Sequence(lex.Unit('r'), lex.Some(digit)), symbolRest)

// Rule for describing strings in single or double quotes, with backslash
// escapes.
var strung lex.Scanner[rune] = lex.Or(
	lex.Quoted('"', '\\'),
	lex.Quoted('\'', '\\'))

// keyword matches a directive keyword as a whole word, so that e.g. "bitsy"
// is left for the symbol rule.
func keyword(word string) lex.Scanner[rune] {
	return lex.Bounded(lex.String(word), symbolRest)
}

// mnemonic matches any recognised instruction name as a whole word.
func mnemonic() lex.Scanner[rune] {
	scanners := make([]lex.Scanner[rune], len(mnemonics))
	for i, m := range mnemonics {
		scanners[i] = lex.String(m)
	}
	//
	return lex.Bounded(lex.Or(scanners...), symbolRest)
}

// lexing rules, ordered such that keywords and mnemonics take priority over
// generic symbols.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(strung, STRING),
	lex.Rule(keyword("%include"), KEYWORD_INCLUDE),
	lex.Rule(keyword("%define"), KEYWORD_DEFINE),
	lex.Rule(keyword("%endmacro"), KEYWORD_ENDMACRO),
	lex.Rule(keyword("%macro"), KEYWORD_MACRO),
	lex.Rule(macroArg, MACRO_ARG),
	lex.Rule(keyword("bits"), KEYWORD_BITS),
	lex.Rule(keyword("section"), KEYWORD_SECTION),
	lex.Rule(keyword("global"), KEYWORD_GLOBAL),
	lex.Rule(keyword("extern"), KEYWORD_EXTERN),
	lex.Rule(keyword("qword"), KEYWORD_QWORD),
	lex.Rule(keyword("dword"), KEYWORD_DWORD),
	lex.Rule(mnemonic(), MNEMONIC),
	lex.Rule(register, REGISTER),
	lex.Rule(macroCall, MACRO_CALL),
	lex.Rule(lex.Unit('$'), CURRENT_POSITION),
	lex.Rule(symbol, SYMBOL),
	lex.Rule(number, NUMBER),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('['), LBRACKET),
	lex.Rule(lex.Unit(']'), RBRACKET),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Unit('+'), PLUS),
	lex.Rule(lex.Unit('-'), MINUS),
	lex.Rule(lex.Unit('*'), STAR),
	lex.Rule(lex.Unit('/'), SLASH),
	lex.Rule(lex.Unit('~'), TILDE),
	lex.Rule(lex.Unit('|'), PIPE),
	lex.Rule(lex.Unit('^'), CARET),
	lex.Rule(lex.Unit('&'), AMPERSAND),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of tokens ending with an
// end-of-file sentinel, or fail with an InvalidInput error at the first
// position no rule matches.  Whitespace is discarded here; newlines and
// comments survive, since the grammar cares about both.
func Lex(srcfile *source.File) ([]lex.Token, *ParseError) {
	var (
		lexer  = lex.NewLexer(srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		offset := int(lexer.Index())
		//
		return nil, &ParseError{
			Kind: InvalidInput,
			Span: source.NewSpan(offset, offset+1),
			Trace: []Frame{
				{Rule: "lex", Location: srcfile.Location(offset)},
			},
		}
	}
	// Remove any whitespace
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	// Done
	return tokens, nil
}
