// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package grammar

import (
	"regexp"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// punctuation holds the single-character tokens of the DSL.
const punctuation = "=,[]{}()"

// dslLexer defines the tokens of the DSL. Order matters: rules are tried
// top to bottom at each position.
//
// Identifiers may contain '-' and '.' after the first character so that ids
// such as "main-138" or "lv-13p8" are single tokens. Keywords (ADD_BUS,
// OPEN_END, true, ...) are identifiers matched literally by the grammar.
var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "Punct", Pattern: `[` + regexp.QuoteMeta(punctuation) + `]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// lexicalTokens lists every token class the lexer accepts, in the notation
// of the grammar's EBNF.
func lexicalTokens() []string {
	tokens := []string{"<string>", "<number>", "<ident>"}
	for _, r := range punctuation {
		tokens = append(tokens, strconv.Quote(string(r)))
	}
	return tokens
}
