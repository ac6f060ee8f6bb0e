// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package grammar

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vk/substationdsl/internal/dslerr"
)

// parser is compiled on first use and shared afterwards. A participle parser
// is immutable once built, so concurrent ParseString calls are safe.
var parser = sync.OnceValues(func() (*participle.Parser[Document], error) {
	return participle.Build[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
})

// Parse parses src into a Document. filename is used only in error messages
// and may be empty. Any failure is returned as a *dslerr.SyntaxError, except
// a failure to compile the grammar itself, which indicates a programming
// error and is returned wrapped.
func Parse(filename, src string) (*Document, error) {
	p, err := parser()
	if err != nil {
		return nil, fmt.Errorf("compiling grammar: %w", err)
	}
	doc, err := p.ParseString(filename, src)
	if err != nil {
		return nil, toSyntaxError(err, filename, src)
	}
	return doc, nil
}

// EBNF returns the grammar in EBNF notation.
func EBNF() (string, error) {
	p, err := parser()
	if err != nil {
		return "", fmt.Errorf("compiling grammar: %w", err)
	}
	return p.String(), nil
}

func toSyntaxError(err error, filename, src string) *dslerr.SyntaxError {
	serr := &dslerr.SyntaxError{Filename: filename, Message: err.Error()}

	var perr participle.Error
	if !errors.As(err, &perr) {
		return serr
	}
	pos := perr.Position()
	serr.Line, serr.Column = pos.Line, pos.Column
	serr.Message = perr.Message()
	if serr.Line > 0 {
		serr.Snippet = dslerr.Snippet(src, serr.Line, serr.Column)
	}

	var lexErr *lexer.Error
	var tokErr *participle.UnexpectedTokenError
	switch {
	case errors.As(err, &lexErr):
		serr.Expected = lexicalTokens()
	case errors.As(err, &tokErr):
		serr.Message, serr.Expected = splitExpected(tokErr)
	}
	return serr
}

// splitExpected separates participle's "unexpected token X (expected E)"
// message into its head and the tokens that can start E.
func splitExpected(tokErr *participle.UnexpectedTokenError) (string, []string) {
	head := fmt.Sprintf("unexpected token %q", tokErr.Unexpected)
	rest := strings.TrimPrefix(tokErr.Message(), head)
	rest = strings.TrimSuffix(strings.TrimPrefix(rest, " (expected "), ")")
	return head, expectedTokens(rest)
}
