// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dslerr defines the two error families of the substation DSL:
// syntax errors raised at the grammar boundary and semantic errors raised by
// the transformer and the validator. Semantic errors carry a stable,
// machine-readable code.
package dslerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two families.
var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrSemantic matches every *SemanticError.
	ErrSemantic = errors.New("semantic error")
)

// Stable semantic error codes.
const (
	CodeDuplicateID      = "E.ID.DUP"
	CodeMissingID        = "E.ID.MISSING"
	CodeMissingAttr      = "E.ATTR.MISSING"
	CodeDuplicatePage    = "E.PAGE.DUP"
	CodeConnectEmpty     = "E.CONNECT.EMPTY"
	CodeConnectEndpoint  = "E.CONNECT.ENDPOINT"
	CodeVoltageMismatch  = "E.VOLT.MISMATCH"
	CodeBreakerUnused    = "E.PROT.BRK_UNUSED"
	CodeUnresolvedRef    = "E.REF.UNRESOLVED"
	CodeCouplerBus       = "E.COUPLER.BUS"
	CodeBayBus           = "E.BAY.BUS"
	CodeBayMember        = "E.BAY.MEMBER"
	CodeUnknownStatement = "E.STMT.UNKNOWN"
)

// Code-matching sentinels, usable with errors.Is.
var (
	ErrDuplicateID     = &SemanticError{Code: CodeDuplicateID}
	ErrMissingID       = &SemanticError{Code: CodeMissingID}
	ErrMissingAttr     = &SemanticError{Code: CodeMissingAttr}
	ErrConnectEmpty    = &SemanticError{Code: CodeConnectEmpty}
	ErrConnectEndpoint = &SemanticError{Code: CodeConnectEndpoint}
	ErrVoltageMismatch = &SemanticError{Code: CodeVoltageMismatch}
	ErrBreakerUnused   = &SemanticError{Code: CodeBreakerUnused}
	ErrUnresolvedRef   = &SemanticError{Code: CodeUnresolvedRef}
)

// SemanticError is a structurally valid document that violates a rule of
// the IR. Line and Column are 1-based; zero means the location is unknown.
type SemanticError struct {
	Code    string
	Message string
	Line    int
	Column  int
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Code, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is ErrSemantic or a *SemanticError with the same code.
func (e *SemanticError) Is(target error) bool {
	if target == ErrSemantic {
		return true
	}
	var other *SemanticError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// NewSemantic creates a SemanticError with a formatted message and no location.
func NewSemantic(code, format string, args ...any) *SemanticError {
	return &SemanticError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At returns a copy of e located at line/column.
func (e *SemanticError) At(line, column int) *SemanticError {
	out := *e
	out.Line = line
	out.Column = column
	return &out
}

// CodeOf returns the code of the first SemanticError in err's chain, or "".
func CodeOf(err error) string {
	var se *SemanticError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// SyntaxError is a malformed token stream. Message is the parser's own
// description; Snippet holds the offending source line with a caret under
// Column; Expected is the grammar's expected-token set when known.
type SyntaxError struct {
	Message  string
	Filename string
	Line     int
	Column   int
	Expected []string
	Snippet  string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		fmt.Fprintf(&b, "syntax error in %s at line %d, column %d: %s", e.Filename, e.Line, e.Column, e.Message)
	} else {
		fmt.Fprintf(&b, "syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	if e.Snippet != "" {
		b.WriteString("\n")
		b.WriteString(e.Snippet)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "\nexpected one of: %s", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// Unwrap lets errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
