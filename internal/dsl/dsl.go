// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dsl is the entry point of the substation DSL front end. It chains
// the grammar, the tree-to-IR transformer and the semantic validator:
//
//	r, err := dsl.Parse(ctx, src)      // text -> IR, or the first error
//	err = dsl.Validate(ctx, r)          // IR -> first rule violation
//
// Syntax failures are *dslerr.SyntaxError; everything else the pipeline
// rejects is a *dslerr.SemanticError. No partial IR is ever returned.
//
// The only state shared between calls is the compiled grammar, so Parse and
// Validate may be called concurrently. The context carries the logger (see
// ctxlog) and is not used for cancellation.
package dsl

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/substationdsl/internal/ctxlog"
	"github.com/vk/substationdsl/internal/grammar"
	"github.com/vk/substationdsl/internal/ir"
	"github.com/vk/substationdsl/internal/transform"
	"github.com/vk/substationdsl/internal/validate"
)

// Parse parses and transforms src into an IR. It does not validate.
func Parse(ctx context.Context, src string) (*ir.IR, error) {
	return ParseNamed(ctx, "", src)
}

// ParseNamed is Parse with a file name used in syntax error messages.
func ParseNamed(ctx context.Context, filename, src string) (*ir.IR, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing document.", "file", filename, "bytes", len(src))

	doc, err := grammar.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return transform.Transform(ctx, doc)
}

// ParseFile reads and parses the file at path.
func ParseFile(ctx context.Context, path string) (*ir.IR, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return ParseNamed(ctx, path, string(b))
}

// Validate runs the semantic rule battery over r and returns the first
// violation, or nil.
func Validate(ctx context.Context, r *ir.IR, opts ...validate.Option) error {
	return validate.Validate(ctx, r, opts...)
}

// Grammar returns the DSL grammar in EBNF notation.
func Grammar() (string, error) {
	return grammar.EBNF()
}

// WithStrict enables strict reference checking in Validate.
func WithStrict() validate.Option {
	return validate.WithStrict()
}
