// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package grammar is the lexical and syntactic front end of the substation
// DSL. It turns source text into a concrete syntax tree (Document) or a
// *dslerr.SyntaxError carrying the offending line, column and expected
// tokens.
//
// Every statement is its own node type whose mandatory attributes are named
// fields, so a missing or misspelled attribute is rejected here rather than
// discovered later. Enumerated attributes (breaker type, bay kind, ...) are
// grammar alternatives for the same reason.
//
// The compiled parser is built lazily on first use and then shared by every
// caller; it holds no per-parse state.
package grammar
