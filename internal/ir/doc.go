// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ir provides the in-memory intermediate representation of a
// substation topology document. It is the single product of a parse and the
// only input of the validator and of every downstream generator.
//
// # Core Concepts
//
//   - Value: a tagged union of the literal kinds the language can express
//     (identifier, number, text, boolean, list, map, terminal). Consumers
//     switch on Value.Kind() instead of probing dynamic types.
//
//   - Attrs: an insertion-ordered name->Value map. Attribute order is part of
//     the document's meaning for generators, so it is never lost.
//
//   - Object: one declared piece of equipment (bus, breaker, transformer, ...)
//     with a globally unique id, a Kind, its Attrs and the source location of
//     the declaring statement.
//
//   - Chain: one ordered series connection as declared by a CONNECT statement.
//     Elements are either object references or terminals (OPEN_END / STUB).
//
//   - IR: the object table, chains, pages, and the passively retained style,
//     meta, labels, bay memberships and directives.
//
// # Lifecycle
//
// An IR is assembled once by a Builder during a single transformation pass
// and is read-only afterwards: only accessors are exported. Object
// registration (Builder.AddObject) is where the global id uniqueness
// invariant is enforced.
package ir
