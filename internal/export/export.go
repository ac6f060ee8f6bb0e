// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package export renders an IR as a JSON or YAML document for downstream
// spec and diagram generators.
//
// Both formats carry the same content: the IR fingerprint, objects with
// their kind, location and attributes, chains, pages and the passively
// retained statements. YAML preserves attribute order natively; JSON is
// produced through cty and records the order in "attr_order" lists.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/substationdsl/internal/ir"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be one of [json, yaml]", s)
	}
}

// Write renders r to w in format f.
func Write(w io.Writer, r *ir.IR, f Format) error {
	switch f {
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	default:
		return fmt.Errorf("invalid output format %q", f)
	}
}

// JSON renders r as indented JSON.
func JSON(w io.Writer, r *ir.IR) error {
	val := ToCty(r)
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return fmt.Errorf("failed to marshal IR to JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
