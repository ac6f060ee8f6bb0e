// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dslerr

import (
	"fmt"
	"strings"
)

// Snippet renders the 1-based line of src with a caret under the 1-based
// column. Out-of-range coordinates are clamped so rendering never fails.
//
//	   3 | ADD_BUS id=b1 kv=138
//	     |               ^
func Snippet(src string, line, column int) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	text := strings.TrimRight(lines[line-1], "\r")
	if column < 1 {
		column = 1
	}
	if column > len(text)+1 {
		column = len(text) + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%4d | %s\n", line, text)
	fmt.Fprintf(&b, "     | %s^", caretPadding(text, column-1))
	return b.String()
}

// caretPadding keeps tabs in the source line so the caret lines up with it.
func caretPadding(text string, n int) string {
	var b strings.Builder
	for i := 0; i < n && i < len(text); i++ {
		if text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
