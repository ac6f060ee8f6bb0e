// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/substationdsl/internal/topology"
)

func writeSummary(w io.Writer, path string, s *topology.Summary) {
	levels := make([]string, len(s.VoltageLevels))
	for i, kv := range s.VoltageLevels {
		levels[i] = strconv.FormatFloat(kv, 'g', -1, 64)
	}

	fmt.Fprintf(w, "Document: %s\n", path)
	fmt.Fprintf(w, "Objects: %d\n", s.Objects)
	fmt.Fprintf(w, "Chains: %d\n", s.Chains)
	fmt.Fprintf(w, "Pages: %d\n", s.Pages)
	fmt.Fprintf(w, "Terminals: %d\n", s.Terminals)
	fmt.Fprintf(w, "Voltage levels (kV): %s\n", orNone(strings.Join(levels, ", ")))

	fmt.Fprintln(w, "Inventory:")
	for _, kc := range s.Inventory {
		fmt.Fprintf(w, "  %s: %d\n", kc.Kind, kc.Count)
	}

	if len(s.Samples) > 0 {
		fmt.Fprintln(w, "Samples:")
		for _, sm := range s.Samples {
			fmt.Fprintf(w, "  %s %s: %s\n", sm.Kind, sm.ID, sm.Attrs)
		}
	}

	fmt.Fprintf(w, "Islands: %d\n", len(s.Islands))
	for i, island := range s.Islands {
		fmt.Fprintf(w, "  %d: %s\n", i+1, strings.Join(island, ", "))
	}
	fmt.Fprintf(w, "Unconnected: %s\n", orNone(strings.Join(s.Unconnected, ", ")))
	fmt.Fprintf(w, "Undeclared references: %s\n", orNone(strings.Join(s.Undeclared, ", ")))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
