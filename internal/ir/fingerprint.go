// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ir

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the BLAKE3 digest of the canonical encoding of r.
// Two IRs with the same objects, attribute order, chains, retained
// statements and source locations have the same fingerprint.
func (r *IR) Fingerprint() string {
	h := blake3.New()
	r.writeCanonical(h)
	return hex.EncodeToString(h.Sum(nil))
}

// Canonical returns the canonical text encoding used by Fingerprint.
func (r *IR) Canonical() string {
	var b strings.Builder
	r.writeCanonical(&b)
	return b.String()
}

func (r *IR) writeCanonical(w io.Writer) {
	for o := range r.Objects() {
		fmt.Fprintf(w, "object %q %s @%s {%s}\n", o.ID, o.Kind, o.Loc, o.Attrs)
	}
	for _, c := range r.chains {
		fmt.Fprintf(w, "chain %s @%s {%s}\n", c, c.Loc, c.Attrs)
	}
	for _, id := range r.pageIDs {
		p := r.pages[id]
		fmt.Fprintf(w, "page %q @%s {%s}\n", p.ID, p.Loc, p.Attrs)
	}
	fmt.Fprintf(w, "style {%s}\n", r.style)
	fmt.Fprintf(w, "meta {%s}\n", r.meta)
	for _, l := range r.labels {
		fmt.Fprintf(w, "label %q @%s {%s}\n", l.Target, l.Loc, l.Attrs)
	}
	for _, m := range r.members {
		fmt.Fprintf(w, "member %q %q @%s\n", m.BayID, m.ObjectID, m.Loc)
	}
	for _, d := range r.directives {
		fmt.Fprintf(w, "directive %s @%s {%s}\n", d.Kind, d.Loc, d.Attrs)
	}
}
