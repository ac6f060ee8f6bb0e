// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package grammar

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2/ebnf"
)

// statementProduction names the production tried at the start of every
// statement.
const statementProduction = "Statement"

// firstSets computes the tokens that can begin a grammar expression. It
// works on the EBNF participle renders, both for the whole grammar and for
// the unmatched remainder of a production reported in a syntax error.
type firstSets struct {
	productions map[string]*ebnf.Expression
}

var grammarFirstSets = sync.OnceValues(func() (*firstSets, error) {
	src, err := EBNF()
	if err != nil {
		return nil, err
	}
	g, err := ebnf.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("parsing grammar EBNF: %w", err)
	}
	f := &firstSets{productions: make(map[string]*ebnf.Expression, len(g.Productions))}
	for _, p := range g.Productions {
		f.productions[p.Production] = p.Expression
	}
	return f, nil
})

// expectedTokens returns the tokens that can start rest, an EBNF expression.
// An empty rest means the parser stopped between statements.
func expectedTokens(rest string) []string {
	f, err := grammarFirstSets()
	if err != nil {
		return nil
	}
	if rest == "" {
		return f.production(statementProduction)
	}
	g, err := ebnf.ParseString("Rest = " + rest + " .")
	if err != nil || len(g.Productions) == 0 {
		return []string{rest}
	}
	var out []string
	f.expr(g.Productions[0].Expression, map[string]bool{}, &out)
	return out
}

func (f *firstSets) production(name string) []string {
	expr, ok := f.productions[name]
	if !ok {
		return nil
	}
	var out []string
	f.expr(expr, map[string]bool{name: true}, &out)
	return out
}

// expr appends the first tokens of e to out and reports whether e can match
// nothing.
func (f *firstSets) expr(e *ebnf.Expression, active map[string]bool, out *[]string) bool {
	nullable := false
	for _, alt := range e.Alternatives {
		if f.sequence(alt, active, out) {
			nullable = true
		}
	}
	return nullable
}

func (f *firstSets) sequence(s *ebnf.Sequence, active map[string]bool, out *[]string) bool {
	for _, t := range s.Terms {
		if !f.term(t, active, out) {
			return false
		}
	}
	return true
}

func (f *firstSets) term(t *ebnf.Term, active map[string]bool, out *[]string) bool {
	nullable := false
	switch {
	case t.Negation:
		appendUnique(out, t.String())
	case t.Literal != "":
		appendUnique(out, t.Literal)
	case t.Token != "":
		appendUnique(out, "<"+t.Token+">")
	case t.Name != "":
		expr, ok := f.productions[t.Name]
		if !ok {
			appendUnique(out, t.Name)
			break
		}
		// Recursive productions contribute nothing new while being expanded.
		if active[t.Name] {
			break
		}
		active[t.Name] = true
		nullable = f.expr(expr, active, out)
		delete(active, t.Name)
	case t.Group != nil:
		if t.Group.Lookahead != ebnf.LookaheadAssertionNone {
			nullable = true
			break
		}
		nullable = f.expr(t.Group.Expr, active, out)
	}
	return nullable || t.Repetition == "?" || t.Repetition == "*"
}

func appendUnique(out *[]string, tok string) {
	for _, seen := range *out {
		if seen == tok {
			return
		}
	}
	*out = append(*out, tok)
}
