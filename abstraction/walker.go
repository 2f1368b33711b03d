package abstraction

import (
	"strings"

	"github.com/dhamidi/src2abs/java/token"
)

// chain is a run of identifier-like tokens joined by dots.
type chain struct {
	segments []string
	first    int
	last     int
}

func (c chain) text() string {
	return strings.Join(c.segments, ".")
}

// consumeChain reads the chain starting at the identifier at index start.
// A dot is consumed only together with the member token that follows it, so a
// trailing dot or the end of the list ends the chain cleanly. Unless greedy is
// set the chain holds at most one member access.
func consumeChain(tokens []token.Token, start int, greedy bool) chain {
	c := chain{
		segments: []string{tokens[start].Text},
		first:    start,
		last:     start,
	}
	for j := start + 1; j+1 < len(tokens); j += 2 {
		if tokens[j].Kind != token.Dot || !tokens[j+1].Kind.IsMember() {
			break
		}
		c.segments = append(c.segments, tokens[j+1].Text)
		c.last = j + 1
		if !greedy {
			break
		}
	}
	return c
}

// annotationAt reports the annotation name following the marker at index i,
// if that name is a declared annotation.
func annotationAt(tokens []token.Token, i int, annotations Set) (string, bool) {
	if i+1 >= len(tokens) {
		return "", false
	}
	next := tokens[i+1]
	if next.Kind != token.Ident || !annotations.Has(next.Text) {
		return "", false
	}
	return next.Text, true
}

// callableAt reports whether the token at index last can be a method name: it
// is followed by an opening parenthesis or is the right side of a method
// reference.
func callableAt(tokens []token.Token, last int) bool {
	if precededByDoubleColon(tokens, last) {
		return true
	}
	return last+1 < len(tokens) && tokens[last+1].Kind == token.LParen
}

// precededByDoubleColon accepts both a single "::" token and two ":" tokens.
func precededByDoubleColon(tokens []token.Token, i int) bool {
	if i >= 1 && tokens[i-1].Kind == token.ColonColon {
		return true
	}
	return i >= 2 && tokens[i-1].Kind == token.Colon && tokens[i-2].Kind == token.Colon
}
