// Package abstraction replaces identifiers and literals in a Java token stream
// with category-tagged placeholders.
//
// An Engine holds the declaration sets, the idiom set and options. Each call
// to Run starts from fresh placeholder counters, so numbering never carries
// over between runs and one Engine may be shared by concurrent callers.
//
// By default a dotted chain holds at most one member access, so System.out.println
// is walked as System.out, a dot and println; WithGreedyChains lifts the limit.
//
//	e := abstraction.New(decls, abstraction.NewSet("String"))
//	res := e.Run(tokens)
//	fmt.Println(res.Text)     // public static void METHOD_1 ( String [ ] VAR_1 ) ...
//	res.Mapping.Lookup("args") // "VAR_1", true
package abstraction

import (
	"strings"

	"github.com/dhamidi/src2abs/java/token"
)

type Option func(*Engine)

// WithGreedyChains makes the walker extend a dotted chain across every
// member access instead of stopping after the first one. The classifier still
// splits the chain once, after its first segment.
func WithGreedyChains() Option {
	return func(e *Engine) {
		e.greedy = true
	}
}

type Engine struct {
	decls  Declarations
	idioms Set
	greedy bool
}

func New(decls Declarations, idioms Set, opts ...Option) *Engine {
	e := &Engine{
		decls:  decls,
		idioms: idioms,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Unit is one element of the abstracted text together with the source it
// replaced.
type Unit struct {
	Span       token.Span
	Original   string
	Abstracted string
}

type Result struct {
	Text    string
	Mapping *Mapping
	Units   []Unit

	byCategory [numCategories][]Entry
}

// Entries returns the placeholders of one category in allocation order.
func (r *Result) Entries(c Category) []Entry {
	if c < 0 || c >= numCategories {
		return nil
	}
	return append([]Entry(nil), r.byCategory[c]...)
}

// UnitAt returns the unit covering the 1-based line and column.
func (r *Result) UnitAt(line, column int) (Unit, bool) {
	for _, u := range r.Units {
		if u.Span.Contains(line, column) {
			return u, true
		}
	}
	return Unit{}, false
}

// String renders the abstracted text followed, when anything was abstracted,
// by a blank line and one "PLACEHOLDER = original" line per mapping entry.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString(r.Text)
	if r.Mapping.Len() == 0 {
		return b.String()
	}
	b.WriteString("\n\n")
	for _, e := range r.Mapping.Entries() {
		b.WriteString(e.Placeholder)
		b.WriteString(" = ")
		b.WriteString(e.Original)
		b.WriteByte('\n')
	}
	return b.String()
}

// run is the state of a single abstraction pass.
type run struct {
	*Engine
	tokens []token.Token
	maps   [numCategories]*categoryMap
}

func (e *Engine) Run(tokens []token.Token) *Result {
	r := &run{Engine: e, tokens: tokens}
	for _, c := range Categories() {
		r.maps[c] = newCategoryMap(c)
	}

	var units []Unit
	for i := 0; i < len(tokens); {
		u, next, ok := r.unit(i)
		if ok {
			units = append(units, u)
		}
		i = next
	}

	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Abstracted
	}

	res := &Result{
		Text:  strings.Join(texts, " "),
		Units: units,
	}
	byCategory := make([][]Entry, 0, numCategories)
	for _, c := range Categories() {
		res.byCategory[c] = r.maps[c].entries()
		byCategory = append(byCategory, res.byCategory[c])
	}
	res.Mapping = Export(byCategory)
	return res
}

func (r *run) ids(c Category) *categoryMap {
	return r.maps[c]
}

// unit abstracts the unit starting at token i and returns it together with
// the index of the first token after it. Trivia and EOF tokens yield no unit.
func (r *run) unit(i int) (Unit, int, bool) {
	tok := r.tokens[i]
	switch tok.Kind {
	case token.At:
		if name, ok := annotationAt(r.tokens, i, r.decls.Annotations); ok {
			return r.annotation(i, name), i + 2, true
		}
		return verbatim(tok), i + 1, true
	case token.Ident:
		c := consumeChain(r.tokens, i, r.greedy)
		return r.chainUnit(c), c.last + 1, true
	case token.CharLiteral:
		return r.literal(Char, tok), i + 1, true
	case token.FloatLiteral:
		return r.literal(Float, tok), i + 1, true
	case token.IntLiteral:
		return r.literal(Int, tok), i + 1, true
	case token.StringLiteral:
		return r.literal(String, tok), i + 1, true
	case token.Dot, token.Colon, token.ColonColon, token.LParen,
		token.This, token.Class, token.New, token.Other, token.Error:
		return verbatim(tok), i + 1, true
	case token.EOF, token.Whitespace, token.Comment, token.LineComment:
		return Unit{}, i + 1, false
	}
	return verbatim(tok), i + 1, true
}

func verbatim(tok token.Token) Unit {
	return Unit{Span: tok.Span, Original: tok.Text, Abstracted: tok.Text}
}
