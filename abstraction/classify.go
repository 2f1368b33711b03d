package abstraction

import (
	"strings"

	"github.com/dhamidi/src2abs/java/token"
)

const spacedDot = " . "

// chainContext is a chain to classify plus the lexical context around its last
// token. A multi-segment chain is split once: head is the first segment and
// tail is everything after the first dot, kept as one opaque spelling.
type chainContext struct {
	text     string
	head     string
	tail     string
	multi    bool
	callable bool
}

func newChainContext(text string, callable bool) *chainContext {
	c := &chainContext{text: text, callable: callable}
	if head, tail, ok := strings.Cut(text, "."); ok {
		c.head, c.tail, c.multi = head, tail, true
	}
	return c
}

type chainRule func(r *run, c *chainContext) (string, bool)

// chainRules run in order and the first match wins. Ambiguous chains resolve
// differently under any other order.
var chainRules = []chainRule{
	(*run).idiomChain,
	(*run).idiomEndpoints,
	(*run).declaredType,
	(*run).callableMethod,
	(*run).memberCall,
	(*run).memberAccess,
}

func (r *run) chainUnit(c chain) Unit {
	ctx := newChainContext(c.text(), callableAt(r.tokens, c.last))
	return Unit{
		Span: token.Span{
			Start: r.tokens[c.first].Span.Start,
			End:   r.tokens[c.last].Span.End,
		},
		Original:   ctx.text,
		Abstracted: r.classify(ctx),
	}
}

func (r *run) classify(c *chainContext) string {
	for _, rule := range chainRules {
		if s, ok := rule(r, c); ok {
			return s
		}
	}
	return r.ids(Variable).id(c.text)
}

func (r *run) idiomChain(c *chainContext) (string, bool) {
	return c.text, r.idioms.Has(c.text)
}

// idiomEndpoints keeps an idiom side verbatim and resolves the other side on
// its own.
func (r *run) idiomEndpoints(c *chainContext) (string, bool) {
	if !c.multi || !(r.idioms.Has(c.head) || r.idioms.Has(c.tail)) {
		return "", false
	}
	return r.operand(c.head, false) + spacedDot + r.operand(c.tail, c.callable), true
}

func (r *run) declaredType(c *chainContext) (string, bool) {
	if !r.decls.Types.Has(c.text) {
		return "", false
	}
	return r.ids(Type).id(c.text), true
}

func (r *run) callableMethod(c *chainContext) (string, bool) {
	if !c.callable || !r.decls.Methods.Has(c.text) {
		return "", false
	}
	return r.ids(Method).id(c.text), true
}

// memberCall handles receiver.method( and Type::method.
func (r *run) memberCall(c *chainContext) (string, bool) {
	if !c.multi || !c.callable || !r.decls.Methods.Has(c.tail) {
		return "", false
	}
	return r.operand(c.head, false) + spacedDot + r.ids(Method).id(c.tail), true
}

// memberAccess handles every remaining two-sided chain. The tail is a field
// or a pseudo-member, never a type.
func (r *run) memberAccess(c *chainContext) (string, bool) {
	if !c.multi {
		return "", false
	}
	head := r.operand(c.head, false)
	tail := c.tail
	if !isPseudoMember(tail) {
		tail = r.ids(Variable).id(tail)
	}
	return head + spacedDot + tail, true
}

// operand resolves one side of a split chain by itself.
func (r *run) operand(s string, callable bool) string {
	switch {
	case r.idioms.Has(s), isPseudoMember(s):
		return s
	case r.decls.Types.Has(s):
		return r.ids(Type).id(s)
	case callable && r.decls.Methods.Has(s):
		return r.ids(Method).id(s)
	}
	return r.ids(Variable).id(s)
}

func isPseudoMember(s string) bool {
	return s == "this" || s == "class" || s == "new"
}

// literal canonicalizes a literal by its exact source text.
func (r *run) literal(c Category, tok token.Token) Unit {
	u := verbatim(tok)
	if !r.idioms.Has(tok.Text) {
		u.Abstracted = r.ids(c).id(tok.Text)
	}
	return u
}

// annotation abstracts the marker at index i and its declared name as a
// single unit. The mapping key is the bare name; idioms are matched with the
// marker.
func (r *run) annotation(i int, name string) Unit {
	marker, nameTok := r.tokens[i], r.tokens[i+1]
	u := Unit{
		Span:     token.Span{Start: marker.Span.Start, End: nameTok.Span.End},
		Original: marker.Text + name,
	}
	if r.idioms.Has(u.Original) {
		u.Abstracted = u.Original
	} else {
		u.Abstracted = r.ids(Annotation).id(name)
	}
	return u
}
