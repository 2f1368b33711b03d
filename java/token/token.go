// Package token defines the closed token vocabulary shared by the Java lexer
// and the abstraction engine.
package token

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the 1-based line/column pair falls inside the span.
func (s Span) Contains(line, column int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column >= s.End.Column {
		return false
	}
	return true
}

type Kind int

const (
	EOF Kind = iota
	Error
	Whitespace
	Comment
	LineComment

	Ident
	At
	Dot
	Colon
	ColonColon
	LParen

	This
	Class
	New

	CharLiteral
	FloatLiteral
	IntLiteral
	StringLiteral

	// Other covers every keyword, operator and separator the abstraction
	// engine emits verbatim.
	Other
)

var kindNames = map[Kind]string{
	EOF:           "EOF",
	Error:         "Error",
	Whitespace:    "Whitespace",
	Comment:       "Comment",
	LineComment:   "LineComment",
	Ident:         "Identifier",
	At:            "@",
	Dot:           ".",
	Colon:         ":",
	ColonColon:    "::",
	LParen:        "(",
	This:          "this",
	Class:         "class",
	New:           "new",
	CharLiteral:   "CharLiteral",
	FloatLiteral:  "FloatLiteral",
	IntLiteral:    "IntLiteral",
	StringLiteral: "StringLiteral",
	Other:         "Other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are dropped before abstraction.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment || k == LineComment
}

// IsLiteral reports whether the kind is one of the four canonicalized literal kinds.
func (k Kind) IsLiteral() bool {
	return k == CharLiteral || k == FloatLiteral || k == IntLiteral || k == StringLiteral
}

// IsMember reports whether a token of this kind may follow a dot inside a chain.
func (k Kind) IsMember() bool {
	return k == Ident || k == This || k == Class || k == New
}

type Token struct {
	Kind Kind
	Span Span
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Text)
}

// keywords lists the reserved words of the Java language. Only this, class and
// new get their own kind; the rest, including the true, false and null
// literals, lex as Other. Contextual keywords such as var, record or yield are
// not listed and stay identifiers.
var keywords = map[string]Kind{
	"abstract":     Other,
	"assert":       Other,
	"boolean":      Other,
	"break":        Other,
	"byte":         Other,
	"case":         Other,
	"catch":        Other,
	"char":         Other,
	"class":        Class,
	"const":        Other,
	"continue":     Other,
	"default":      Other,
	"do":           Other,
	"double":       Other,
	"else":         Other,
	"enum":         Other,
	"extends":      Other,
	"final":        Other,
	"finally":      Other,
	"float":        Other,
	"for":          Other,
	"goto":         Other,
	"if":           Other,
	"implements":   Other,
	"import":       Other,
	"instanceof":   Other,
	"int":          Other,
	"interface":    Other,
	"long":         Other,
	"native":       Other,
	"new":          New,
	"package":      Other,
	"private":      Other,
	"protected":    Other,
	"public":       Other,
	"return":       Other,
	"short":        Other,
	"static":       Other,
	"strictfp":     Other,
	"super":        Other,
	"switch":       Other,
	"synchronized": Other,
	"this":         This,
	"throw":        Other,
	"throws":       Other,
	"transient":    Other,
	"try":          Other,
	"void":         Other,
	"volatile":     Other,
	"while":        Other,
	"true":         Other,
	"false":        Other,
	"null":         Other,
}

func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
