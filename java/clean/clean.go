// Package clean prepares Java source for abstraction: comments are blanked out
// and comment markers inside string literals are neutralized.
package clean

import (
	"bytes"
	"strings"

	"github.com/dhamidi/src2abs/java/lexer"
	"github.com/dhamidi/src2abs/java/token"
)

// DoubleSlash replaces "//" inside string literals when neutralization is on.
const DoubleSlash = "<DOUBLE_SLASH>"

type Option func(*cleaner)

// KeepSlashes leaves string literals untouched. Offsets in the cleaned text
// then match the input exactly.
func KeepSlashes() Option {
	return func(c *cleaner) {
		c.neutralize = false
	}
}

// WithFile sets the file name reported in lexer errors.
func WithFile(path string) Option {
	return func(c *cleaner) {
		c.file = path
	}
}

type cleaner struct {
	neutralize bool
	file       string
}

// Clean removes comments from src. Each comment byte becomes a space and
// newlines inside block comments are kept, so line numbers survive.
func Clean(src []byte, opts ...Option) ([]byte, error) {
	c := &cleaner{neutralize: true}
	for _, opt := range opts {
		opt(c)
	}

	var out bytes.Buffer
	out.Grow(len(src))

	l := lexer.New(src, c.file)
	for {
		tok := l.NextToken()
		switch tok.Kind {
		case token.EOF:
			return out.Bytes(), nil
		case token.Error:
			return nil, l.Err()
		case token.Comment, token.LineComment:
			out.WriteString(blank(tok.Text))
		case token.StringLiteral:
			if c.neutralize {
				out.WriteString(strings.ReplaceAll(tok.Text, "//", DoubleSlash))
			} else {
				out.WriteString(tok.Text)
			}
		default:
			out.WriteString(tok.Text)
		}
	}
}

// blank works byte by byte so multi-byte runes keep their width in offsets.
func blank(comment string) string {
	b := []byte(comment)
	for i, ch := range b {
		if ch != '\n' && ch != '\r' {
			b[i] = ' '
		}
	}
	return string(b)
}
