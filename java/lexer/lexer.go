// Package lexer splits Java source text into the token vocabulary consumed by
// the abstraction engine.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/src2abs/java/token"
)

// Error describes input the lexer could not tokenize.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	err    *Error
}

func New(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize returns every significant token of src in order, without trivia and
// without the trailing EOF token. The first lexical error stops tokenization.
func Tokenize(src []byte, file string) ([]token.Token, error) {
	l := New(src, file)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		switch {
		case tok.Kind == token.EOF:
			return tokens, l.Err()
		case tok.Kind == token.Error:
			return nil, l.Err()
		case tok.Kind.IsTrivia():
			continue
		}
		tokens = append(tokens, tok)
	}
}

// Err returns the first error the lexer ran into, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

func (l *Lexer) Position() token.Position {
	return token.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// peekRune decodes the rune at the cursor, so identifiers may use any Unicode
// letter.
func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func (l *Lexer) NextToken() token.Token {
	startPos := l.Position()

	if l.atEnd() {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isWhitespace(ch) {
		return l.scanWhitespace(startPos)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(startPos)
		}
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start token.Position) token.Token {
	for isWhitespace(l.peek()) && !l.atEnd() {
		l.advance()
	}
	return l.token(token.Whitespace, start)
}

func (l *Lexer) scanLineComment(start token.Position) token.Token {
	l.advanceN(2)
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(token.LineComment, start)
}

func (l *Lexer) scanBlockComment(start token.Position) token.Token {
	l.advanceN(2)
	for {
		if l.atEnd() {
			return l.fail(start, "unterminated block comment")
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(token.Comment, start)
}

func (l *Lexer) scanIdentOrKeyword(start token.Position) token.Token {
	for {
		r, size := l.peekRune()
		if size == 0 || !isJavaLetterOrDigit(r) {
			break
		}
		l.advanceN(size)
	}
	tok := l.token(token.Ident, start)
	tok.Kind = token.LookupKeyword(tok.Text)
	return tok
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		return l.scanBinaryNumber(start)
	}

	isFloat := false
	l.skipDigits()

	if l.peek() == '.' && startsFraction(l.peekN(1)) {
		isFloat = true
		l.advance()
		l.skipDigits()
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.skipDigits()
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		if !isFloat {
			l.advance()
		}
	}

	if isFloat {
		return l.token(token.FloatLiteral, start)
	}
	return l.token(token.IntLiteral, start)
}

// startsFraction reports whether the byte after a '.' continues a decimal
// literal: "1.5", "1.e3", "1.f" and a bare "1." are floats, "1..2" is not.
func startsFraction(next byte) bool {
	if isDigit(next) {
		return true
	}
	switch next {
	case 'e', 'E', 'f', 'F', 'd', 'D':
		return true
	case '.':
		return false
	}
	return next < 128 && !isASCIILetter(next)
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanHexNumber(start token.Position) token.Token {
	l.advanceN(2)
	for isHexDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.skipDigits()
	}
	if isFloat {
		if l.peek() == 'f' || l.peek() == 'F' || l.peek() == 'd' || l.peek() == 'D' {
			l.advance()
		}
		return l.token(token.FloatLiteral, start)
	}
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
	}
	return l.token(token.IntLiteral, start)
}

func (l *Lexer) scanBinaryNumber(start token.Position) token.Token {
	l.advanceN(2)
	for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
	}
	return l.token(token.IntLiteral, start)
}

func (l *Lexer) scanCharLiteral(start token.Position) token.Token {
	l.advance()
	for !l.atEnd() && l.peek() != '\'' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '\'' {
		return l.fail(start, "unterminated character literal")
	}
	l.advance()
	return l.token(token.CharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start token.Position) token.Token {
	l.advance()
	for !l.atEnd() && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != '"' {
		return l.fail(start, "unterminated string literal")
	}
	l.advance()
	return l.token(token.StringLiteral, start)
}

func (l *Lexer) scanTextBlock(start token.Position) token.Token {
	l.advanceN(3)
	for {
		if l.atEnd() {
			return l.fail(start, "unterminated text block")
		}
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(token.StringLiteral, start)
}

// operators lists every Java separator and operator, longest spelling first
// within each leading byte so the scan is maximal munch.
var operators = map[byte][]string{
	'(': {"("},
	')': {")"},
	'{': {"{"},
	'}': {"}"},
	'[': {"["},
	']': {"]"},
	';': {";"},
	',': {","},
	'@': {"@"},
	'~': {"~"},
	'?': {"?"},
	'.': {"...", "."},
	':': {"::", ":"},
	'=': {"==", "="},
	'!': {"!=", "!"},
	'<': {"<<=", "<<", "<=", "<"},
	'>': {">>>=", ">>>", ">>=", ">>", ">=", ">"},
	'&': {"&&", "&=", "&"},
	'|': {"||", "|=", "|"},
	'^': {"^=", "^"},
	'+': {"++", "+=", "+"},
	'-': {"--", "-=", "->", "-"},
	'*': {"*=", "*"},
	'/': {"/=", "/"},
	'%': {"%=", "%"},
}

func (l *Lexer) scanOperator(start token.Position) token.Token {
	for _, op := range operators[l.peek()] {
		if !l.hasPrefix(op) {
			continue
		}
		l.advanceN(len(op))
		return l.token(operatorKind(op), start)
	}

	_, size := l.peekRune()
	if size == 0 {
		size = 1
	}
	l.advanceN(size)
	return l.fail(start, fmt.Sprintf("illegal character %q", string(l.input[start.Offset:l.pos])))
}

func operatorKind(op string) token.Kind {
	switch op {
	case "@":
		return token.At
	case ".":
		return token.Dot
	case ":":
		return token.Colon
	case "::":
		return token.ColonColon
	case "(":
		return token.LParen
	}
	return token.Other
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) token(kind token.Kind, start token.Position) token.Token {
	end := l.Position()
	return token.Token{
		Kind: kind,
		Span: token.Span{Start: start, End: end},
		Text: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) fail(start token.Position, msg string) token.Token {
	if l.err == nil {
		l.err = &Error{Pos: start, Msg: msg}
	}
	return l.token(token.Error, start)
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return isASCIILetter(byte(r))
	}
	return unicode.IsLetter(r)
}

func isJavaLetterOrDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return isASCIILetter(byte(r)) || isDigit(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
