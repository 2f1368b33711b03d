package token

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{Line: 3, Column: 7}, "3:7"},
		{Position{File: "A.java", Line: 1, Column: 1}, "A.java:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	span := Span{
		Start: Position{Line: 2, Column: 5},
		End:   Position{Line: 4, Column: 3},
	}

	tests := []struct {
		name   string
		line   int
		column int
		want   bool
	}{
		{"before start line", 1, 10, false},
		{"before start column", 2, 4, false},
		{"at start", 2, 5, true},
		{"middle line", 3, 1, true},
		{"last column inside", 4, 2, true},
		{"end is exclusive", 4, 3, false},
		{"after end line", 5, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.line, tt.column); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.line, tt.column, got, tt.want)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		kind    Kind
		trivia  bool
		literal bool
		member  bool
	}{
		{Whitespace, true, false, false},
		{Comment, true, false, false},
		{LineComment, true, false, false},
		{Ident, false, false, true},
		{This, false, false, true},
		{Class, false, false, true},
		{New, false, false, true},
		{Dot, false, false, false},
		{CharLiteral, false, true, false},
		{FloatLiteral, false, true, false},
		{IntLiteral, false, true, false},
		{StringLiteral, false, true, false},
		{Other, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsTrivia(); got != tt.trivia {
				t.Errorf("IsTrivia() = %v, want %v", got, tt.trivia)
			}
			if got := tt.kind.IsLiteral(); got != tt.literal {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.literal)
			}
			if got := tt.kind.IsMember(); got != tt.member {
				t.Errorf("IsMember() = %v, want %v", got, tt.member)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"class", Class},
		{"new", New},
		{"this", This},
		{"while", Other},
		{"null", Other},
		{"var", Ident},
		{"String", Ident},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got := Kind(999).String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}
