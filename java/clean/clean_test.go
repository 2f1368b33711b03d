package clean

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "line comment",
			input: "int x; // counter\nint y;",
			want:  "int x;           \nint y;",
		},
		{
			name:  "block comment keeps lines",
			input: "a /* one\ntwo */ b",
			want:  "a       \n       b",
		},
		{
			name:  "slashes in string",
			input: `String u = "http://example.com";`,
			want:  `String u = "http:` + DoubleSlash + `example.com";`,
		},
		{
			name:  "comment marker in string is not a comment",
			input: `s = "/* not */";`,
			want:  `s = "/* not */";`,
		},
		{
			name:  "char literal untouched",
			input: `c = '/';`,
			want:  `c = '/';`,
		},
		{
			name:  "nothing to clean",
			input: "return x + 1;",
			want:  "return x + 1;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean([]byte(tt.input))
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanKeepSlashes(t *testing.T) {
	input := `String u = "http://example.com"; // link`

	got, err := Clean([]byte(input), KeepSlashes())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if len(got) != len(input) {
		t.Errorf("len = %d, want %d", len(got), len(input))
	}
	if !strings.Contains(string(got), `"http://example.com"`) {
		t.Errorf("Clean() = %q, want string literal kept", got)
	}
	if strings.Contains(string(got), "link") {
		t.Errorf("Clean() = %q, want comment removed", got)
	}
}

func TestCleanMultiByteComment(t *testing.T) {
	input := "x /* größe */ y"

	got, err := Clean([]byte(input), KeepSlashes())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if len(got) != len(input) {
		t.Errorf("len = %d, want %d", len(got), len(input))
	}
	if !strings.HasSuffix(string(got), " y") {
		t.Errorf("Clean() = %q, want suffix %q", got, " y")
	}
}

func TestCleanError(t *testing.T) {
	_, err := Clean([]byte(`s = "open`), WithFile("Broken.java"))
	if err == nil {
		t.Fatal("Clean() error = nil, want error")
	}
	if !strings.HasPrefix(err.Error(), "Broken.java:1:5") {
		t.Errorf("error = %q, want position prefix", err.Error())
	}
}
