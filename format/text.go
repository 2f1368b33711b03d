package format

import (
	"io"

	"github.com/dhamidi/src2abs/abstraction"
)

// TextEncoder prints the abstracted text and, after a blank line, one
// "PLACEHOLDER = original" line per mapping entry.
type TextEncoder struct {
	w      io.Writer
	result *abstraction.Result
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(res *abstraction.Result) error {
	e.result = res
	return write(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	if e.result == nil {
		return nil, nil
	}
	text := e.result.String()
	if e.result.Mapping.Len() == 0 {
		text += "\n"
	}
	return []byte(text), nil
}
