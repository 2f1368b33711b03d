package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/src2abs/abstraction"
)

// LineEncoder prints one tab-separated line per unit: position, original
// spelling and abstracted spelling. Units left verbatim are skipped.
type LineEncoder struct {
	w      io.Writer
	result *abstraction.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(res *abstraction.Result) error {
	e.result = res
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.result == nil {
		return nil, nil
	}

	for _, u := range e.result.Units {
		if u.Original == u.Abstracted {
			continue
		}
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n",
			u.Span.Start.Line,
			u.Span.Start.Column,
			u.Original,
			u.Abstracted,
		)
	}

	return []byte(sb.String()), nil
}
