// Package format renders abstraction results for people and tools.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/src2abs/abstraction"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(res *abstraction.Result) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"text": func(w io.Writer) Encoder { return NewTextEncoder(w) },
	"line": func(w io.Writer) Encoder { return NewLineEncoder(w) },
	"json": func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"yaml": func(w io.Writer) Encoder { return NewYAMLEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return newEncoder(w), nil
}

func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
