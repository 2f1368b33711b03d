package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/src2abs/abstraction"
)

type JSONEncoder struct {
	w      io.Writer
	result *abstraction.Result
	units  bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WithUnits includes every abstracted unit and its position in the output.
func (e *JSONEncoder) WithUnits() *JSONEncoder {
	e.units = true
	return e
}

func (e *JSONEncoder) Encode(res *abstraction.Result) error {
	e.result = res
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(buildDocument(e.result, e.units), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}
