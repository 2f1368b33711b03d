package format

import (
	"io"

	"github.com/dhamidi/src2abs/abstraction"
	"gopkg.in/yaml.v3"
)

type YAMLEncoder struct {
	w      io.Writer
	result *abstraction.Result
	units  bool
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) WithUnits() *YAMLEncoder {
	e.units = true
	return e
}

func (e *YAMLEncoder) Encode(res *abstraction.Result) error {
	e.result = res
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(buildDocument(e.result, e.units))
}
