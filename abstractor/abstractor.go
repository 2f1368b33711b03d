// Package abstractor runs the whole pipeline over a Java source: clean,
// extract declarations, tokenize and abstract.
package abstractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/java/clean"
	"github.com/dhamidi/src2abs/java/extract"
	"github.com/dhamidi/src2abs/java/lexer"
	"github.com/dhamidi/src2abs/java/token"
	"github.com/tliron/commonlog"
)

// SidecarExt is appended to the output path to name the mapping file.
const SidecarExt = ".map"

var ErrInputNotFound = errors.New("input file not found")

var log = commonlog.GetLogger("src2abs.abstractor")

type Option func(*options)

type options struct {
	file        string
	granularity extract.Granularity
	idioms      abstraction.Set
	greedy      bool
	neutralize  bool
}

func newOptions(opts []Option) *options {
	o := &options{
		granularity: extract.Class,
		neutralize:  true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithGranularity(g extract.Granularity) Option {
	return func(o *options) {
		o.granularity = g
	}
}

func WithIdioms(idioms abstraction.Set) Option {
	return func(o *options) {
		o.idioms = idioms
	}
}

func WithGreedyChains(greedy bool) Option {
	return func(o *options) {
		o.greedy = greedy
	}
}

// WithNeutralizedStrings controls whether "//" inside string literals is
// rewritten before abstraction. It is on by default; turning it off keeps
// literal spellings and source offsets intact.
func WithNeutralizedStrings(neutralize bool) Option {
	return func(o *options) {
		o.neutralize = neutralize
	}
}

// WithFile names the source in error positions.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// Abstract abstracts one Java source.
func Abstract(ctx context.Context, src []byte, opts ...Option) (*abstraction.Result, error) {
	o := newOptions(opts)

	cleaned, err := o.clean(src)
	if err != nil {
		return nil, err
	}

	decls, err := o.extract(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Tokenize(cleaned, o.file)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	var engineOpts []abstraction.Option
	if o.greedy {
		engineOpts = append(engineOpts, abstraction.WithGreedyChains())
	}
	res := abstraction.New(decls, o.idioms, engineOpts...).Run(tokens)

	log.Debug("abstracted source",
		"file", o.file,
		"granularity", o.granularity.String(),
		"tokens", len(tokens),
		"entries", res.Mapping.Len())
	return res, nil
}

// Tokens returns the token stream Abstract would feed to the engine.
func Tokens(src []byte, opts ...Option) ([]token.Token, error) {
	o := newOptions(opts)
	cleaned, err := o.clean(src)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(cleaned, o.file)
}

// Declarations returns the declaration sets Abstract would use.
func Declarations(ctx context.Context, src []byte, opts ...Option) (abstraction.Declarations, error) {
	o := newOptions(opts)
	cleaned, err := o.clean(src)
	if err != nil {
		return abstraction.Declarations{}, err
	}
	return o.extract(ctx, cleaned)
}

func (o *options) clean(src []byte) ([]byte, error) {
	cleanOpts := []clean.Option{clean.WithFile(o.file)}
	if !o.neutralize {
		cleanOpts = append(cleanOpts, clean.KeepSlashes())
	}
	cleaned, err := clean.Clean(src, cleanOpts...)
	if err != nil {
		return nil, fmt.Errorf("clean source: %w", err)
	}
	return cleaned, nil
}

func (o *options) extract(ctx context.Context, cleaned []byte) (abstraction.Declarations, error) {
	decls, err := extract.Extract(ctx, cleaned, o.granularity, extract.WithFile(o.file))
	if err != nil {
		return abstraction.Declarations{}, fmt.Errorf("extract declarations: %w", err)
	}
	return decls, nil
}

// AbstractFile abstracts input and writes the text to output and the mapping
// to output+".map". Missing parent directories of output are created.
func AbstractFile(ctx context.Context, input, output string, opts ...Option) (*abstraction.Result, error) {
	src, err := ReadSource(input)
	if err != nil {
		return nil, err
	}

	res, err := Abstract(ctx, src, append([]Option{WithFile(input)}, opts...)...)
	if err != nil {
		return nil, err
	}

	if err := WriteResult(output, res); err != nil {
		return nil, err
	}
	log.Info("wrote abstraction", "input", input, "output", output, "entries", res.Mapping.Len())
	return res, nil
}

// ReadSource reads a Java file, reporting a missing file as ErrInputNotFound.
func ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return src, nil
}

// WriteResult writes the abstracted text and its sidecar mapping file.
func WriteResult(output string, res *abstraction.Result) error {
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(output, []byte(res.Text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	var buf bytes.Buffer
	if err := res.Mapping.WriteSidecar(&buf); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(output+SidecarExt, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output+SidecarExt, err)
	}
	return nil
}
