// Package extract collects the type, method and annotation names a Java
// fragment mentions. The abstraction engine uses these sets to tell types and
// callable methods apart from variables.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/java/token"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// A single member is parsed inside this synthetic class. The opening line
// stands alone so reported rows only need a fixed shift.
const (
	memberWrapperOpen  = "class __src2abs__ {\n"
	memberWrapperClose = "\n}\n"
)

var language = sitter.NewLanguage(java.Language())

// Problem is one syntax error found while parsing.
type Problem struct {
	Pos     token.Position
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Pos, p.Message)
}

// ParseError reports every problem of a source that did not parse cleanly.
type ParseError struct {
	Problems []Problem
}

func (e *ParseError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("parse java source: %s", strings.Join(lines, "; "))
}

type Option func(*extractor)

// WithFile sets the file name used in problem positions.
func WithFile(path string) Option {
	return func(e *extractor) {
		e.file = path
	}
}

type extractor struct {
	file       string
	lineOffset int
	source     []byte
	decls      abstraction.Declarations
}

// Extract parses src at the given granularity and returns the names found:
// every type reference, every declared or invoked method name and every
// annotation name. Declaring a class does not make its name a type; only
// references in type position do.
func Extract(ctx context.Context, src []byte, g Granularity, opts ...Option) (abstraction.Declarations, error) {
	e := &extractor{
		decls: abstraction.Declarations{
			Types:       abstraction.NewSet(),
			Methods:     abstraction.NewSet(),
			Annotations: abstraction.NewSet(),
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := ctx.Err(); err != nil {
		return abstraction.Declarations{}, err
	}

	switch g {
	case Class:
		e.source = src
	case Method:
		e.source = make([]byte, 0, len(memberWrapperOpen)+len(src)+len(memberWrapperClose))
		e.source = append(e.source, memberWrapperOpen...)
		e.source = append(e.source, src...)
		e.source = append(e.source, memberWrapperClose...)
		e.lineOffset = 1
	default:
		return abstraction.Declarations{}, fmt.Errorf("%w: %d", ErrGranularity, int(g))
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(language); err != nil {
		return abstraction.Declarations{}, fmt.Errorf("set java language: %w", err)
	}

	tree := parser.Parse(e.source, nil)
	if tree == nil {
		return abstraction.Declarations{}, errors.New("parse java source: parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return abstraction.Declarations{}, &ParseError{Problems: e.problems(root)}
	}

	walkTree(root, e.collect)
	return e.decls, nil
}

func (e *extractor) collect(n *sitter.Node) bool {
	switch n.Kind() {
	case "type_identifier":
		e.decls.Types.Add(e.text(n))
	case "method_declaration", "method_invocation":
		if name := n.ChildByFieldName("name"); name != nil {
			e.decls.Methods.Add(e.text(name))
		}
	case "method_reference":
		// Type::method; the constructor form Type::new ends in a keyword.
		if count := n.ChildCount(); count > 0 {
			if last := n.Child(count - 1); last != nil && last.Kind() == "identifier" {
				e.decls.Methods.Add(e.text(last))
			}
		}
	case "marker_annotation", "annotation":
		name := n.ChildByFieldName("name")
		// @java.lang.Override is recorded by its simple name, the form the
		// walker matches after the marker.
		if name != nil && name.Kind() == "scoped_identifier" {
			name = name.ChildByFieldName("name")
		}
		if name != nil {
			e.decls.Annotations.Add(e.text(name))
		}
	}
	return true
}

func (e *extractor) problems(root *sitter.Node) []Problem {
	var problems []Problem
	walkTree(root, func(n *sitter.Node) bool {
		switch {
		case n.IsMissing():
			problems = append(problems, Problem{
				Pos:     e.position(n),
				Message: fmt.Sprintf("missing %s", n.Kind()),
			})
			return false
		case n.IsError():
			problems = append(problems, Problem{
				Pos:     e.position(n),
				Message: fmt.Sprintf("unexpected %q", abbreviate(e.text(n))),
			})
			return false
		}
		return n.HasError()
	})
	if len(problems) == 0 {
		problems = append(problems, Problem{Pos: e.position(root), Message: "syntax error"})
	}
	return problems
}

func (e *extractor) position(n *sitter.Node) token.Position {
	p := n.StartPosition()
	line := int(p.Row) + 1 - e.lineOffset
	if line < 1 {
		line = 1
	}
	offset := int(n.StartByte())
	if e.lineOffset > 0 {
		offset -= len(memberWrapperOpen)
		if offset < 0 {
			offset = 0
		}
	}
	return token.Position{
		File:   e.file,
		Offset: offset,
		Line:   line,
		Column: int(p.Column) + 1,
	}
}

func (e *extractor) text(n *sitter.Node) string {
	return n.Utf8Text(e.source)
}

func abbreviate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}

// walkTree visits node and its descendants depth first. Returning false from
// visit skips the children of the visited node.
func walkTree(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visit)
	}
}
