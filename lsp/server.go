// Package lsp serves abstractions of open Java documents over the Language
// Server Protocol. Hovering a token shows its placeholder and the
// src2abs.abstract command returns the whole abstraction.
package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/abstractor"
	"github.com/dhamidi/src2abs/format"
	"github.com/dhamidi/src2abs/java/extract"
	"github.com/dhamidi/src2abs/java/lexer"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const (
	lsName = "src2abs"

	// CommandAbstract takes a document URI and returns its abstraction as
	// a JSON document.
	CommandAbstract = "src2abs.abstract"
)

var log = commonlog.GetLogger("src2abs.lsp")

type document struct {
	text   []byte
	result *abstraction.Result
	err    error
}

type Server struct {
	mu      sync.RWMutex
	docs    map[string]*document
	opts    []abstractor.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer abstracts documents with opts. String neutralization is always
// off so reported positions match the editor buffer.
func NewServer(version string, opts ...abstractor.Option) *Server {
	s := &Server{
		docs:    make(map[string]*document),
		opts:    append(append([]abstractor.Option(nil), opts...), abstractor.WithNeutralizedStrings(false)),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.textDocumentDidOpen,
		TextDocumentDidChange:   s.textDocumentDidChange,
		TextDocumentDidClose:    s.textDocumentDidClose,
		TextDocumentDidSave:     s.textDocumentDidSave,
		TextDocumentHover:       s.textDocumentHover,
		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandAbstract},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publish(ctx, params.TextDocument.URI, s.update(params.TextDocument.URI, []byte(params.TextDocument.Text)))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publish(ctx, params.TextDocument.URI, s.update(params.TextDocument.URI, []byte(textChange.Text)))
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	s.publish(ctx, params.TextDocument.URI, s.update(params.TextDocument.URI, []byte(*params.Text)))
	return nil
}

// update abstracts the new text of a document and returns the diagnostics
// describing why it could not be abstracted, if any.
func (s *Server) update(uri string, text []byte) []protocol.Diagnostic {
	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}
	opts := append([]abstractor.Option{abstractor.WithFile(path)}, s.opts...)
	res, err := abstractor.Abstract(context.Background(), text, opts...)

	s.mu.Lock()
	s.docs[uri] = &document{text: text, result: res, err: err}
	s.mu.Unlock()

	if err != nil {
		log.Debug("document not abstracted", "uri", uri, "error", err.Error())
		return diagnostics(err)
	}
	log.Debug("document abstracted", "uri", uri, "entries", res.Mapping.Len())
	return []protocol.Diagnostic{}
}

func (s *Server) publish(ctx *glsp.Context, uri string, diags []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (s *Server) document(uri string) *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.result == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	column := byteColumn(doc.text, line, int(params.Position.Character))
	unit, ok := doc.result.UnitAt(line, column)
	if !ok || unit.Original == unit.Abstracted {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("`%s` → `%s`", unit.Original, unit.Abstracted),
		},
		Range: &protocol.Range{
			Start: protocol.Position{
				Line:      protocol.UInteger(unit.Span.Start.Line - 1),
				Character: protocol.UInteger(utf16Column(doc.text, unit.Span.Start.Line, unit.Span.Start.Column)),
			},
			End: protocol.Position{
				Line:      protocol.UInteger(unit.Span.End.Line - 1),
				Character: protocol.UInteger(utf16Column(doc.text, unit.Span.End.Line, unit.Span.End.Column)),
			},
		},
	}, nil
}

func (s *Server) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != CommandAbstract {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("%s: want 1 argument (document URI), got %d", CommandAbstract, len(params.Arguments))
	}
	uri, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: document URI must be a string", CommandAbstract)
	}

	doc := s.document(uri)
	if doc == nil {
		return nil, fmt.Errorf("%s: document %s is not open", CommandAbstract, uri)
	}
	if doc.err != nil {
		return nil, doc.err
	}

	var buf bytes.Buffer
	if err := format.NewJSONEncoder(&buf).WithUnits().Encode(doc.result); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func diagnostics(err error) []protocol.Diagnostic {
	var diags []protocol.Diagnostic

	var parseErr *extract.ParseError
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &parseErr):
		for _, p := range parseErr.Problems {
			diags = append(diags, diagnostic(p.Pos.Line, p.Pos.Column, p.Message))
		}
	case errors.As(err, &lexErr):
		diags = append(diags, diagnostic(lexErr.Pos.Line, lexErr.Pos.Column, lexErr.Msg))
	default:
		diags = append(diags, diagnostic(1, 1, err.Error()))
	}
	return diags
}

func diagnostic(line, column int, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	pos := protocol.Position{
		Line:      protocol.UInteger(max(line-1, 0)),
		Character: protocol.UInteger(max(column-1, 0)),
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
