// Package lsp is a language server that reports lexer and parser errors to
// editors as diagnostics while a file is being edited.
package lsp

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cae/config"
	"github.com/dhamidi/cae/frontend"
	"github.com/dhamidi/cae/source"
)

const lsName = "cae"

// cacheSize bounds the diagnostics kept for previously seen document texts.
const cacheSize = 128

var log = commonlog.GetLogger("cae.lsp")

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	cfg     *config.Config

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string

	// Editors often resend an unchanged text, on save or undo.
	results *lru.Cache
}

type cacheKey struct {
	uri  protocol.DocumentUri
	text string
}

func NewServer(version string, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	results, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	s := &Server{
		version:   version,
		cfg:       cfg,
		documents: make(map[protocol.DocumentUri]string),
		results:   results,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
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
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	s.mu.Lock()
	text, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if ok {
		s.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// update stores the new text of a document and publishes its diagnostics.
func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	diagnostics := s.diagnose(uri, text)
	log.Debugf("%s: publishing %d diagnostics", uri, len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	key := cacheKey{uri: uri, text: text}
	if cached, ok := s.results.Get(key); ok {
		log.Debugf("%s: diagnostics unchanged", uri)
		return cached.([]protocol.Diagnostic)
	}

	result := frontend.Process(source.NewBuffer(uri, text), s.cfg.ParserOptions()...)
	diagnostics := []protocol.Diagnostic{}
	for _, d := range result.Diagnostics() {
		diagnostics = append(diagnostics, toProtocolDiagnostic(uri, d))
	}
	s.results.Add(key, diagnostics)
	return diagnostics
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
