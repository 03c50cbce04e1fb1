package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/metrics"
	"github.com/3-lines-studio/pagesmith/internal/output"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
	"github.com/3-lines-studio/pagesmith/internal/workspace"
)

const maxDSLBytes = 1 << 20

type PreviewConfig struct {
	Site     *usecase.SiteService
	Document *workspace.Document
	Hub      *ReloadHub
	Theme    core.Theme
	Settings core.Settings
	Metrics  *metrics.Metrics
	Logger   logger.Logger
}

// PreviewServer serves the live preview of a workspace document along with
// its generated artifacts and DSL text.
type PreviewServer struct {
	site     *usecase.SiteService
	doc      *workspace.Document
	hub      *ReloadHub
	theme    core.Theme
	settings core.Settings
	metrics  *metrics.Metrics
	log      logger.Logger
	router   chi.Router
}

func NewPreviewServer(cfg PreviewConfig) *PreviewServer {
	if cfg.Hub == nil {
		cfg.Hub = NewReloadHub()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	s := &PreviewServer{
		site:     cfg.Site,
		doc:      cfg.Document,
		hub:      cfg.Hub,
		theme:    cfg.Theme,
		settings: cfg.Settings,
		metrics:  cfg.Metrics,
		log:      cfg.Logger,
	}

	s.doc.OnChange(func(version uint64) {
		s.log.Debug("document changed", map[string]interface{}{"version": version})
		s.hub.Notify()
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.servePreview)
	r.Handle("/events", s.hub)
	r.Get("/dsl", s.serveDSL)
	r.Put("/dsl", s.importDSL)
	r.Get("/site/{file}", s.serveArtifact)
	r.Get("/report", s.serveReport)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	s.router = r
	return s
}

func (s *PreviewServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

func (s *PreviewServer) Hub() *ReloadHub {
	return s.hub
}

// Run serves on addr until ctx is done. The reload stream is long lived, so
// only header reads are bounded.
func (s *PreviewServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// open event streams never finish, so there is nothing to drain
	if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *PreviewServer) input() usecase.GenerateInput {
	return usecase.GenerateInput{
		Instances: s.doc.Snapshot(),
		Theme:     s.theme,
		Settings:  s.settings,
	}
}

func (s *PreviewServer) servePreview(w http.ResponseWriter, req *http.Request) {
	out := s.site.Preview(s.input())
	if out.Error != nil {
		s.serveError(w, out.Error)
		return
	}
	s.serveHTML(w, AppendReloadScript(out.HTML))
}

func (s *PreviewServer) serveDSL(w http.ResponseWriter, req *http.Request) {
	text, err := s.site.ExportDSL(s.doc.Snapshot())
	if err != nil {
		s.log.WithError(err).Error("dsl export failed", nil)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

type importResponse struct {
	Version uint64      `json:"version,omitempty"`
	Blocks  int         `json:"blocks"`
	Errors  []dsl.Error `json:"errors,omitempty"`
}

func (s *PreviewServer) importDSL(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxDSLBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read body: %v", err), http.StatusRequestEntityTooLarge)
		return
	}

	if errs := s.doc.Import(s.site, string(body)); len(errs) > 0 {
		s.writeJSON(w, http.StatusUnprocessableEntity, importResponse{Errors: errs})
		return
	}

	s.writeJSON(w, http.StatusOK, importResponse{
		Version: s.doc.Version(),
		Blocks:  len(s.doc.Snapshot()),
	})
}

func (s *PreviewServer) serveArtifact(w http.ResponseWriter, req *http.Request) {
	file := chi.URLParam(req, "file")
	if _, ok := output.Artifact(core.GeneratedOutput{}, file); !ok {
		http.NotFound(w, req)
		return
	}

	out := s.site.Generate(s.input())
	if out.Error != nil {
		s.serveError(w, out.Error)
		return
	}

	body, _ := output.Artifact(out.Output, file)
	etag := `"` + output.Fingerprint(body) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if req.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(file))
	_, _ = io.WriteString(w, body)
}

type reportResponse struct {
	Blocks      int               `json:"blocks"`
	Warnings    []string          `json:"warnings"`
	Diagnostics []core.Diagnostic `json:"diagnostics"`
}

func (s *PreviewServer) serveReport(w http.ResponseWriter, req *http.Request) {
	in := s.input()
	out := s.site.Generate(in)
	if out.Error != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": out.Error.Error()})
		return
	}

	resp := reportResponse{
		Blocks:      len(in.Instances),
		Warnings:    out.Warnings,
		Diagnostics: out.Diagnostics,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []core.Diagnostic{}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *PreviewServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("failed to write response", nil)
	}
}

func (s *PreviewServer) serveHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

func (s *PreviewServer) serveError(w http.ResponseWriter, err error) {
	var buf bytes.Buffer
	if tmplErr := errorTemplate.Execute(&buf, errorData{Message: err.Error()}); tmplErr != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<!doctype html><html><body><pre>"+html.EscapeString(err.Error())+"</pre></body></html>")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(AppendReloadScript(buf.String())))
}

type errorData struct {
	Message string
}

var errorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Preview error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Preview failed</h1>
    <pre>{{.Message}}</pre>
</body>
</html>`))
