// Package server serves the dashboard pages and their JSON data contracts.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Options tune the views.
type Options struct {
	// ViralTopN is the default ranking size of the viral tweets view.
	ViralTopN int
}

// Server is the HTTP server for the dashboard.
type Server struct {
	engine *analytics.Engine
	opts   Options
	pages  map[string]*template.Template
	mux    *http.ServeMux
}

// New creates a new Server answering from engine.
func New(engine *analytics.Engine, opts Options) (*Server, error) {
	if opts.ViralTopN <= 0 {
		opts.ViralTopN = 10
	}

	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"pct":      percent,
		"nonblank": nonBlank,
		"join":     strings.Join,
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "accounts.html", "account.html", "topics.html", "viral.html", "compare.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{engine: engine, opts: opts, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	s.mux.Handle("GET /metrics", metrics.Handler())

	// Pages
	s.handle("GET /{$}", "/", s.handleIndex)
	s.handle("GET /accounts", "/accounts", s.handleAccounts)
	s.handle("GET /accounts/{username}", "/accounts/{username}", s.handleAccount)
	s.handle("GET /topics", "/topics", s.handleTopics)
	s.handle("GET /viral", "/viral", s.handleViral)
	s.handle("GET /compare", "/compare", s.handleCompare)

	// JSON data contracts
	s.handle("GET /api/dashboard", "/api/dashboard", s.apiDashboard)
	s.handle("GET /api/accounts", "/api/accounts", s.apiAccounts)
	s.handle("GET /api/accounts/{username}/tweets", "/api/accounts/{username}/tweets", s.apiAccountTweets)
	s.handle("GET /api/tweets/viral", "/api/tweets/viral", s.apiViral)
	s.handle("GET /api/topics", "/api/topics", s.apiTopics)
	s.handle("GET /api/compare", "/api/compare", s.apiCompare)
}

// handle registers h with request metrics labelled by route.
func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.Handle(pattern, instrument(route, h))
}

// render executes a page into a buffer before writing it.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		zap.S().Errorf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		zap.S().Errorf("Error rendering template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// percent scales n against max for bar widths.
func percent(n, max int) int {
	if max <= 0 {
		return 0
	}
	return n * 100 / max
}

func nonBlank(items []string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// Serve starts the HTTP server on 127.0.0.1:port and shuts it down when
// ctx is cancelled.
func Serve(ctx context.Context, engine *analytics.Engine, opts Options, port int) error {
	srv, err := New(engine, opts)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Server listening on http://%s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		zap.S().Info("Shutting down server...")
		return httpSrv.Shutdown(shutdownCtx)
	}
}
