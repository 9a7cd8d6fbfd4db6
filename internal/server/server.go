// Package server serves live previews of the asset grid and the media catalog.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/assetgrid/pkg/cache"
	"github.com/matzehuels/assetgrid/pkg/catalog"
	apperrors "github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/export"
	"github.com/matzehuels/assetgrid/pkg/observability"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
	"github.com/matzehuels/assetgrid/pkg/render/sink"
)

const shutdownTimeout = 5 * time.Second

var contentTypes = map[string]string{
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatHTML:  "text/html; charset=utf-8",
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatGraph: "image/svg+xml",
}

// Server renders artifacts on request through a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router

	mu   sync.RWMutex
	cats []catalog.Category
	doc  *catalog.Document
}

// New builds a server for the given catalogs.
func New(runner *pipeline.Runner, opts pipeline.Options, cats []catalog.Category, doc *catalog.Document, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, opts: opts, logger: logger, cats: cats, doc: doc}
	s.router = s.routes()
	return s
}

// SetCatalog swaps the served catalogs. Nil arguments keep the current value.
func (s *Server) SetCatalog(cats []catalog.Category, doc *catalog.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cats != nil {
		s.cats = cats
	}
	if doc != nil {
		s.doc = doc
	}
}

func (s *Server) catalogs() ([]catalog.Category, *catalog.Document) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cats, s.doc
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.artifact(pipeline.FormatHTML))
	r.Get("/grid.svg", s.artifact(pipeline.FormatSVG))
	r.Get("/grid.png", s.artifact(pipeline.FormatPNG))
	r.Get("/graph.svg", s.artifact(pipeline.FormatGraph))
	r.Get("/layout.json", s.artifact(pipeline.FormatJSON))
	r.Get("/catalog.json", s.handleCatalog)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/assets", s.handleAssets)
		r.Get("/assets/{section}", s.handleAssets)
		r.Get("/categories", s.handleCategories)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) artifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.opts
		opts.Formats = []string{format}
		if format == pipeline.FormatPNG {
			if v := r.URL.Query().Get("scale"); v != "" {
				scale, err := strconv.ParseFloat(v, 64)
				if err == nil {
					err = pipeline.ValidateScale(scale)
				}
				if err != nil {
					writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "scale must be a number in (0, %d]", sink.MaxScale))
					return
				}
				opts.Scale = scale
			}
		}

		cats, _ := s.catalogs()
		res, err := s.runner.Execute(r.Context(), cats, opts)
		if err != nil {
			s.logger.Error("render failed", "format", format, "error", err)
			writeError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeRenderFailed, err, "render %s", format))
			return
		}

		data := res.Artifacts[format]
		etag := `"` + cache.Hash(data)[:16] + `"`
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(data)
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_, doc := s.catalogs()
	data, err := export.MarshalJSON(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	_, doc := s.catalogs()
	section := chi.URLParam(r, "section")
	if section != "" {
		if _, ok := doc.Section(section); !ok {
			writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown section %q", section))
			return
		}
	}

	records := []catalog.Record{}
	for _, rec := range doc.Records() {
		if section == "" || rec.Section == section {
			records = append(records, rec)
		}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, _ := s.catalogs()
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: apperrors.UserMessage(err), Code: string(apperrors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
