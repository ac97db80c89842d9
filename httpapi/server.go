// Package httpapi exposes domdrift over HTTP: upload two snapshots, get a
// report. When a snapshot store is attached it also serves stored snapshot
// metadata and sanitized previews.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/domdrift/drift"
	"github.com/hazyhaar/domdrift/report"
	"github.com/hazyhaar/domdrift/snapstore"
	"github.com/hazyhaar/domdrift/treemodel"
)

// maxUploadBytes bounds one multipart snapshot part.
const maxUploadBytes = 32 << 20

// Config for the HTTP server.
type Config struct {
	Catalogs drift.Catalogs
	Store    *snapstore.Store // optional; enables the /v1/snapshots routes
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if len(c.Catalogs.Attributes) == 0 && len(c.Catalogs.Landmarks) == 0 && len(c.Catalogs.Features) == 0 {
		c.Catalogs = drift.DefaultCatalogs()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Server is the domdrift HTTP surface.
type Server struct {
	cfg      Config
	router   chi.Router
	sanitize *bluemonday.Policy
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	cfg.defaults()
	s := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		sanitize: bluemonday.UGCPolicy(),
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/compare", s.handleCompare)
	if cfg.Store != nil {
		s.router.Get("/v1/snapshots", s.handleListSnapshots)
		s.router.Get("/v1/snapshots/{id}/preview", s.handlePreview)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompare accepts multipart fields "before" and "after" and answers
// with the analysis result: JSON by default, the HTML report when the
// client asks for text/html.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	before, err := formSnapshot(r, "before")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	after, err := formSnapshot(r, "after")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := drift.CompareWith(before, after, s.cfg.Catalogs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, treemodel.ErrParse) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	s.cfg.Logger.Info("httpapi: compare",
		"changed", len(res.ChangedSelectors),
		"anchors", len(res.RecommendedAnchors))

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.NewHTMLSink(w).Write(res); err != nil {
			s.cfg.Logger.Error("httpapi: render report", "error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.cfg.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": list})
}

// handlePreview serves a stored snapshot's markup sanitized for in-browser
// display. Captured pages are untrusted input; scripts and event handlers
// must not run in the operator's browser.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.cfg.Store.GetByID(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, snapstore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.sanitize.SanitizeBytes(snap.HTML))
}

// formSnapshot reads one multipart snapshot field. A missing or empty part
// is a source failure surfaced before any analysis starts.
func formSnapshot(r *http.Request, field string) (string, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return "", errors.New("missing snapshot part: " + field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return "", errors.New("read snapshot part: " + field)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", errors.New("empty snapshot part: " + field)
	}
	return string(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
