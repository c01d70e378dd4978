// Package api exposes the attribute pipeline over HTTP.
//
// The server is a thin JSON layer over [pipeline.Runner] and [store.Store]:
// compute requests carry a hierarchy document plus pipeline options, and
// named hierarchies can be saved, listed, fetched, and deleted.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/canopyhq/canopy/pkg/errors"
	"github.com/canopyhq/canopy/pkg/graph"
	"github.com/canopyhq/canopy/pkg/pipeline"
	"github.com/canopyhq/canopy/pkg/store"
)

// Server handles HTTP requests for the attribute pipeline.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server. A nil runner gets a cacheless default, a nil
// store gets an in-memory one, and a nil logger gets the package default.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compute", s.handleCompute)
		r.Route("/hierarchies", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Get("/{name}", s.handleGet)
			r.Put("/{name}", s.handlePut)
			r.Delete("/{name}", s.handleDelete)
		})
	})
	return r
}

type computeRequest struct {
	Document graph.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

type computeResponse struct {
	RunID     string            `json:"run_id"`
	TreeHash  string            `json:"tree_hash"`
	Document  graph.Document    `json:"document"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	CacheInfo map[string]bool   `json:"cache_info"`
	Stats     computeStats      `json:"stats"`
}

type computeStats struct {
	NumVertices   int     `json:"num_vertices"`
	NumLeaves     int     `json:"num_leaves"`
	LoadMillis    float64 `json:"load_ms"`
	ComputeMillis float64 `json:"compute_ms"`
	RenderMillis  float64 `json:"render_ms"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	req.Options.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), req.Document, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if name := req.Options.SaveAs; name != "" {
		result.Document.Name = name
		if err := s.store.Save(r.Context(), result.Document); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	// The JSON artifact duplicates the document field, so drop it.
	artifacts := result.Artifacts
	delete(artifacts, pipeline.FormatJSON)

	writeJSON(w, http.StatusOK, computeResponse{
		RunID:     result.RunID,
		TreeHash:  result.TreeHash,
		Document:  result.Document,
		Artifacts: artifacts,
		CacheInfo: result.CacheInfo,
		Stats: computeStats{
			NumVertices:   result.Stats.NumVertices,
			NumLeaves:     result.Stats.NumLeaves,
			LoadMillis:    float64(result.Stats.LoadTime.Microseconds()) / 1000,
			ComputeMillis: float64(result.Stats.ComputeTime.Microseconds()) / 1000,
			RenderMillis:  float64(result.Stats.RenderTime.Microseconds()) / 1000,
		},
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"hierarchies": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	doc, err := graph.Read(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.Name = chi.URLParam(r, "name")

	// Reject documents that do not describe a valid hierarchy.
	if _, err := doc.Tree(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": doc.Name})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidShape, errors.ErrCodeInvalidHierarchy,
		errors.ErrCodeInvalidAttribute, errors.ErrCodeInvalidFormat, errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
