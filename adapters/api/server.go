package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sensemaker/app"
	"sensemaker/domain/core"
	"sensemaker/ports"
)

// Server is the HTTP surface over the evaluator service.
type Server struct {
	router    *chi.Mux
	evaluator *app.EvaluatorService
	repo      ports.SolutionRepository
	http      *http.Server
}

// NewServer creates the API server. repo may be nil when run
// persistence is not configured; the run read endpoint then reports
// 501.
func NewServer(port string, evaluator *app.EvaluatorService, repo ports.SolutionRepository) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		evaluator: evaluator,
		repo:      repo,
	}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/evaluate", s.handleEvaluate)
	s.router.Get("/api/runs/{id}", s.handleRun)

	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	return s
}

// ListenAndServe starts serving until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	log.Printf("[API] listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.ParameterSets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one parameter set is required")
		return
	}

	store, err := req.Store()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), store, req.ParameterSets)
	if err != nil {
		if core.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[API] evaluation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	ids := make([]int, 0, len(result.Sets))
	for id := range result.Sets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	writeJSON(w, http.StatusOK, toResponse(store, result, ids))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusNotImplemented, "run persistence is not configured")
		return
	}
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sets, err := s.repo.ListByRun(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[API] listing run %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "listing run failed")
		return
	}

	writeJSON(w, http.StatusOK, toRunResponse(runID, sets))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
