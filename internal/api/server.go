package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/chat"
	"github.com/MikeSquared-Agency/scout/internal/openai"
	"github.com/MikeSquared-Agency/scout/internal/relay"
	"github.com/MikeSquared-Agency/scout/internal/search"
)

const (
	errInternal     = "Internal server error"
	errSearchFailed = "search failed"
)

// Relay forwards one validated chat request to the provider.
type Relay interface {
	Configured() bool
	Send(ctx context.Context, req chat.Request) (*chat.Response, error)
}

// Searcher runs the extraction tasks behind the search and insights routes.
type Searcher interface {
	Search(ctx context.Context, query string, pool []candidate.Candidate) (*search.Result, error)
	Insights(ctx context.Context, c candidate.Candidate, labels []string) search.Insights
}

type Server struct {
	router     *chi.Mux
	http       *http.Server
	relay      Relay
	searcher   Searcher
	candidates candidate.Source
	logger     *slog.Logger
}

func NewServer(port int, rl Relay, searcher Searcher, candidates candidate.Source, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{
		router:     router,
		relay:      rl,
		searcher:   searcher,
		candidates: candidates,
		logger:     logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Post("/chat", s.chat)
		r.Post("/search", s.search)
		r.Post("/candidates/{id}/insights", s.insights)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if !s.relay.Configured() {
		s.writeChatError(w, r, relay.ErrNotConfigured)
		return
	}

	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.relay.Send(r.Context(), req)
	if err != nil {
		s.writeChatError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *relay.ValidationError
		aerr *openai.APIError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, relay.ErrNotConfigured):
		s.logger.Error("chat request rejected", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.As(err, &aerr):
		status := aerr.Status
		if status < 400 {
			status = http.StatusInternalServerError
		}
		s.logger.Warn("provider error", "status", aerr.Status, "code", aerr.Code, "error", aerr.Message)
		writeJSON(w, status, chat.ErrorBody{Error: aerr.Message, Code: aerr.Code})
	default:
		s.logger.Error("chat request failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, errInternal)
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	pool, err := s.candidates.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list candidates", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	res, err := s.searcher.Search(r.Context(), query, pool)
	switch {
	case errors.Is(err, search.ErrNoCriteria):
		writeError(w, http.StatusUnprocessableEntity, search.ErrNoCriteria.Error())
		return
	case err != nil:
		s.logger.Error("search failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadGateway, errSearchFailed)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type insightsRequest struct {
	Criteria []string `json:"criteria,omitempty"`
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	c, err := s.candidates.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, candidate.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("failed to load candidate", "error", err)
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, s.searcher.Insights(r.Context(), c, req.Criteria))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, chat.ErrorBody{Error: msg})
}
