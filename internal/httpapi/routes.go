// Package httpapi exposes the search engines over HTTP. Route handlers
// translate query strings into structured queries and leave all search
// semantics to the engines.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
	"github.com/tripline/catsearch/internal/search"
)

// Server holds one search engine per catalog entity.
type Server struct {
	engines map[string]*search.Engine
}

// NewServer creates the HTTP server over the given engines, keyed by
// entity path segment ("products", "events").
func NewServer(engines map[string]*search.Engine) *Server {
	return &Server{engines: engines}
}

// Router wires all HTTP routes.
// gorilla/mux: method-based routing and URL pattern matching.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/{entity}").Subrouter()
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)
	api.HandleFunc("/invalidate", s.handleInvalidate).Methods(http.MethodPost)
	return r
}

// searchResponse is the JSON body of a search call.
type searchResponse struct {
	Items []catalog.Record `json:"items"`
	Total int              `json:"total"`
}

// suggestResponse is the JSON body of a suggest call.
type suggestResponse struct {
	Items []catalog.Record `json:"items"`
}

// errorResponse is the JSON body of any failed call.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engine(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown catalog"})
		return
	}

	query, err := parseSearchParams(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: cerr.ErrCodeInvalidQuery})
		return
	}

	page, err := engine.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if page.Items == nil {
		page.Items = []catalog.Record{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Items: page.Items, Total: page.Total})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engine(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown catalog"})
		return
	}

	limit, err := parseInt(r.URL.Query().Get("limit"), "limit")
	if err != nil || limit < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "limit must be a non-negative integer", Code: cerr.ErrCodeInvalidQuery})
		return
	}

	items, err := engine.Suggest(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if items == nil {
		items = []catalog.Record{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Items: items})
}

func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engine(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown catalog"})
		return
	}
	engine.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) engine(r *http.Request) (*search.Engine, bool) {
	e, ok := s.engines[mux.Vars(r)["entity"]]
	return e, ok
}

// writeError maps engine errors to HTTP statuses. A backing-store outage
// is a 503 so callers can distinguish it from a legitimately empty page.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cerr.ErrInvalidQuery):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: cerr.GetCode(err)})
	case errors.Is(err, cerr.ErrSourceUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "search temporarily unavailable", Code: cerr.GetCode(err)})
	default:
		slog.Error("search request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}
