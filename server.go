package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/didip/tollbooth/v7"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"grocerscan/matcher"
	"grocerscan/scheduler"
)

func runServer() {
	a, err := newApp()
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.close()

	if a.repo != nil {
		refresher := scheduler.New(a.repo, func(ctx context.Context, query string) (*matcher.MatchResult, error) {
			res, _, err := a.lookup(ctx, query)
			return res, err
		}, a.cfg.RefreshSchedule, a.cfg.RefreshMaxAge)
		refresher.Start()
		defer refresher.Stop()
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", a.handleHealth).Methods("GET")
	r.HandleFunc("/api/lookup", a.handleLookup).Methods("GET")
	r.HandleFunc("/api/search-terms", a.handleSearchTerms).Methods("GET")
	r.HandleFunc("/api/score", a.handleScore).Methods("POST")
	r.HandleFunc("/api/history", a.handleHistory).Methods("GET")
	r.HandleFunc("/api/listings/search", a.handleIndexSearch).Methods("GET")

	limiter := tollbooth.NewLimiter(a.cfg.APIRateLimit, nil)
	limited := tollbooth.LimitHandler(limiter, r)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// Wrap with CORS and h2c for HTTP/2 support.
	h2cHandler := h2c.NewHandler(corsHandler.Handler(limited), &http2.Server{})

	log.Printf("Server listening on %s", a.cfg.Addr)
	if err := http.ListenAndServe(a.cfg.Addr, h2cHandler); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  a.repo != nil,
		"index":     a.idx != nil,
		"retailers": a.matcher.Config().Retailers,
	})
}

func (a *app) handleLookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	res, listings, err := a.lookup(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":      query,
		"found":      res != nil,
		"result":     res,
		"candidates": len(listings),
	})
}

func (a *app) handleSearchTerms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"terms": a.matcher.SearchTerms(query),
	})
}

func (a *app) handleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string `json:"query"`
		Candidate string `json:"candidate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" || req.Candidate == "" {
		writeError(w, http.StatusBadRequest, "query and candidate are required")
		return
	}
	writeJSON(w, http.StatusOK, a.matcher.ScoreBreakdown(req.Query, req.Candidate))
}

func (a *app) handleHistory(w http.ResponseWriter, r *http.Request) {
	if a.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "lookup history not configured")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := a.repo.History(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"history": entries,
	})
}

func (a *app) handleIndexSearch(w http.ResponseWriter, r *http.Request) {
	if a.idx == nil {
		writeError(w, http.StatusServiceUnavailable, "search index not configured")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	hits, err := a.idx.Search(query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"hits":  hits,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encoding response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
