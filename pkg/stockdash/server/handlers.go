package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/komsit37/stockdash/pkg/stockdash/filter"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, universe := s.controller.Render(r.Context(), r.URL.Query())
	data := s.newPage(d, universe)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Str("ticker", d.State.Ticker).Msg("Page render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	d, _ := s.controller.Render(r.Context(), r.URL.Query())
	s.writeJSON(w, http.StatusOK, d)
}

type tickersResponse struct {
	Filter  string   `json:"filter,omitempty"`
	Count   int      `json:"count"`
	Tickers []string `json:"tickers"`
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	expr := r.URL.Query().Get("filter")
	f, err := filter.Parse(expr)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tickers := filter.Apply(f, s.controller.Universe.Universe(r.Context()))
	s.writeJSON(w, http.StatusOK, tickersResponse{Filter: expr, Count: len(tickers), Tickers: tickers})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if l, ok := s.controller.Universe.(interface{ Live() bool }); ok {
		resp["universe"] = "fallback"
		if l.Live() {
			resp["universe"] = "live"
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode response")
	}
}
