package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/market"
	"github.com/b0ase/path402/apps/baguette/internal/metrics"
	"github.com/b0ase/path402/apps/baguette/internal/view"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /fragments/dashboard", s.handleDashboardFragment)
	mux.HandleFunc("GET /fragments/voting", s.handleVotingFragment)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/charities", s.handleCharities)
	mux.HandleFunc("GET /api/wallet", s.handleWallet)
	mux.HandleFunc("POST /api/wallet/connect", s.handleWalletConnect)
	mux.HandleFunc("POST /api/votes/{id}", s.handleVote)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	id := s.daemon.InstanceID()
	writeJSON(w, map[string]interface{}{
		"status":    "ok",
		"version":   s.daemon.Version(),
		"instance":  id[:min(8, len(id))],
		"uptime_ms": s.daemon.Uptime().Milliseconds(),
		"source":    s.daemon.SourceKind(),
		"wallet":    s.panel.Status().State,
	})
}

type dashboardResponse struct {
	*market.DashboardData
	Dominance market.Dominance `json:"dominance"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := view.New()
	if err := d.Load(r.Context(), s.source); err != nil {
		s.log.Warn("dashboard fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, d.Err())
		return
	}
	writeJSON(w, dashboardResponse{DashboardData: d.Data(), Dominance: d.Dominance()})
}

type charityTally struct {
	voting.Charity
	Percentage float64 `json:"percentage"`
}

func (s *Server) handleCharities(w http.ResponseWriter, r *http.Request) {
	list := voting.Charities()
	total := voting.TotalVotes(list)
	tallies := make([]charityTally, 0, len(list))
	for _, c := range list {
		tallies = append(tallies, charityTally{Charity: c, Percentage: voting.Percentage(c.Votes, total)})
	}
	writeJSON(w, map[string]interface{}{
		"charities":  tallies,
		"totalVotes": total,
		"period":     s.panel.Period(),
		"selected":   s.panel.Status().Selected,
	})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.panel.Status())
}

func (s *Server) handleWalletConnect(w http.ResponseWriter, r *http.Request) {
	st, err := s.panel.Connect(r.Context())
	if err != nil {
		writeVotingError(w, err)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "charity id must be an integer")
		return
	}
	st, err := s.panel.Vote(r.Context(), id)
	if err != nil {
		writeVotingError(w, err)
		return
	}
	writeJSON(w, st)
}

// votingStatus maps panel errors onto HTTP status codes.
func votingStatus(err error) int {
	switch {
	case errors.Is(err, voting.ErrNoProvider):
		return http.StatusServiceUnavailable
	case errors.Is(err, voting.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, voting.ErrNotConnected):
		return http.StatusForbidden
	case errors.Is(err, voting.ErrUnknownCharity):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// writeVotingError reports a panel error. Provider failures get a generic
// message; their detail is already logged by the panel.
func writeVotingError(w http.ResponseWriter, err error) {
	code := votingStatus(err)
	msg := err.Error()
	if code == http.StatusBadGateway {
		msg = "wallet request failed"
	}
	body := map[string]string{"error": msg}
	if notice := voting.Notice(err); notice != "" {
		body["notice"] = notice
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
