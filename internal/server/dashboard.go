package server

import (
	"net/http"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/b0ase/path402/apps/baguette/internal/view"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
)

func writeHTML(w http.ResponseWriter, code int, n g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	n.Render(w)
}

// tabParam reads ?tab=, defaulting to the price tab.
func tabParam(r *http.Request) (view.Tab, error) {
	v := r.URL.Query().Get("tab")
	if v == "" {
		return view.TabPrice, nil
	}
	return view.ParseTab(v)
}

func (s *Server) votingNode() g.Node {
	return voting.Render(s.panel.Status(), voting.Charities(), s.panel.Period())
}

// handleIndex serves the page shell in its loading state. The page script
// then loads the dashboard fragment.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tab, err := tabParam(r)
	if err != nil {
		tab = view.TabPrice
	}
	writeHTML(w, http.StatusOK, view.Page(view.New().Render(nil), "/fragments/dashboard?tab="+string(tab)))
}

// handleDashboardFragment runs one dashboard load and renders whichever
// branch it ends in.
func (s *Server) handleDashboardFragment(w http.ResponseWriter, r *http.Request) {
	tab, err := tabParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d := view.New()
	d.SelectTab(tab)
	code := http.StatusOK
	if err := d.Load(r.Context(), s.source); err != nil {
		s.log.Warn("dashboard fetch failed", zap.Error(err))
		code = http.StatusServiceUnavailable
	}
	writeHTML(w, code, d.Render(s.votingNode()))
}

func (s *Server) handleVotingFragment(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.votingNode())
}
