package http

import (
	"net/http"

	"paisa/internal/core"
	"paisa/internal/services"
)

type onboardingRequest struct {
	BankBalance string `json:"bankBalance,omitempty"`
	CashBalance string `json:"cashBalance,omitempty"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, as *apiSession) {
	writeJSON(w, http.StatusOK, toHomeJSON(s.reporter.Home(as.state)))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request, as *apiSession) {
	code := as.state.Preferences().Currency
	writeJSON(w, http.StatusOK, toAnalyticsJSON(s.reporter.Analytics(as.state), code))
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req onboardingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var svcReq services.OnboardingRequest
	if req.BankBalance != "" {
		amount, err := core.ParseAmount(req.BankBalance)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		svcReq.BankBalance = amount
	}
	if req.CashBalance != "" {
		amount, err := core.ParseAmount(req.CashBalance)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		svcReq.CashBalance = amount
	}

	if err := s.onboarding.Complete(r.Context(), as.state, svcReq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPreferencesJSON(as.state.Preferences()))
}

// handleReset wipes all wallets, categories and transactions. The
// identity record survives so the account can onboard again.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, as *apiSession) {
	if err := as.state.Reset(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
