package http

import (
	"net/http"

	"paisa/internal/core"
	"paisa/internal/currency"
)

type updatePreferencesRequest struct {
	Theme    *string `json:"theme"`
	DarkMode *bool   `json:"darkMode"`
	Currency *string `json:"currency"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request, as *apiSession) {
	writeJSON(w, http.StatusOK, toPreferencesJSON(as.state.Preferences()))
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req updatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := core.PreferencesPatch{DarkMode: req.DarkMode}
	if req.Theme != nil {
		theme := core.ThemeMode(*req.Theme)
		if !theme.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid theme")
			return
		}
		patch.Theme = &theme
	}
	if req.Currency != nil {
		if !currency.IsSupported(*req.Currency) {
			writeError(w, http.StatusBadRequest, "unsupported currency")
			return
		}
		patch.Currency = req.Currency
	}

	if err := as.state.UpdatePreferences(r.Context(), patch); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPreferencesJSON(as.state.Preferences()))
}
