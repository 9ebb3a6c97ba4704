package http

import (
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  accountJSON `json:"user"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.openSession(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  accountJSON{ID: account.ID, Email: account.Email},
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.openSession(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  accountJSON{ID: account.ID, Email: account.Email},
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request, as *apiSession) {
	s.closeSession(bearerToken(r))
	s.auth.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, as *apiSession) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user":                accountJSON{ID: as.account.ID, Email: as.account.Email},
		"onboardingCompleted": as.state.Preferences().OnboardingCompleted,
	})
}
