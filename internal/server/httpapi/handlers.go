package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyplanner/studyauth/internal/common"
	"github.com/studyplanner/studyauth/internal/server/accounts"
)

// timeFormat is the timestamp layout used in interchange.
const timeFormat = "2006-01-02 15:04:05"

// response is the envelope every operation answers with.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type profilePayload struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login,omitempty"`
}

type resetChallengePayload struct {
	ResetToken string `json:"reset_token"`
	ExpiresAt  string `json:"expires_at"`
}

func toProfilePayload(p *accounts.Profile) *profilePayload {
	out := &profilePayload{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt.Format(timeFormat),
	}
	if p.LastLogin != nil {
		s := p.LastLogin.Format(timeFormat)
		out.LastLogin = &s
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	if err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", req.Username)
	s.writeJSON(w, http.StatusCreated, response{Success: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	profile, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response{Success: true, Data: toProfilePayload(profile)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := s.auth.Profile(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response{Success: true, Data: toProfilePayload(profile)})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	challenge, err := s.auth.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	// The token goes back to the requester; delivering it through a real
	// out-of-band channel is the caller's concern.
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: resetChallengePayload{
		ResetToken: challenge.Token,
		ExpiresAt:  challenge.ExpiresAt.Format(timeFormat),
	}})
}

func (s *Server) handleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	if err := s.auth.VerifyResetToken(r.Context(), req.Email, req.Token); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response{Success: true})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	if err := s.auth.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Password reset", "email", req.Email)
	s.writeJSON(w, http.StatusOK, response{Success: true})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, response{Success: true, Data: "OK"})
}

// writeServiceError renders a service failure. Unclassified faults are
// reported as a storage error without internal detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicateUsername), errors.Is(err, common.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrEmailNotFound), errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrNoActiveToken), errors.Is(err, common.ErrInvalidToken):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrTokenExpired):
		status = http.StatusGone
	default:
		s.logger.Error(r.Context(), "unhandled service error", "error", err.Error())
		err = common.ErrStorage
	}

	s.writeError(w, r, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, status, response{Success: false, Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
