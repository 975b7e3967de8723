package authstub

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func newUserResponse(u user) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "email, username and password are required"})
		return
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "value is not a valid email address"})
		return
	}

	u, err := s.users.create(req.Email, req.Username, req.Password, s.now())
	switch {
	case errors.Is(err, errEmailTaken):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Email already registered"})
		return
	case err != nil:
		s.logger.Error().Err(err).Msg("error creating user")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Failed to create user"})
		return
	}

	s.logger.Info().Int64("user_id", u.ID).Msg("user registered")
	writeJSON(w, http.StatusOK, newUserResponse(u))
}

// token implements the OAuth2 password grant: form fields username (the
// email) and password.
func (s *Service) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid form body"})
		return
	}

	u, err := s.users.authenticate(r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		s.logger.Debug().Err(err).Msg("login failed")
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Incorrect email or password"})
		return
	}

	accessToken, err := s.issueToken(u.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("error signing token")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Failed to issue token"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}

func (s *Service) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.get(subjectFromContext(r.Context()))
	if err != nil {
		unauthorized(w, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(u))
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
