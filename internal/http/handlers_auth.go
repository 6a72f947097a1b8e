package http

import (
	"net/http"
	"strings"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Create Account Failed.")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		s.respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	user := core.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
	}
	if err := user.Validate(); err != nil {
		s.writeError(w, r, err, "Create Account Failed.")
		return
	}

	exists, err := s.store.EmailExists(r.Context(), user.Email, 0)
	if err != nil {
		s.writeError(w, r, err, "Create Account Failed.")
		return
	}
	if exists {
		s.respondError(w, http.StatusConflict, "Email already exist")
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err, "Create Account Failed.")
		return
	}
	user.PasswordHash = hash

	if err := s.store.CreateUser(r.Context(), &user); err != nil {
		s.writeError(w, r, err, "Create Account Failed.")
		return
	}

	s.log.InfoContext(r.Context(), "account created",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID)
	s.respondCreated(w, "Create Account Successful.")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Login Failed.")
		return
	}

	user, err := s.store.UserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil || !s.auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "Account does not exist.")
		return
	}

	token, err := s.auth.Issue(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err, "Login Failed.")
		return
	}

	s.log.InfoContext(r.Context(), "user logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, user.ID)
	s.respondOK(w, map[string]any{"token": token}, "Success.")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.auth.Revoke(r.Context(), uid); err != nil {
		s.writeError(w, r, err, "Logout Failed.")
		return
	}
	s.log.InfoContext(r.Context(), "user logged out",
		log.FieldOperation, log.OpLogout,
		log.FieldUserID, uid)
	s.respondOK(w, nil, "Successfully logout.")
}
