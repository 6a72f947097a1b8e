package http

import (
	"net/http"
	"strings"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.writeError(w, r, err, "List Users Failed.")
		return
	}
	if users == nil {
		users = []core.User{}
	}
	s.respondOK(w, map[string]any{"users": users}, "Success")
}

func (s *Server) handleGetSelf(w http.ResponseWriter, r *http.Request) {
	s.getUser(w, r, userID(r))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Get User Failed.")
		return
	}
	s.getUser(w, r, id)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, id int64) {
	user, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "Get User Failed.")
		return
	}
	s.respondOK(w, map[string]any{"user": user}, "Success")
}

type updateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}

	user, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = strings.TrimSpace(req.Email)
	if err := user.Validate(); err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}

	exists, err := s.store.EmailExists(r.Context(), user.Email, id)
	if err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}
	if exists {
		s.respondError(w, http.StatusConflict, "Email already exist")
		return
	}

	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			s.writeError(w, r, err, "Update User Failed.")
			return
		}
		user.PasswordHash = hash
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		s.writeError(w, r, err, "Update User Failed.")
		return
	}
	s.respondOK(w, nil, "Update User Successful.")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Delete User Failed.")
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Delete User Failed.")
		return
	}
	s.log.InfoContext(r.Context(), "user deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldRecordID, id)
	s.respondOK(w, nil, "Delete User Successful.")
}
