package http

import (
	"net/http"
	"strings"

	"github.com/jeamar123/budget-api/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.Categories(r.Context(), userID(r), r.URL.Query().Get("search"))
	if err != nil {
		s.writeError(w, r, err, "List Categories Failed.")
		return
	}
	if cats == nil {
		cats = []core.Category{}
	}
	s.respondOK(w, map[string]any{"categories": cats}, "Success")
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Get Category Failed.")
		return
	}
	cat, err := s.store.CategoryByID(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, r, err, "Get Category Failed.")
		return
	}
	s.respondOK(w, map[string]any{"category": cat}, "Success")
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Create Category Failed.")
		return
	}

	cat := core.Category{UserID: userID(r), Name: strings.TrimSpace(req.Name)}
	if err := cat.Validate(); err != nil {
		s.writeError(w, r, err, "Create Category Failed.")
		return
	}

	exists, err := s.store.CategoryNameExists(r.Context(), cat.UserID, cat.Name, 0)
	if err != nil {
		s.writeError(w, r, err, "Create Category Failed.")
		return
	}
	if exists {
		s.respondError(w, http.StatusConflict, "Category already exist")
		return
	}

	if err := s.store.CreateCategory(r.Context(), &cat); err != nil {
		s.writeError(w, r, err, "Create Category Failed.")
		return
	}
	s.respondCreated(w, "Create Category Successful.")
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}

	cat, err := s.store.CategoryByID(r.Context(), userID(r), id)
	if err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}

	cat.Name = strings.TrimSpace(req.Name)
	if err := cat.Validate(); err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}

	exists, err := s.store.CategoryNameExists(r.Context(), cat.UserID, cat.Name, id)
	if err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}
	if exists {
		s.respondError(w, http.StatusConflict, "Category name already exist")
		return
	}

	if err := s.store.UpdateCategory(r.Context(), cat); err != nil {
		s.writeError(w, r, err, "Update Category Failed.")
		return
	}
	s.respondOK(w, nil, "Update Category Successful.")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err, "Delete Category Failed.")
		return
	}
	if err := s.store.DeleteCategory(r.Context(), userID(r), id); err != nil {
		s.writeError(w, r, err, "Delete Category Failed.")
		return
	}
	s.respondOK(w, nil, "Delete Category Successful.")
}

func (s *Server) handleCategoryPercentage(w http.ResponseWriter, r *http.Request) {
	rng, err := requireRangeQuery(r)
	if err != nil {
		s.writeError(w, r, err, "Category Percentage Failed.")
		return
	}

	breakdown, err := s.reports.CategoryPercentage(r.Context(), userID(r), rng.Start, rng.End, queryInt(r, "limitTo"))
	if err != nil {
		s.writeError(w, r, err, "Category Percentage Failed.")
		return
	}
	s.respondOK(w, map[string]any{"values": breakdown}, "Success")
}
