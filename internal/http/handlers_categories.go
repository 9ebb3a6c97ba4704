package http

import (
	"net/http"

	"paisa/internal/core"
)

type createCategoryRequest struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Budget string `json:"budget,omitempty"`
}

type updateCategoryRequest struct {
	Name   *string `json:"name"`
	Kind   *string `json:"kind"`
	Icon   *string `json:"icon"`
	Color  *string `json:"color"`
	Budget *string `json:"budget"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, as *apiSession) {
	cats := as.state.Categories()
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := core.Category{
		Name:  req.Name,
		Kind:  core.CategoryKind(req.Kind),
		Icon:  req.Icon,
		Color: req.Color,
	}
	if req.Budget != "" {
		budget, err := core.ParseAmount(req.Budget)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		c.Budget = &budget
	}

	created, err := as.state.CreateCategory(r.Context(), c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryJSON(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, as *apiSession) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := core.CategoryPatch{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	}
	if req.Kind != nil {
		kind := core.CategoryKind(*req.Kind)
		patch.Kind = &kind
	}
	if req.Budget != nil {
		budget, err := core.ParseAmount(*req.Budget)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		patch.Budget = &budget
	}
	if err := as.state.UpdateCategory(r.Context(), r.PathValue("id"), patch); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, as *apiSession) {
	if err := as.state.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
