// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/slug"
)

// Categories serves the /api/categories endpoints. Every handler runs
// behind RequireUser and scopes its work to that user.
type Categories struct {
	repo *repository.Repository
}

// NewCategories creates a new Categories handler group.
func NewCategories(repo *repository.Repository) *Categories {
	return &Categories{repo: repo}
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// input validates the request, deriving the slug from the name when it is
// omitted or blank. It writes a 422 and returns false on bad input.
func (req *categoryRequest) input(w http.ResponseWriter) (repository.CategoryInput, bool) {
	name := strings.TrimSpace(req.Name)
	s := ""
	if req.Slug != nil {
		s = strings.TrimSpace(*req.Slug)
	}
	if s == "" {
		s = slug.Generate(name)
	}

	if errs := validateCategory(name, s, req.Icon, req.Description); len(errs) > 0 {
		models.NewValidationError(errs).WriteJSON(w)
		return repository.CategoryInput{}, false
	}
	return repository.CategoryInput{
		Name:        name,
		Slug:        s,
		Icon:        req.Icon,
		Description: req.Description,
	}, true
}

// List returns all of the caller's categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	items, err := h.repo.ListCategories(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err, "category")
		return
	}

	views := make([]categoryView, len(items))
	for i := range items {
		views[i] = newCategoryView(&items[i])
	}
	writeJSON(w, http.StatusOK, views)
}

// Create adds a category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.input(w)
	if !ok {
		return
	}

	c, err := h.repo.CreateCategory(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusCreated, newCategoryView(c))
}

// Get returns one category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("category").WriteJSON(w)
		return
	}

	c, err := h.repo.GetCategory(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(c))
}

// Update replaces a category's fields.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("category").WriteJSON(w)
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.input(w)
	if !ok {
		return
	}

	c, err := h.repo.UpdateCategory(r.Context(), user.ID, id, in)
	if err != nil {
		writeError(w, r, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(c))
}

// Delete removes a category and its links.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("category").WriteJSON(w)
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), user.ID, id); err != nil {
		writeError(w, r, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
