// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
)

// Links serves the /api/links endpoints.
type Links struct {
	repo *repository.Repository
}

// NewLinks creates a new Links handler group.
func NewLinks(repo *repository.Repository) *Links {
	return &Links{repo: repo}
}

type linkRequest struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description *string  `json:"description"`
	FaviconURL  *string  `json:"favicon_url"`
	Tags        []string `json:"tags"`
	CategoryID  flexID   `json:"category_id"`
}

func (req *linkRequest) input(w http.ResponseWriter) (repository.LinkInput, bool) {
	title := strings.TrimSpace(req.Title)
	url := strings.TrimSpace(req.URL)
	if errs := validateLink(title, url, req.FaviconURL, req.Tags, req.CategoryID); len(errs) > 0 {
		models.NewValidationError(errs).WriteJSON(w)
		return repository.LinkInput{}, false
	}

	tags := make([]string, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = strings.TrimSpace(t)
	}
	return repository.LinkInput{
		Title:       title,
		URL:         url,
		Description: req.Description,
		FaviconURL:  req.FaviconURL,
		Tags:        tags,
		CategoryID:  req.CategoryID.value,
	}, true
}

// List returns the caller's links, optionally filtered by ?category_id=.
func (h *Links) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	var categoryID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			models.NewValidationError([]models.FieldError{
				{Field: "category_id", Message: "must be a numeric id"},
			}).WriteJSON(w)
			return
		}
		categoryID = &id
	}

	items, err := h.repo.ListLinks(r.Context(), user.ID, categoryID)
	if err != nil {
		writeError(w, r, err, "link")
		return
	}

	views := make([]linkView, len(items))
	for i := range items {
		views[i] = newLinkView(&items[i])
	}
	writeJSON(w, http.StatusOK, views)
}

// Create adds a link under one of the caller's categories.
func (h *Links) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	var req linkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.input(w)
	if !ok {
		return
	}

	l, err := h.repo.CreateLink(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err, "link")
		return
	}
	writeJSON(w, http.StatusCreated, newLinkView(l))
}

// Get returns one link.
func (h *Links) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("link").WriteJSON(w)
		return
	}

	l, err := h.repo.GetLink(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, r, err, "link")
		return
	}
	writeJSON(w, http.StatusOK, newLinkView(l))
}

// Update replaces a link's fields.
func (h *Links) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("link").WriteJSON(w)
		return
	}
	var req linkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.input(w)
	if !ok {
		return
	}

	l, err := h.repo.UpdateLink(r.Context(), user.ID, id, in)
	if err != nil {
		writeError(w, r, err, "link")
		return
	}
	writeJSON(w, http.StatusOK, newLinkView(l))
}

// Delete removes a link.
func (h *Links) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	id, ok := pathID(r)
	if !ok {
		models.NewNotFoundError("link").WriteJSON(w)
		return
	}

	if err := h.repo.DeleteLink(r.Context(), user.ID, id); err != nil {
		writeError(w, r, err, "link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
