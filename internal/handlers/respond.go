// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the DevLink JSON API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// problem response and returns false. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	detail := "Request body must be valid JSON"
	switch {
	case errors.Is(err, io.EOF):
		detail = "Request body is required"
	case errors.As(err, &tooLarge):
		detail = "Request body is too large"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		detail = "Field " + typeErr.Field + " has the wrong type"
	case errors.As(err, &syntaxErr):
		detail = "Request body contains malformed JSON"
	}
	models.NewBadRequestError(detail).WriteJSON(w)
	return false
}

// pathID parses the {id} URL parameter. Anything that is not a positive
// integer is treated as an id that does not exist.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps repository errors onto problem responses. resource names
// the entity in not-found messages.
func writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		models.NewNotFoundError(resource).WriteJSON(w)
	case errors.Is(err, repository.ErrCategoryNotFound):
		models.NewNotFoundError("category").WriteJSON(w)
	case errors.Is(err, repository.ErrDuplicateSlug):
		models.NewConflictError("A category with this slug already exists").WriteJSON(w)
	case errors.Is(err, repository.ErrUsernameTaken):
		models.NewConflictError("Username already taken").WriteJSON(w)
	case errors.Is(err, repository.ErrEmailTaken):
		models.NewConflictError("Email already registered").WriteJSON(w)
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		models.NewInternalError().WriteJSON(w)
	}
}
