// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// problemTypeBase prefixes every problem type URI.
const problemTypeBase = "https://devlink.app/errors/"

// ProblemDetails is an RFC 9457 error body. Every non-2xx API response
// uses it.
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// FieldError describes a validation failure on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem as an application/problem+json response.
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	if p.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func NewUnauthorizedError(detail string) *ProblemDetails {
	return newProblem("unauthorized", "Unauthorized", http.StatusUnauthorized, detail)
}

// NewNotFoundError reports a missing resource. It is also used for rows
// owned by another user.
func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound, resource+" not found")
}

func NewValidationError(errs []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errs) > 0 {
		detail = fmt.Sprintf("%s: %s", errs[0].Field, errs[0].Message)
		if len(errs) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errs)-1)
		}
	}
	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, detail)
	p.Errors = errs
	return p
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, detail)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, detail)
}

func NewMethodNotAllowedError() *ProblemDetails {
	return newProblem("method-not-allowed", "Method Not Allowed", http.StatusMethodNotAllowed, "")
}

// NewInternalError never carries internal details; log them instead.
func NewInternalError() *ProblemDetails {
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError,
		"An unexpected error occurred")
}
