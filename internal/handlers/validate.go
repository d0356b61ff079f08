// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"devlink/internal/credential"
	"devlink/internal/models"
)

// Validation limits for account, category and link fields.
const (
	minUsernameLen    = 3
	maxUsernameLen    = 50
	maxEmailLen       = 255
	minPasswordLen    = 6
	maxNameLen        = 100
	maxSlugLen        = 100
	maxIconLen        = 50
	maxDescriptionLen = 500
	maxTitleLen       = 200
	maxURLLen         = 1000
	maxFaviconLen     = 500
)

// fieldErrors accumulates validation failures in field order.
type fieldErrors []models.FieldError

func (fe *fieldErrors) add(field, format string, args ...any) {
	*fe = append(*fe, models.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (fe *fieldErrors) maxLen(field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		fe.add(field, "must be at most %d characters", limit)
	}
}

func (fe *fieldErrors) optionalMaxLen(field string, value *string, limit int) {
	if value != nil {
		fe.maxLen(field, *value, limit)
	}
}

func (fe *fieldErrors) required(field, value string, limit int) {
	if strings.TrimSpace(value) == "" {
		fe.add(field, "is required")
		return
	}
	fe.maxLen(field, value, limit)
}

// validateRegistration checks sign-up input.
func validateRegistration(username, email, password string) []models.FieldError {
	var fe fieldErrors

	n := utf8.RuneCountInString(username)
	switch {
	case strings.TrimSpace(username) == "":
		fe.add("username", "is required")
	case n < minUsernameLen || n > maxUsernameLen:
		fe.add("username", "must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}

	switch {
	case email == "":
		fe.add("email", "is required")
	case len(email) > maxEmailLen:
		fe.add("email", "must be at most %d characters", maxEmailLen)
	case !validEmail(email):
		fe.add("email", "must be a valid email address")
	}

	switch {
	case utf8.RuneCountInString(password) < minPasswordLen:
		fe.add("password", "must be at least %d characters", minPasswordLen)
	case len(password) > credential.MaxPasswordBytes:
		fe.add("password", "must be at most %d bytes", credential.MaxPasswordBytes)
	}
	return fe
}

// validEmail accepts a bare address such as "a@b.io", without a display
// name or angle brackets.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// validateLogin checks that both login fields are present.
func validateLogin(identifier, password string) []models.FieldError {
	var fe fieldErrors
	if strings.TrimSpace(identifier) == "" {
		fe.add("identifier", "is required")
	}
	if password == "" {
		fe.add("password", "is required")
	}
	return fe
}

// validateCategory checks category input after the slug has been resolved.
func validateCategory(name, slug string, icon, description *string) []models.FieldError {
	var fe fieldErrors
	fe.required("name", name, maxNameLen)
	if slug == "" {
		if strings.TrimSpace(name) != "" {
			fe.add("slug", "could not be derived from name; provide one")
		}
	} else {
		fe.maxLen("slug", slug, maxSlugLen)
	}
	fe.optionalMaxLen("icon", icon, maxIconLen)
	fe.optionalMaxLen("description", description, maxDescriptionLen)
	return fe
}

// validateLink checks link input.
func validateLink(title, url string, favicon *string, tags []string, categoryID flexID) []models.FieldError {
	var fe fieldErrors
	fe.required("title", title, maxTitleLen)
	fe.required("url", url, maxURLLen)
	fe.optionalMaxLen("favicon_url", favicon, maxFaviconLen)
	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			fe.add(fmt.Sprintf("tags[%d]", i), "must not be blank")
		}
	}
	switch {
	case !categoryID.set:
		fe.add("category_id", "is required")
	case !categoryID.valid:
		fe.add("category_id", "must be a numeric id")
	}
	return fe
}
