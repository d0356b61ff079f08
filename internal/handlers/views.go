// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"devlink/internal/models"
)

// Response representations. Category and link ids are sent as strings,
// while user ids stay numeric.

type userView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenView struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userView `json:"user"`
}

type categoryView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Icon        *string   `json:"icon"`
	Description *string   `json:"description"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type linkView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	FaviconURL  *string   `json:"favicon_url"`
	Tags        []string  `json:"tags"`
	CategoryID  string    `json:"categoryId"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func newCategoryView(c *models.Category) categoryView {
	return categoryView{
		ID:          strconv.FormatInt(c.ID, 10),
		Name:        c.Name,
		Slug:        c.Slug,
		Icon:        c.Icon,
		Description: c.Description,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func newLinkView(l *models.Link) linkView {
	tags := []string(l.Tags)
	if tags == nil {
		tags = []string{}
	}
	return linkView{
		ID:          strconv.FormatInt(l.ID, 10),
		Title:       l.Title,
		URL:         l.URL,
		Description: l.Description,
		FaviconURL:  l.FaviconURL,
		Tags:        tags,
		CategoryID:  strconv.FormatInt(l.CategoryID, 10),
		UserID:      l.UserID,
		CreatedAt:   l.CreatedAt.UTC(),
		UpdatedAt:   l.UpdatedAt.UTC(),
	}
}

// flexID decodes an id sent either as a JSON number or a numeric string.
type flexID struct {
	value int64
	set   bool // present and not null
	valid bool // parsed as an integer
}

// UnmarshalJSON never fails; bad values are reported by validation.
func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	f.set = true

	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	} else {
		s = string(b)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		f.value, f.valid = id, true
	}
	return nil
}
