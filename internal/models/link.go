// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Link is a bookmark filed under one category. Both the link and its
// category belong to the same user.
type Link struct {
	ID          int64
	Title       string
	URL         string
	Description *string
	FaviconURL  *string
	Tags        Tags
	CategoryID  int64
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tags is an ordered list of free-form labels stored as a JSON array.
type Tags []string

// Value encodes the tags as a JSON array. A nil list is stored as "[]".
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// Scan decodes a JSON array column. NULL scans to an empty list.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*t = out
	return nil
}
