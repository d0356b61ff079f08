// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Category is a named grouping of links owned by exactly one user.
// Slugs are unique per owner.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Icon        *string
	Description *string
	UserID      int64
	CreatedAt   time.Time
}
