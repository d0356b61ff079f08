// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"devlink/internal/models"
)

// LinkStore manages bookmarked links in the database.
type LinkStore struct {
	db DBTX
}

// NewLinkStore returns a new LinkStore.
func NewLinkStore(db DBTX) *LinkStore {
	return &LinkStore{db: db}
}

const linkColumns = `id, title, url, description, favicon_url, tags, category_id, user_id, created_at, updated_at`

func scanLink(scanner interface{ Scan(...any) error }) (*models.Link, error) {
	var l models.Link
	err := scanner.Scan(
		&l.ID, &l.Title, &l.URL, &l.Description, &l.FaviconURL,
		&l.Tags, &l.CategoryID, &l.UserID, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns the user's links, oldest first. When categoryID is set only
// links filed under that category are returned; a category owned by someone
// else simply matches nothing.
func (s *LinkStore) List(ctx context.Context, ownerID int64, categoryID *int64) ([]models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1`
	args := []any{ownerID}
	if categoryID != nil {
		query += ` AND category_id = $2`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	items := []models.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}

// FindByID retrieves an owned link by id. Returns nil if not found.
func (s *LinkStore) FindByID(ctx context.Context, ownerID, id int64) (*models.Link, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = $1 AND user_id = $2`, id, ownerID)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find link by id: %w", err)
	}
	return l, nil
}

// Create inserts a new link and returns it with its id and timestamps set.
// The caller is responsible for checking category ownership first.
func (s *LinkStore) Create(ctx context.Context, l *models.Link) (*models.Link, error) {
	result := *l
	if result.Tags == nil {
		result.Tags = models.Tags{}
	}
	result.CreatedAt = now()
	result.UpdatedAt = result.CreatedAt

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO links (title, url, description, favicon_url, tags, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		result.Title, result.URL, result.Description, result.FaviconURL, result.Tags,
		result.CategoryID, result.UserID, result.CreatedAt, result.UpdatedAt,
	).Scan(&result.ID)
	if err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return &result, nil
}

// Update replaces every mutable field of an owned link and refreshes
// updated_at. It reports false when no link with that id exists for l.UserID.
func (s *LinkStore) Update(ctx context.Context, l *models.Link) (bool, error) {
	if l.Tags == nil {
		l.Tags = models.Tags{}
	}
	l.UpdatedAt = now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE links SET
			title = $1, url = $2, description = $3, favicon_url = $4,
			tags = $5, category_id = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`, l.Title, l.URL, l.Description, l.FaviconURL, l.Tags, l.CategoryID, l.UpdatedAt, l.ID, l.UserID)
	if err != nil {
		return false, fmt.Errorf("update link: %w", err)
	}
	return affected(res)
}

// Delete removes an owned link. It reports false when nothing matched.
func (s *LinkStore) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete link: %w", err)
	}
	return affected(res)
}
