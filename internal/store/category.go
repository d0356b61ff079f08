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

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db DBTX
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, icon, description, user_id, created_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Icon,
		&c.Description, &c.UserID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns all categories owned by the user, oldest first.
func (s *CategoryStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves an owned category by id. Returns nil if the category
// does not exist or belongs to someone else.
func (s *CategoryStore) FindByID(ctx context.Context, ownerID, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, ownerID)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves an owned category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, ownerID int64, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND slug = $2`, ownerID, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. A duplicate (owner, slug)
// pair returns an error wrapping ErrUniqueViolation.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	result := *c
	result.CreatedAt = now()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, icon, description, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		result.Name, result.Slug, result.Icon, result.Description, result.UserID, result.CreatedAt,
	).Scan(&result.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create category: %w: %v", ErrUniqueViolation, err)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &result, nil
}

// Update replaces every mutable field of an owned category. It reports
// false when no category with that id exists for c.UserID.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, icon = $3, description = $4
		WHERE id = $5 AND user_id = $6
	`, c.Name, c.Slug, c.Icon, c.Description, c.ID, c.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("update category: %w: %v", ErrUniqueViolation, err)
		}
		return false, fmt.Errorf("update category: %w", err)
	}
	return affected(res)
}

// Delete removes an owned category and every link filed under it. It
// reports false when nothing matched. Run it inside a transaction.
func (s *CategoryStore) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM links WHERE category_id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return false, fmt.Errorf("delete category links: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return affected(res)
}
