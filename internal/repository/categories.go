// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devlink/internal/models"
	"devlink/internal/store"
)

// CategoryInput holds every mutable category field. Updates replace all of
// them.
type CategoryInput struct {
	Name        string
	Slug        string
	Icon        *string
	Description *string
}

// ListCategories returns the owner's categories, oldest first.
func (r *Repository) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	if items, ok := r.cache.Get(ctx, ownerID); ok {
		return items, nil
	}
	items, err := store.NewCategoryStore(r.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, ownerID, items)
	return items, nil
}

// CreateCategory creates a category for the owner. Fails with
// ErrDuplicateSlug if the owner already uses the slug.
func (r *Repository) CreateCategory(ctx context.Context, ownerID int64, in CategoryInput) (*models.Category, error) {
	var created *models.Category
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		cs := store.NewCategoryStore(tx)
		existing, err := cs.FindBySlug(ctx, ownerID, in.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateSlug
		}
		created, err = cs.Create(ctx, &models.Category{
			Name:        in.Name,
			Slug:        in.Slug,
			Icon:        in.Icon,
			Description: in.Description,
			UserID:      ownerID,
		})
		return mapSlugViolation(err)
	})
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(ctx, ownerID)
	return created, nil
}

// GetCategory returns one of the owner's categories.
func (r *Repository) GetCategory(ctx context.Context, ownerID, id int64) (*models.Category, error) {
	c, err := store.NewCategoryStore(r.db).FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// UpdateCategory replaces every mutable field of an owned category. Moving
// to a slug held by another of the owner's categories fails with
// ErrDuplicateSlug.
func (r *Repository) UpdateCategory(ctx context.Context, ownerID, id int64, in CategoryInput) (*models.Category, error) {
	var updated *models.Category
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		cs := store.NewCategoryStore(tx)
		current, err := cs.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		if in.Slug != current.Slug {
			clash, err := cs.FindBySlug(ctx, ownerID, in.Slug)
			if err != nil {
				return err
			}
			if clash != nil {
				return ErrDuplicateSlug
			}
		}

		current.Name = in.Name
		current.Slug = in.Slug
		current.Icon = in.Icon
		current.Description = in.Description
		ok, err := cs.Update(ctx, current)
		if err != nil {
			return mapSlugViolation(err)
		}
		if !ok {
			return ErrNotFound
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.cache.Invalidate(ctx, ownerID)
	return updated, nil
}

// DeleteCategory removes an owned category and all links filed under it.
func (r *Repository) DeleteCategory(ctx context.Context, ownerID, id int64) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := store.NewCategoryStore(tx).Delete(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.cache.Invalidate(ctx, ownerID)
	return nil
}

func mapSlugViolation(err error) error {
	if errors.Is(err, store.ErrUniqueViolation) {
		return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
	}
	return err
}
