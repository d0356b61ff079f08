// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repository

import (
	"context"
	"database/sql"

	"devlink/internal/models"
	"devlink/internal/store"
)

// LinkInput holds every mutable link field. Updates replace all of them.
type LinkInput struct {
	Title       string
	URL         string
	Description *string
	FaviconURL  *string
	Tags        []string
	CategoryID  int64
}

// ListLinks returns the owner's links, optionally narrowed to one category.
// The category filter is not ownership-checked: naming someone else's
// category yields an empty list.
func (r *Repository) ListLinks(ctx context.Context, ownerID int64, categoryID *int64) ([]models.Link, error) {
	return store.NewLinkStore(r.db).List(ctx, ownerID, categoryID)
}

// CreateLink files a new link under one of the owner's categories. Fails
// with ErrCategoryNotFound, creating nothing, if the category is not theirs.
func (r *Repository) CreateLink(ctx context.Context, ownerID int64, in LinkInput) (*models.Link, error) {
	var created *models.Link
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireCategory(ctx, tx, ownerID, in.CategoryID); err != nil {
			return err
		}
		var err error
		created, err = store.NewLinkStore(tx).Create(ctx, &models.Link{
			Title:       in.Title,
			URL:         in.URL,
			Description: in.Description,
			FaviconURL:  in.FaviconURL,
			Tags:        models.Tags(in.Tags),
			CategoryID:  in.CategoryID,
			UserID:      ownerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetLink returns one of the owner's links.
func (r *Repository) GetLink(ctx context.Context, ownerID, id int64) (*models.Link, error) {
	l, err := store.NewLinkStore(r.db).FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

// UpdateLink replaces every mutable field of an owned link. The target
// category is checked even when unchanged; on any failure the link is left
// as it was.
func (r *Repository) UpdateLink(ctx context.Context, ownerID, id int64, in LinkInput) (*models.Link, error) {
	var updated *models.Link
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ls := store.NewLinkStore(tx)
		current, err := ls.FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		if err := requireCategory(ctx, tx, ownerID, in.CategoryID); err != nil {
			return err
		}

		current.Title = in.Title
		current.URL = in.URL
		current.Description = in.Description
		current.FaviconURL = in.FaviconURL
		current.Tags = models.Tags(in.Tags)
		current.CategoryID = in.CategoryID
		ok, err := ls.Update(ctx, current)
		if err != nil {
			return err
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
	return updated, nil
}

// DeleteLink removes an owned link.
func (r *Repository) DeleteLink(ctx context.Context, ownerID, id int64) error {
	ok, err := store.NewLinkStore(r.db).Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func requireCategory(ctx context.Context, tx store.DBTX, ownerID, categoryID int64) error {
	c, err := store.NewCategoryStore(tx).FindByID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCategoryNotFound
	}
	return nil
}
