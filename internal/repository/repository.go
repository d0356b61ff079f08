// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package repository is the only path from the HTTP handlers to persisted
// users, categories and links. Every operation takes the acting user's id
// and passes it into each query predicate, so a row owned by someone else
// looks exactly like a row that does not exist.
//
// Operations that check something before writing (slug uniqueness,
// category ownership) run the check and the write in one transaction, and
// the schema's unique constraints back up the checks.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devlink/internal/models"
)

var (
	// ErrNotFound means the entity does not exist for this owner.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSlug means the owner already has a category with that slug.
	ErrDuplicateSlug = errors.New("duplicate category slug")
	// ErrCategoryNotFound means a link referenced a category the owner
	// does not have.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUsernameTaken and ErrEmailTaken are returned by RegisterUser.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// CategoryCache caches category lists per owner. Implementations must
// tolerate their own failures; the repository never sees cache errors.
type CategoryCache interface {
	Get(ctx context.Context, ownerID int64) ([]models.Category, bool)
	Set(ctx context.Context, ownerID int64, items []models.Category)
	Invalidate(ctx context.Context, ownerID int64)
}

type noCache struct{}

func (noCache) Get(context.Context, int64) ([]models.Category, bool) { return nil, false }
func (noCache) Set(context.Context, int64, []models.Category)        {}
func (noCache) Invalidate(context.Context, int64)                    {}

// Repository implements owner-scoped access to all DevLink entities.
type Repository struct {
	db    *sql.DB
	cache CategoryCache
}

// New creates a Repository. cache may be nil.
func New(db *sql.DB, cache CategoryCache) *Repository {
	if cache == nil {
		cache = noCache{}
	}
	return &Repository{db: db, cache: cache}
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
