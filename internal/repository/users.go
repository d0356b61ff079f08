// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"devlink/internal/models"
	"devlink/internal/store"
)

// RegisterUser creates an account from an already-hashed password. A taken
// username is reported before a taken email.
func (r *Repository) RegisterUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	var created *models.User
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		us := store.NewUserStore(tx)
		byName, err := us.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if byName != nil {
			return ErrUsernameTaken
		}
		byEmail, err := us.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if byEmail != nil {
			return ErrEmailTaken
		}

		created, err = us.Create(ctx, username, email, passwordHash)
		if errors.Is(err, store.ErrUniqueViolation) {
			// Lost a race with a concurrent registration.
			if strings.Contains(err.Error(), "username") {
				return fmt.Errorf("%w: %v", ErrUsernameTaken, err)
			}
			return fmt.Errorf("%w: %v", ErrEmailTaken, err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindUserByIdentifier looks a user up by username, then by email.
func (r *Repository) FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	us := store.NewUserStore(r.db)
	u, err := us.FindByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u, err = us.FindByEmail(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// FindUserByID returns the user with the given id.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := store.NewUserStore(r.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// DeleteUser removes an account and everything it owns.
func (r *Repository) DeleteUser(ctx context.Context, ownerID int64) error {
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := store.NewUserStore(tx).Delete(ctx, ownerID)
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
