// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Default development account created by Seed.
const (
	SeedUsername = "demo"
	SeedEmail    = "demo@devlink.local"
	SeedPassword = "devlink"
)

// Seed populates the database with initial development data: a demo user
// with one starter category and link. It is a no-op if any user exists.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Truncate(time.Microsecond)

	var userID int64
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, SeedUsername, SeedEmail, string(hash), now).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	var categoryID int64
	err = tx.QueryRow(`
		INSERT INTO categories (name, slug, icon, description, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "Getting Started", "getting-started", "book", "Links to help you find your way around.", userID, now).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO links (title, url, description, tags, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, "Go documentation", "https://go.dev/doc/", "Official Go documentation.", `["go","docs"]`, categoryID, userID, now, now)
	if err != nil {
		return fmt.Errorf("seed insert link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo user",
		"username", SeedUsername,
		"password", SeedPassword,
	)

	return nil
}
