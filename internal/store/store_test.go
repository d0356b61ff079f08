// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// tests. Each test gets its own in-memory SQLite database with the full
// schema applied.
package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"devlink/internal/database"
	"devlink/internal/models"
)

// testDB opens a private in-memory database and runs migrations. The
// connection is closed when the test finishes, which discards the data.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.DriverSQLite,
		"file:store_"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, database.DriverSQLite), "run migrations")
	return db
}

// mustUser creates a user with a placeholder hash.
func mustUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	u, err := NewUserStore(db).Create(context.Background(), username, username+"@store-test.local", "hash")
	require.NoError(t, err, "create user %s", username)
	return u
}

// mustCategory creates a category owned by ownerID.
func mustCategory(t *testing.T, db *sql.DB, ownerID int64, slug string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(context.Background(), &models.Category{
		Name:   strings.ToUpper(slug[:1]) + slug[1:],
		Slug:   slug,
		UserID: ownerID,
	})
	require.NoError(t, err, "create category %s", slug)
	return c
}

// mustLink creates a link under categoryID owned by ownerID.
func mustLink(t *testing.T, db *sql.DB, ownerID, categoryID int64, title string, tags ...string) *models.Link {
	t.Helper()
	l, err := NewLinkStore(db).Create(context.Background(), &models.Link{
		Title:      title,
		URL:        "https://example.com/" + title,
		Tags:       tags,
		CategoryID: categoryID,
		UserID:     ownerID,
	})
	require.NoError(t, err, "create link %s", title)
	return l
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
