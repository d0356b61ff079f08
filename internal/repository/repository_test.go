// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package repository

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"devlink/internal/database"
	"devlink/internal/models"
)

// memCache is an in-process CategoryCache that records invalidations.
type memCache struct {
	mu          sync.Mutex
	entries     map[int64][]models.Category
	invalidated []int64
}

func newMemCache() *memCache {
	return &memCache{entries: map[int64][]models.Category{}}
}

func (c *memCache) Get(_ context.Context, ownerID int64) ([]models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.entries[ownerID]
	return items, ok
}

func (c *memCache) Set(_ context.Context, ownerID int64, items []models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ownerID] = items
}

func (c *memCache) Invalidate(_ context.Context, ownerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ownerID)
	c.invalidated = append(c.invalidated, ownerID)
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.DriverSQLite,
		"file:repo_"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DriverSQLite))
	return db
}

// testRepo returns a repository over a fresh database with a recording cache.
func testRepo(t *testing.T) (*Repository, *memCache, *sql.DB) {
	t.Helper()
	db := testDB(t)
	c := newMemCache()
	return New(db, c), c, db
}

func mustRegister(t *testing.T, r *Repository, username string) *models.User {
	t.Helper()
	u, err := r.RegisterUser(context.Background(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return u
}

func mustCategory(t *testing.T, r *Repository, ownerID int64, slug string) *models.Category {
	t.Helper()
	c, err := r.CreateCategory(context.Background(), ownerID, CategoryInput{Name: slug, Slug: slug})
	require.NoError(t, err)
	return c
}

func mustLink(t *testing.T, r *Repository, ownerID, categoryID int64, title string) *models.Link {
	t.Helper()
	l, err := r.CreateLink(context.Background(), ownerID, LinkInput{
		Title:      title,
		URL:        "http://" + title,
		Tags:       []string{"t"},
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return l
}

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
