// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Each test gets a private in-memory SQLite database and a chi router
// wired the same way as the production one.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"devlink/internal/credential"
	"devlink/internal/database"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
)

const testSecret = "handler-test-secret-0123456789abcdef"

type testEnv struct {
	db     *sql.DB
	repo   *repository.Repository
	tokens *credential.Service
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.DriverSQLite,
		"file:handlers_"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DriverSQLite))

	tokens, err := credential.New(testSecret, 30*time.Minute)
	require.NoError(t, err)
	repo := repository.New(db, nil)

	auth := NewAuth(repo, tokens)
	cats := NewCategories(repo)
	links := NewLinks(repo)
	authn := middleware.NewAuthenticator(tokens, repo)

	r := chi.NewRouter()
	r.Post("/api/auth/register", auth.Register)
	r.Post("/api/auth/login", auth.Login)
	r.Group(func(r chi.Router) {
		r.Use(authn.RequireUser)
		r.Get("/api/auth/me", auth.Me)
		r.Get("/api/categories", cats.List)
		r.Post("/api/categories", cats.Create)
		r.Get("/api/categories/{id}", cats.Get)
		r.Put("/api/categories/{id}", cats.Update)
		r.Delete("/api/categories/{id}", cats.Delete)
		r.Get("/api/links", links.List)
		r.Post("/api/links", links.Create)
		r.Get("/api/links/{id}", links.Get)
		r.Put("/api/links/{id}", links.Update)
		r.Delete("/api/links/{id}", links.Delete)
	})

	return &testEnv{db: db, repo: repo, tokens: tokens, router: r}
}

// do sends a request with an optional bearer token and JSON body. body may
// be a string (sent verbatim) or any value to encode.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// register creates a user through the API and returns its token and id.
func (e *testEnv) register(t *testing.T, username string) (string, int64) {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var tok tokenView
	decode(t, rr, &tok)
	return tok.AccessToken, tok.User.ID
}

// createCategory creates a category through the API and returns its id.
func (e *testEnv) createCategory(t *testing.T, token, name string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/categories", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c categoryView
	decode(t, rr, &c)
	return c.ID
}

// createLink creates a link through the API and returns it.
func (e *testEnv) createLink(t *testing.T, token, categoryID, title string, tags ...string) linkView {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	rr := e.do(t, http.MethodPost, "/api/links", token, map[string]any{
		"title":       title,
		"url":         "https://example.com/" + title,
		"tags":        tags,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var l linkView
	decode(t, rr, &l)
	return l
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

// problem decodes a problem response and checks its status and content type.
func problem(t *testing.T, rr *httptest.ResponseRecorder, status int) models.ProblemDetails {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	require.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var p models.ProblemDetails
	decode(t, rr, &p)
	return p
}
