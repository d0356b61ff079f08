// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devlink/internal/credential"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
)

// loginFailedDetail is returned for every failed login, whether the
// account is missing or the password is wrong.
const loginFailedDetail = "Incorrect username/email or password"

// Auth groups registration, login and profile handlers.
type Auth struct {
	repo   *repository.Repository
	tokens *credential.Service
}

// NewAuth creates a new Auth handler group.
func NewAuth(repo *repository.Repository, tokens *credential.Service) *Auth {
	return &Auth{repo: repo, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Register creates an account and returns a token for it.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if errs := validateRegistration(req.Username, req.Email, req.Password); len(errs) > 0 {
		models.NewValidationError(errs).WriteJSON(w)
		return
	}

	hash, err := credential.HashPassword(req.Password)
	if errors.Is(err, credential.ErrPasswordTooLong) {
		models.NewValidationError([]models.FieldError{{Field: "password", Message: err.Error()}}).WriteJSON(w)
		return
	}
	if err != nil {
		writeError(w, r, err, "user")
		return
	}

	user, err := a.repo.RegisterUser(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	a.writeToken(w, r, http.StatusCreated, user)
}

// Login exchanges a username or email plus password for a token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Identifier = strings.TrimSpace(req.Identifier)

	if errs := validateLogin(req.Identifier, req.Password); len(errs) > 0 {
		models.NewValidationError(errs).WriteJSON(w)
		return
	}

	user, err := a.repo.FindUserByIdentifier(r.Context(), req.Identifier)
	if errors.Is(err, repository.ErrNotFound) {
		credential.BurnCompare(req.Password)
		models.NewUnauthorizedError(loginFailedDetail).WriteJSON(w)
		return
	}
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	if !credential.VerifyPassword(req.Password, user.PasswordHash) {
		models.NewUnauthorizedError(loginFailedDetail).WriteJSON(w)
		return
	}

	a.writeToken(w, r, http.StatusOK, user)
}

// Me returns the authenticated user's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		models.NewUnauthorizedError("Could not validate credentials").WriteJSON(w)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

func (a *Auth) writeToken(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, _, err := a.tokens.IssueToken(user.ID)
	if err != nil {
		writeError(w, r, err, "user")
		return
	}
	writeJSON(w, status, tokenView{
		AccessToken: token,
		TokenType:   "bearer",
		User:        newUserView(user),
	})
}
