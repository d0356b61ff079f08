// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package credential hashes passwords with bcrypt and issues and verifies
// the HS256 bearer tokens that identify a user across requests.
package credential

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var (
	// ErrInvalidToken is the parent of every token failure. Callers that
	// only need to reject the request should match on this.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired means the token was well formed but is past its exp.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrInvalidToken)
	// ErrTokenInvalid covers bad signatures, wrong algorithms, missing
	// claims and malformed input.
	ErrTokenInvalid = fmt.Errorf("token rejected: %w", ErrInvalidToken)

	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrEmptySecret     = errors.New("token secret is empty")
)

// Service issues and resolves access tokens. The signing secret and
// lifetime are fixed when the service is created.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a token service. ttl must be positive.
func New(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", ttl)
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the access token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// IssueToken returns a signed token naming subjectID and its expiry time.
func (s *Service) IssueToken(subjectID int64) (string, time.Time, error) {
	issued := s.now()
	exp := jwt.NewNumericDate(issued.Add(s.ttl))
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: exp,
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp.Time, nil
}

// ResolveToken verifies the token and returns the user id it names.
func (s *Service) ResolveToken(token string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrTokenInvalid, claims.Subject)
	}
	return id, nil
}

// HashPassword returns a salted bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash. A malformed hash
// never matches.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// dummyHash is compared against when a login names no user, so the response
// time does not reveal whether the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("devlink-timing-equalizer"), bcrypt.DefaultCost)

// BurnCompare performs a bcrypt comparison that always fails.
func BurnCompare(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
}
