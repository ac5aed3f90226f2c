// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session implements login and stateless session resolution. A
// session is nothing but a signed token: the cookie (or Authorization
// header) carries the whole thing, so there is no server-side session
// table to expire or clean up.
package session

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio-site/folio-go/internal/auth"
	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
)

var (
	// ErrNoSession means the request carried no usable token.
	ErrNoSession = errors.New("session: no session")

	// ErrUnknownUser means the token verified but its user row is gone.
	ErrUnknownUser = errors.New("session: unknown user")

	// ErrBadCredentials is returned for a wrong email/password pair.
	ErrBadCredentials = errors.New("session: bad credentials")

	// ErrLoginDisabled is returned when no admin password is configured.
	ErrLoginDisabled = errors.New("session: password login not configured")
)

// Credentials is the configured admin login pair. PasswordHash (argon2id)
// takes precedence over Password when both are set.
type Credentials struct {
	Email        string
	Name         string
	Password     string
	PasswordHash string
}

// Service issues and verifies session tokens and keeps the users table in
// sync with logins.
type Service struct {
	queries       *store.Queries
	secret        []byte
	ttl           time.Duration
	cookieName    string
	secureCookies bool
	adminEmail    string
	creds         Credentials
}

// Options configures a session Service.
type Options struct {
	Secret        []byte
	TTL           time.Duration
	CookieName    string
	SecureCookies bool
	AdminEmail    string
	Credentials   Credentials
}

// NewService creates a session service backed by the given query layer.
func NewService(queries *store.Queries, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = auth.DefaultTokenTTL
	}
	if opts.CookieName == "" {
		opts.CookieName = "folio_session"
	}
	return &Service{
		queries:       queries,
		secret:        opts.Secret,
		ttl:           opts.TTL,
		cookieName:    opts.CookieName,
		secureCookies: opts.SecureCookies,
		adminEmail:    opts.AdminEmail,
		creds:         opts.Credentials,
	}
}

// TokenFromRequest extracts the session token from a request. The cookie is
// checked first, then the Authorization bearer header.
func (s *Service) TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return token
	}
	return ""
}

// Authenticate resolves the request's token to a user. Returns ErrNoSession
// when no valid token is present and ErrUnknownUser when the token's user no
// longer exists.
func (s *Service) Authenticate(ctx context.Context, r *http.Request) (model.User, error) {
	token := s.TokenFromRequest(r)
	if token == "" {
		return model.User{}, ErrNoSession
	}

	claims, err := auth.VerifyToken(s.secret, token)
	if err != nil {
		return model.User{}, ErrNoSession
	}

	user, err := s.queries.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUnknownUser
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading session user: %w", err)
	}

	// Best effort; an authenticated request should not fail on this.
	_ = s.queries.UpdateUserLastSeen(ctx, user.ID, time.Now())

	return user, nil
}

// LoginWithPassword validates the configured admin credentials, upserts the
// user row with a freshly computed role, and issues a signed token.
func (s *Service) LoginWithPassword(ctx context.Context, email, password string) (model.User, string, error) {
	if s.creds.Email == "" || (s.creds.Password == "" && s.creds.PasswordHash == "") {
		return model.User{}, "", ErrLoginDisabled
	}

	if !strings.EqualFold(email, s.creds.Email) {
		return model.User{}, "", ErrBadCredentials
	}

	if s.creds.PasswordHash != "" {
		ok, err := auth.CheckPassword(password, s.creds.PasswordHash)
		if err != nil {
			return model.User{}, "", fmt.Errorf("verifying password: %w", err)
		}
		if !ok {
			return model.User{}, "", ErrBadCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) != 1 {
		return model.User{}, "", ErrBadCredentials
	}

	user, err := s.upsertLogin(ctx, s.creds.Email, s.creds.Name)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := auth.SignToken(s.secret, user.ID, user.Email, user.Role, s.ttl)
	if err != nil {
		return model.User{}, "", fmt.Errorf("signing token: %w", err)
	}

	return user, token, nil
}

// upsertLogin creates or refreshes the user row for a successful login. The
// role is recomputed from the configured admin email every time, so changing
// that setting takes effect at the next login.
func (s *Service) upsertLogin(ctx context.Context, email, name string) (model.User, error) {
	if name == "" {
		name = email
	}
	role := model.RoleForEmail(email, s.adminEmail)
	now := time.Now()

	existing, err := s.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return s.queries.CreateUser(ctx, store.CreateUserParams{
			ExternalID: uuid.NewString(),
			Name:       name,
			Email:      email,
			Provider:   "password",
			Role:       role,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading user: %w", err)
	}

	return s.queries.UpdateUserLogin(ctx, store.UpdateUserLoginParams{
		ID:         existing.ID,
		Name:       name,
		Role:       role,
		UpdatedAt:  now,
		LastSeenAt: sql.NullTime{Time: now, Valid: true},
	})
}

// SetCookie writes the session cookie. In production the cookie is Secure
// with SameSite=None so a frontend on another origin can send it; in
// development it stays Lax so plain http works.
func (s *Service) SetCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if s.secureCookies {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// ClearCookie expires the session cookie.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if s.secureCookies {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

// CookieName exposes the configured cookie name.
func (s *Service) CookieName() string {
	return s.cookieName
}
