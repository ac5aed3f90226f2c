// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio-site/folio-go/internal/auth"
	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
	"github.com/folio-site/folio-go/internal/testutil"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testService(t *testing.T, creds Credentials) (*Service, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	svc := NewService(store.New(db), Options{
		Secret:      testSecret,
		AdminEmail:  creds.Email,
		Credentials: creds,
	})
	return svc, cleanup
}

func TestLoginDisabledWithoutCredentials(t *testing.T) {
	svc, cleanup := testService(t, Credentials{})
	defer cleanup()

	_, _, err := svc.LoginWithPassword(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, ErrLoginDisabled) {
		t.Errorf("err = %v, want ErrLoginDisabled", err)
	}
}

func TestLoginWithPlainPassword(t *testing.T) {
	svc, cleanup := testService(t, Credentials{
		Email: "admin@example.com", Name: "Admin", Password: "correct horse",
	})
	defer cleanup()

	ctx := context.Background()

	if _, _, err := svc.LoginWithPassword(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password err = %v, want ErrBadCredentials", err)
	}
	if _, _, err := svc.LoginWithPassword(ctx, "other@example.com", "correct horse"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong email err = %v, want ErrBadCredentials", err)
	}

	user, token, err := svc.LoginWithPassword(ctx, "ADMIN@example.com", "correct horse")
	if err != nil {
		t.Fatalf("LoginWithPassword: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := auth.VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != model.RoleAdmin {
		t.Errorf("claims = %+v, want user %+v", claims, user)
	}
}

func TestLoginWithPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	svc, cleanup := testService(t, Credentials{
		Email: "admin@example.com", PasswordHash: hash,
		// A plain password alongside the hash must be ignored.
		Password: "decoy",
	})
	defer cleanup()

	ctx := context.Background()

	if _, _, err := svc.LoginWithPassword(ctx, "admin@example.com", "decoy"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("plain-password fallback used despite hash: %v", err)
	}
	if _, _, err := svc.LoginWithPassword(ctx, "admin@example.com", "correct horse"); err != nil {
		t.Errorf("hash login: %v", err)
	}
}

func TestLoginUpsertsExistingUser(t *testing.T) {
	svc, cleanup := testService(t, Credentials{
		Email: "admin@example.com", Password: "pw",
	})
	defer cleanup()

	ctx := context.Background()

	first, _, err := svc.LoginWithPassword(ctx, "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, _, err := svc.LoginWithPassword(ctx, "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second login created a new user: %d != %d", second.ID, first.ID)
	}
	if !second.LastSeenAt.Valid {
		t.Error("LastSeenAt not stamped on login")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, cleanup := testService(t, Credentials{
		Email: "admin@example.com", Password: "pw",
	})
	defer cleanup()

	ctx := context.Background()

	user, token, err := svc.LoginWithPassword(ctx, "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Bearer header.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	got, err := svc.Authenticate(ctx, r)
	if err != nil {
		t.Fatalf("Authenticate(bearer): %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user = %d, want %d", got.ID, user.ID)
	}

	// Cookie.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: svc.CookieName(), Value: token})
	if _, err := svc.Authenticate(ctx, r); err != nil {
		t.Errorf("Authenticate(cookie): %v", err)
	}

	// No token at all.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := svc.Authenticate(ctx, r); !errors.Is(err, ErrNoSession) {
		t.Errorf("no token err = %v, want ErrNoSession", err)
	}

	// Garbage token.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	if _, err := svc.Authenticate(ctx, r); !errors.Is(err, ErrNoSession) {
		t.Errorf("bad token err = %v, want ErrNoSession", err)
	}
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	svc, cleanup := testService(t, Credentials{})
	defer cleanup()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: svc.CookieName(), Value: "from-cookie"})
	r.Header.Set("Authorization", "Bearer from-header")

	if got := svc.TokenFromRequest(r); got != "from-cookie" {
		t.Errorf("token = %q, want cookie value", got)
	}
}

func TestCookieAttributes(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		db, cleanup := testutil.TestDB(t)
		defer cleanup()
		svc := NewService(store.New(db), Options{Secret: testSecret})

		w := httptest.NewRecorder()
		svc.SetCookie(w, "tok")
		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("cookies = %d, want 1", len(cookies))
		}
		c := cookies[0]
		if !c.HttpOnly || c.Secure || c.SameSite != http.SameSiteLaxMode {
			t.Errorf("dev cookie = %+v", c)
		}
	})

	t.Run("production", func(t *testing.T) {
		db, cleanup := testutil.TestDB(t)
		defer cleanup()
		svc := NewService(store.New(db), Options{Secret: testSecret, SecureCookies: true})

		w := httptest.NewRecorder()
		svc.SetCookie(w, "tok")
		c := w.Result().Cookies()[0]
		if !c.Secure || c.SameSite != http.SameSiteNoneMode {
			t.Errorf("prod cookie = %+v", c)
		}

		w = httptest.NewRecorder()
		svc.ClearCookie(w)
		cleared := w.Result().Cookies()[0]
		if cleared.MaxAge >= 0 || cleared.Value != "" {
			t.Errorf("cleared cookie = %+v", cleared)
		}
	})
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, cleanup := testService(t, Credentials{})
	defer cleanup()

	// Token for a user id that never existed.
	token, err := auth.SignToken(testSecret, 9999, "ghost@example.com", model.RoleUser, 0)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if _, err := svc.Authenticate(context.Background(), r); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("err = %v, want ErrUnknownUser", err)
	}
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	svc, cleanup := testService(t, Credentials{})
	defer cleanup()

	other := []byte(strings.Repeat("x", 32))
	token, err := auth.SignToken(other, 1, "a@b.c", model.RoleUser, 0)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if _, err := svc.Authenticate(context.Background(), r); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}
