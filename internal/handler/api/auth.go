// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/folio-site/folio-go/internal/middleware"
	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/service"
	"github.com/folio-site/folio-go/internal/session"
)

// AuthHandler handles login, logout and identity requests.
type AuthHandler struct {
	sessions *session.Service
	events   *service.EventService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Service, events *service.EventService) *AuthHandler {
	return &AuthHandler{sessions: sessions, events: events}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID         int64      `json:"id"`
	ExternalID string     `json:"external_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and the signed token. The
// token is also set as a cookie; the body copy serves clients that prefer
// the Authorization header.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func userToResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
	if u.LastSeenAt.Valid {
		resp.LastSeenAt = &u.LastSeenAt.Time
	}
	return resp
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	user, token, err := h.sessions.LoginWithPassword(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, session.ErrLoginDisabled):
		WriteForbidden(w, "Password login is not configured")
		return
	case errors.Is(err, session.ErrBadCredentials):
		_ = h.events.LogWarning(r.Context(), model.EventCategoryAuth, "failed login attempt", nil,
			map[string]any{"email": req.Email})
		WriteUnauthorized(w, "Invalid email or password")
		return
	case err != nil:
		slog.Error("logging in", "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	h.sessions.SetCookie(w, token)
	_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "admin login", &user.ID, nil)

	WriteSuccess(w, LoginResponse{User: userToResponse(user), Token: token})
}

// Logout handles POST /auth/logout. Always succeeds; there is no server
// state to tear down beyond the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "logout", &user.ID, nil)
	}
	h.sessions.ClearCookie(w)
	WriteSuccess(w, map[string]bool{"ok": true})
}

// Me handles GET /auth/me. Public: anonymous callers get a null user rather
// than an error, so the frontend can probe its login state cheaply.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		// Explicit null, not an omitted field.
		WriteJSON(w, http.StatusOK, map[string]any{"data": nil})
		return
	}
	WriteSuccess(w, userToResponse(*user))
}
