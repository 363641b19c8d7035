package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"djazair-backend/internal/admins"
	"djazair-backend/internal/auth"
	"djazair-backend/internal/httpx"
	"djazair-backend/internal/transport"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type MeResponse struct {
	Authenticated bool `json:"authenticated"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "email and password required", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Admins == nil || s.Tokens == nil {
		log.Warn("login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.Admins.VerifyLogin(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, admins.ErrInvalidCredentials) {
			log.Warn("login: invalid credentials", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("login: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	token, err := s.Tokens.Issue()
	if err != nil {
		log.Error("login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	auth.SetSessionCookie(w, token, s.Tokens.TTL, s.CookieSecure)
	log.Info("login: ok", slog.String("email", req.Email))
	transport.WriteOK(w)
}

// Logout only clears the cookie. A copied token stays valid until it expires.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	auth.ClearSessionCookie(w, s.CookieSecure)
	log.Info("logout: ok")
	transport.WriteOK(w)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, MeResponse{Authenticated: s.Tokens.Authenticated(r)})
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteOK(w)
}
