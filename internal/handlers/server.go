package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"djazair-backend/internal/auth"
	"djazair-backend/internal/middleware"
	"djazair-backend/internal/validation"
)

// Credentials checks an admin login.
type Credentials interface {
	VerifyLogin(ctx context.Context, email, password string) error
}

// Server holds the session endpoints. Domain endpoints live with their
// packages.
type Server struct {
	Admins       Credentials
	Tokens       *auth.Manager
	Val          *validation.Validator
	Log          *slog.Logger
	CookieSecure bool
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
