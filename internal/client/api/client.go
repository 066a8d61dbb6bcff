// Package api defines the companion's interface to the textbook backend:
// authentication, the chat query endpoint, and the chapter personalize and
// translate endpoints. All calls are JSON over HTTP; authenticated calls
// carry an opaque bearer token issued by the backend on login or signup.
package api

import (
	"context"

	"github.com/physicalai/companion/internal/client/models"
)

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Background models.Background `json:"background,omitempty"`
	Hardware   models.Hardware   `json:"hardware,omitempty"`
	Experience models.Experience `json:"experience,omitempty"`
	Language   models.Language   `json:"language,omitempty"`
}

// AuthResponse is the success body of /auth/login and /auth/signup.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserProfile is the profile fragment attached to personalize requests.
type UserProfile struct {
	Hardware   models.Hardware   `json:"hardware"`
	Experience models.Experience `json:"experience"`
	Language   models.Language   `json:"language"`
}

// Client is the backend API surface used by the services layer.
//
// Contract:
//   - Signup/Login: exchange credentials for a token plus a password-free
//     user record; a non-2xx response surfaces as *common.BackendError with
//     the backend's detail message when present.
//   - Me: validate a persisted token; a 401 surfaces as common.ErrAuth.
//   - Query: send a sanitized question (plus optional selection); returns
//     the answer text, empty when the backend produced none.
//   - Personalize/TranslateUrdu: post cleaned chapter content; return the
//     replacement HTML.
//
// All methods honor context cancellation and deadlines.
type Client interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Query(ctx context.Context, query string, selectedText *string) (string, error)
	Personalize(ctx context.Context, token, content, title string, profile UserProfile) (string, error)
	TranslateUrdu(ctx context.Context, token, content, title string) (string, error)
}
