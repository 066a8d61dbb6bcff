// Package services contains application services for the companion client.
// This file defines the session service: signup, login, logout, and restore
// of a persisted session at process start.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/physicalai/companion/internal/client/api"
	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/client/storage"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/logging"
)

// SessionService owns the authenticated-user record and its persistence.
//
// Contract:
//   - Signup: validate the profile locally, create the account, persist the
//     password-free session record, and return it.
//   - Login: authenticate and persist the session record (and token, in the
//     backend variant).
//   - Logout: clear all persisted session state; idempotent.
//   - FetchCurrentUser: restore a persisted session at process start;
//     failures are silent (state is cleared, (nil, nil) is returned).
//   - Current: the in-memory session record, nil when logged out.
//   - Token: the bearer credential for authenticated requests, empty in the
//     local variant.
//
// Errors returned by Signup/Login carry user-displayable messages and match
// the common sentinels through errors.Is. No method panics across the
// boundary.
type SessionService interface {
	Signup(ctx context.Context, profile models.SignupProfile) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	FetchCurrentUser(ctx context.Context) (*models.User, error)
	Current() *models.User
	Token() string
}

// ValidateSignup checks the signup profile the way the form does before any
// network or storage work: matching password confirmation and required
// profile selections. The returned error wraps common.ErrValidation and its
// message is suitable for inline display.
func ValidateSignup(p models.SignupProfile) error {
	if p.Password != p.ConfirmPassword {
		return fmt.Errorf("%w: Passwords do not match", common.ErrValidation)
	}
	if strings.TrimSpace(string(p.Background)) == "" {
		return fmt.Errorf("%w: Please select your background", common.ErrValidation)
	}
	if strings.TrimSpace(string(p.Hardware)) == "" {
		return fmt.Errorf("%w: Please select your hardware", common.ErrValidation)
	}
	if strings.TrimSpace(string(p.Experience)) == "" {
		return fmt.Errorf("%w: Please select your experience level", common.ErrValidation)
	}
	return nil
}

// backendSession is the canonical SessionService variant: credentials are
// exchanged with the backend for an opaque bearer token, which is persisted
// alongside the password-free user record.
type backendSession struct {
	client api.Client
	store  storage.Store
	logger logging.Logger

	mu      sync.RWMutex
	current *models.User
	token   string
}

// NewSessionService constructs the backend-token SessionService.
func NewSessionService(client api.Client, store storage.Store, logger logging.Logger) SessionService {
	return &backendSession{
		client: client,
		store:  store,
		logger: logger.With("component", "session"),
	}
}

func (s *backendSession) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *backendSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Signup registers the account and, like the site, chains straight into a
// login so the user ends up with a live session.
func (s *backendSession) Signup(ctx context.Context, profile models.SignupProfile) (*models.User, error) {
	if err := ValidateSignup(profile); err != nil {
		return nil, err
	}

	req := api.SignupRequest{
		Name:       profile.Name,
		Email:      profile.Email,
		Password:   profile.Password,
		Background: profile.Background,
		Hardware:   profile.Hardware,
		Experience: profile.Experience,
		Language:   profile.Language,
	}

	if _, err := s.client.Signup(ctx, req); err != nil {
		if be, ok := asBackendError(err); ok {
			msg := be.Message("Signup failed")
			if strings.Contains(strings.ToLower(msg), "already exists") {
				return nil, fmt.Errorf("%w: %s", common.ErrConflict, msg)
			}
			return nil, fmt.Errorf("%w: %s", common.ErrValidation, msg)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	return s.Login(ctx, profile.Email, profile.Password)
}

func (s *backendSession) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		if be, ok := asBackendError(err); ok {
			return nil, fmt.Errorf("%w: %s", common.ErrAuth, be.Message("Invalid email or password"))
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.persist(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = resp.User
	s.token = resp.Token
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "email", email)
	return resp.User, nil
}

func (s *backendSession) persist(ctx context.Context, token string, user *models.User) error {
	if err := s.store.Set(ctx, storage.KeyAuthToken, []byte(token)); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserData, data); err != nil {
		return fmt.Errorf("persisting session record: %w", err)
	}
	return nil
}

// Logout clears the token and the session record. Clearing state that is
// already absent is not an error.
func (s *backendSession) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyAuthToken); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, storage.KeyUserData); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()

	s.logger.Info(ctx, "logged out")
	return nil
}

// FetchCurrentUser validates a persisted token at process start. A rejected
// token or an unreachable backend clears the token and leaves the session
// empty; neither is reported as an error to the caller.
func (s *backendSession) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	token := string(raw)

	user, err := s.client.Me(ctx, token)
	if err != nil {
		s.logger.Warn(ctx, "session restore failed, clearing token", "error", err.Error())
		_ = s.store.Delete(ctx, storage.KeyAuthToken)
		_ = s.store.Delete(ctx, storage.KeyUserData)
		return nil, nil
	}

	data, err := json.Marshal(user)
	if err == nil {
		_ = s.store.Set(ctx, storage.KeyUserData, data)
	}

	s.mu.Lock()
	s.current = user
	s.token = token
	s.mu.Unlock()

	return user, nil
}

func asBackendError(err error) (*common.BackendError, bool) {
	var be *common.BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
