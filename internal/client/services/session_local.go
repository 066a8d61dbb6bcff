package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/physicalai/companion/internal/client/models"
	"github.com/physicalai/companion/internal/client/storage"
	"github.com/physicalai/companion/internal/common"
	"github.com/physicalai/companion/internal/cryptox"
	"github.com/physicalai/companion/internal/logging"
)

// storedUser is one entry of the local registered-user list kept under the
// users storage key. The password is stored as an argon2id digest; the
// original site kept it in clear, which was a known weakness rather than a
// contract.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// localSession is the offline SessionService variant: accounts live entirely
// in the local store and no token is issued. Kept as an explicit fallback
// for working through the textbook without a backend.
type localSession struct {
	store  storage.Store
	logger logging.Logger

	mu      sync.RWMutex
	current *models.User
}

// NewLocalSessionService constructs the local-only SessionService.
func NewLocalSessionService(store storage.Store, logger logging.Logger) SessionService {
	return &localSession{
		store:  store,
		logger: logger.With("component", "session", "mode", "local"),
	}
}

func (s *localSession) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the empty string: the local variant never issues one.
func (s *localSession) Token() string { return "" }

func (s *localSession) loadUsers(ctx context.Context) ([]storedUser, error) {
	raw, err := s.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var users []storedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decoding user list: %w", err)
	}
	return users, nil
}

func (s *localSession) setSession(ctx context.Context, user models.User) (*models.User, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encoding session record: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserData, data); err != nil {
		return nil, fmt.Errorf("persisting session record: %w", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	return &user, nil
}

func (s *localSession) Signup(ctx context.Context, profile models.SignupProfile) (*models.User, error) {
	if err := ValidateSignup(profile); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword([]byte(profile.Password))
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		ID:         uuid.NewString(),
		Name:       profile.Name,
		Email:      profile.Email,
		Hardware:   profile.Hardware,
		Experience: profile.Experience,
		Language:   profile.Language,
		Background: profile.Background,
		CreatedAt:  time.Now().UTC(),
	}

	// Duplicate check and append run inside one transaction so two signups
	// for the same email cannot both slip past the check.
	err = s.store.Update(ctx, storage.KeyUsers, func(old []byte) ([]byte, error) {
		var users []storedUser
		if len(old) > 0 {
			if err := json.Unmarshal(old, &users); err != nil {
				return nil, fmt.Errorf("decoding user list: %w", err)
			}
		}
		for _, u := range users {
			if u.Email == profile.Email {
				return nil, fmt.Errorf("%w: User already exists", common.ErrConflict)
			}
		}
		users = append(users, storedUser{User: user, PasswordHash: hash})
		data, err := json.Marshal(users)
		if err != nil {
			return nil, fmt.Errorf("encoding user list: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "registered local account", "email", profile.Email)
	return s.setSession(ctx, user)
}

func (s *localSession) Login(ctx context.Context, email, password string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		ok, err := cryptox.VerifyPassword(u.PasswordHash, []byte(password))
		if err != nil || !ok {
			break
		}
		s.logger.Info(ctx, "logged in", "email", email)
		return s.setSession(ctx, u.User)
	}

	return nil, fmt.Errorf("%w: Invalid email or password", common.ErrAuth)
}

func (s *localSession) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyUserData); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.logger.Info(ctx, "logged out")
	return nil
}

// FetchCurrentUser restores the session record persisted by a previous run.
// A corrupt record is discarded silently.
func (s *localSession) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, storage.KeyUserData)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn(ctx, "discarding corrupt session record", "error", err.Error())
		_ = s.store.Delete(ctx, storage.KeyUserData)
		return nil, nil
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	return &user, nil
}
