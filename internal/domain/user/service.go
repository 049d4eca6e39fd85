package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// HashCost is the bcrypt work factor for stored passwords.
const HashCost = 12

type Servicer interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) (User, error)
	PromoteToAdmin(ctx context.Context, email string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
	hashCost  int
	now       func() time.Time
	newID     func() string

	dummyOnce sync.Once
	dummyHash []byte
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost; intended for tests.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, validator Validator, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
		hashCost:  HashCost,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if err := s.validator.ValidateRegister(name, email, password); err != nil {
		s.log.Debug("validation failed", slog.String("email", email), slog.String("error", err.Error()))
		return User{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleUser,
		Preferences:  DefaultPreferences(),
		CreatedAt:    s.now().UTC(),
	}

	// The unique index still guards against a concurrent registration slipping past the check above.
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", slog.String("user_id", u.ID))

	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, invalid("Email and password are required")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn the same bcrypt time as a real comparison so unknown emails are not distinguishable.
			_ = bcrypt.CompareHashAndPassword(s.fakeHash(), []byte(password))
			return User{}, ErrInvalidAuth
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidAuth
	}

	if err := s.validator.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("password changed", slog.String("user_id", id))
	return nil
}

func (s *Service) UpdatePreferences(ctx context.Context, id string, prefs Preferences) (User, error) {
	if err := s.validator.ValidatePreferences(prefs); err != nil {
		return User{}, err
	}

	if err := s.repo.UpdatePreferences(ctx, id, prefs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("update preferences: %w", err)
	}

	return s.FindByID(ctx, id)
}

// PromoteToAdmin grants the admin role. It is only reachable from the admin CLI, never from HTTP input.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return User{}, invalid("Email is required")
	}

	u, err := s.repo.SetRole(ctx, email, RoleAdmin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("set role: %w", err)
	}

	s.log.Warn("user promoted to admin", slog.String("user_id", u.ID), slog.String("email", u.Email))
	return u, nil
}

func (s *Service) fakeHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("artha-timing-equalizer"), s.hashCost)
	})
	return s.dummyHash
}
