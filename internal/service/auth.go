package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/hash"
	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/tokens"
	"github.com/Skotchmaster/pet_place/internal/transport"
)

// bcrypt ignores everything past this many bytes.
const maxPasswordBytes = 72

type UserStore interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	IdentityTaken(ctx context.Context, username, email string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	PromoteAdmin(ctx context.Context, id uint) error
}

type AuthService struct {
	Users  UserStore
	Tokens *tokens.Manager
	Events Publisher
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With().Str("svc", "auth.register").Logger()

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", ErrValidation, maxPasswordBytes)
	}

	taken, err := s.Users.IdentityTaken(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check identity: %w", err)
	}
	if taken {
		return nil, ErrDuplicateIdentity
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	l.Info().Uint("user_id", user.ID).Msg("user_registered")
	publish(ctx, s.Events, events.TopicUsers, strconv.FormatUint(uint64(user.ID), 10),
		events.New(events.UserRegistered, user.ID, user.ID, map[string]string{"username": user.Username}))

	return s.issue(user)
}

// Login reports ErrUserNotFound for an unknown username and
// ErrInvalidCredential for a wrong password.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredential
	}

	return s.issue(user)
}

// Verify resolves a token to its user. A token whose user is gone fails with
// both ErrInvalidToken and ErrUserNotFound.
func (s *AuthService) Verify(ctx context.Context, raw string) (*models.User, error) {
	id, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrUserNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// SeedAdmin makes sure an admin account with the given credentials exists.
// An existing user with that name is promoted; its password is left alone.
func (s *AuthService) SeedAdmin(ctx context.Context, username, email, password string) error {
	l := logging.FromContext(ctx).With().Str("svc", "auth.seed_admin").Str("username", username).Logger()

	existing, err := s.Users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.IsAdmin {
			return nil
		}
		if err := s.Users.PromoteAdmin(ctx, existing.ID); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		l.Info().Msg("admin_promoted")
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("load admin: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      true,
	}
	if err := s.Users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	l.Info().Uint("user_id", admin.ID).Msg("admin_created")
	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}
