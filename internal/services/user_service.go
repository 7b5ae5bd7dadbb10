// Package services – UserService
//
// This file implements account registration, password login and token
// authentication. Passwords are stored as bcrypt hashes; each user holds a
// single opaque token which is minted on first login and reused afterwards.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/repo"
)

// tokenBytes yields a 40 hex character key.
const tokenBytes = 20

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error)
	GetOrCreateToken(ctx context.Context, db *gorm.DB, userID int64, key string) (*domain.AuthToken, error)
	GetToken(ctx context.Context, db *gorm.DB, key string) (*domain.AuthToken, error)
}

// UserService manages accounts and tokens.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo

	// BcryptCost is the hashing cost; values outside bcrypt's range fall
	// back to bcrypt.DefaultCost.
	BcryptCost int
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo, cost int) *UserService {
	return &UserService{DB: db, Repo: r, BcryptCost: cost}
}

// Register creates a user. Usernames are trimmed; blank credentials yield
// ErrEmptyUsername and a taken username ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "Register",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyUsername
	}

	cost := s.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.CreateUser(ctx, s.DB, username, string(hash))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	return u, err
}

// Login verifies the credentials and returns the user's token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "Login",
		trace.WithAttributes(attribute.String("user.name", username)),
	)
	defer span.End()

	u, err := s.Repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	tok, err := s.Repo.GetOrCreateToken(ctx, s.DB, u.ID, key)
	if err != nil {
		return "", err
	}
	return tok.Key, nil
}

// Authenticate resolves a token to its user id.
func (s *UserService) Authenticate(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrUnauthenticated
	}
	tok, err := s.Repo.GetToken(ctx, s.DB, token)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		return 0, err
	}
	return tok.UserID, nil
}

func newTokenKey() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
