package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tbourn/pugorugh-backend/internal/repo"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(newSvcDB(t), repo.UserStore{}, bcrypt.MinCost)
}

func TestUserService_RegisterLoginAuthenticate(t *testing.T) {
	s := newTestUserService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "  alice ", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "alice" || u.PasswordHash == "s3cret" {
		t.Fatalf("unexpected user: %+v", u)
	}

	tok, err := s.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(tok) != 2*tokenBytes {
		t.Fatalf("token length = %d; want %d", len(tok), 2*tokenBytes)
	}
	again, err := s.Login(ctx, "alice", "s3cret")
	if err != nil || again != tok {
		t.Fatalf("second login = (%q, %v); want same token", again, err)
	}

	uid, err := s.Authenticate(ctx, tok)
	if err != nil || uid != u.ID {
		t.Fatalf("Authenticate = (%d, %v); want %d", uid, err, u.ID)
	}
}

func TestUserService_Errors(t *testing.T) {
	s := newTestUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, " ", "pw"); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if _, err := s.Register(ctx, "bob", ""); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if _, err := s.Register(ctx, "bob", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register(ctx, "bob", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := s.Login(ctx, "bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "deadbeef"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := s.Authenticate(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
