package ports

import (
	"context"
	"time"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// SignupInput carries a signup request.
type SignupInput struct {
	ID       string
	Password string
	Name     string
	Role     string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token   string
	Session domain.Session
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, id, password string) (*LoginResult, error)
	Logout(ctx context.Context, session domain.Session) error
}

// TokenRevoker records logged-out token ids until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
