package ports

import (
	"context"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// UserRepository persists studio users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Create appends the user, failing with domain.ErrUserExists when the id
	// is taken. The check and the append happen under one write section.
	Create(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	// Rewrite reads the whole roster, passes it to mutate and replaces the
	// worksheet with the result. mutate errors abort without writing.
	Rewrite(ctx context.Context, mutate func(current []domain.User) ([]domain.User, error)) error
}
