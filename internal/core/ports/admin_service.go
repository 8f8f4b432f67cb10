package ports

import (
	"context"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// RosterEdit is one row of the admin roster editor. Name is left unchanged
// when nil.
type RosterEdit struct {
	ID       string
	Role     string
	Approved bool
	Name     *string
}

type AdminService interface {
	Roster(ctx context.Context) ([]domain.User, error)
	SaveRoster(ctx context.Context, session domain.Session, edits []RosterEdit) ([]domain.User, error)
}
