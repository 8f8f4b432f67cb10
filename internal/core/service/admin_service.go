package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// AdminService backs the Master-only roster console.
type AdminService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, log: log}
}

// Roster returns every user in worksheet order.
func (s *AdminService) Roster(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// SaveRoster applies role, approval and name edits to the roster and rewrites
// the users worksheet. Password hashes and signup dates come from the
// pre-edit table, never from the edits.
func (s *AdminService) SaveRoster(ctx context.Context, session domain.Session, edits []ports.RosterEdit) ([]domain.User, error) {
	if !session.IsMaster() {
		return nil, domain.ErrForbidden
	}

	byID := make(map[string]ports.RosterEdit, len(edits))
	for _, e := range edits {
		if !domain.IsValidRole(e.Role) {
			return nil, fmt.Errorf("%w: unknown role %q for user %s", domain.ErrInvalidInput, e.Role, e.ID)
		}
		if e.Name != nil && strings.TrimSpace(*e.Name) == "" {
			return nil, fmt.Errorf("%w: name of user %s must not be empty", domain.ErrInvalidInput, e.ID)
		}
		byID[e.ID] = e
	}

	var saved []domain.User
	err := s.users.Rewrite(ctx, func(current []domain.User) ([]domain.User, error) {
		known := make(map[string]struct{}, len(current))
		for _, u := range current {
			known[u.ID] = struct{}{}
		}
		for id := range byID {
			if _, ok := known[id]; !ok {
				return nil, fmt.Errorf("save roster: %w: %s", domain.ErrUserNotFound, id)
			}
		}

		next := make([]domain.User, len(current))
		for i, u := range current {
			if e, ok := byID[u.ID]; ok {
				u.Role = e.Role
				u.Approved = e.Approved
				if e.Name != nil {
					u.Name = strings.TrimSpace(*e.Name)
				}
			}
			next[i] = u
		}
		saved = next
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("by", session.UserID).Int("edits", len(edits)).Msg("roster saved")
	return saved, nil
}
