package worksheet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	sheet *sheet
}

func NewUserRepository(opener ports.TableOpener, store string, writes ports.WriteSerializer, log zerolog.Logger) *UserRepository {
	return &UserRepository{sheet: newSheet(opener, store, WorksheetUsers, UserHeader, writes, log)}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.sheet.readAll(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRecord(row.Record))
	}
	return users, nil
}

// FindByID returns the first user whose id matches.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	rows, err := r.sheet.readAll(ctx)
	if err != nil {
		return nil, err
	}
	if row := findByID(rows, id); row != nil {
		u := userFromRecord(row.Record)
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		rows, err := t.ReadAll(ctx)
		if err != nil {
			return err
		}
		if findByID(rows, user.ID) != nil {
			return domain.ErrUserExists
		}
		return t.AppendRow(ctx, userToRecord(*user))
	})
	r.sheet.observe("append", err)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		rows, err := t.ReadAll(ctx)
		if err != nil {
			return err
		}
		row := findByID(rows, id)
		if row == nil {
			return domain.ErrUserNotFound
		}
		rec := row.Record
		rec["password"] = hash
		_, err = t.UpdateRow(ctx, "id", row.Record["id"], row.Version, rec)
		return err
	})
	r.sheet.observe("update_row", err)
	if errors.Is(err, domain.ErrRowNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

// Rewrite replaces the users worksheet with the result of mutate. Columns the
// worksheet carries beyond the user fields are kept for users that survive.
func (r *UserRepository) Rewrite(ctx context.Context, mutate func(current []domain.User) ([]domain.User, error)) error {
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		header, err := t.Header(ctx)
		if err != nil {
			return err
		}
		rows, err := t.ReadAll(ctx)
		if err != nil {
			return err
		}

		current := make([]domain.User, 0, len(rows))
		original := make(map[string]domain.Record, len(rows))
		for _, row := range rows {
			u := userFromRecord(row.Record)
			current = append(current, u)
			if _, dup := original[u.ID]; !dup {
				original[u.ID] = row.Record
			}
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}

		recs := make([]domain.Record, 0, len(next))
		for _, u := range next {
			prev, existed := original[u.ID]
			rec := overlay(prev, userToRecord(u))
			if existed {
				// The signup date is read-only; keep the cell as written.
				rec["signup_date"] = prev["signup_date"]
			}
			recs = append(recs, rec)
		}
		if err := t.ReplaceAll(ctx, mergeHeader(header, UserHeader), recs); err != nil {
			return fmt.Errorf("rewrite users: %w", err)
		}
		return nil
	})
	r.sheet.observe("replace_all", err)
	return err
}

// findByID returns the first row whose id cell, ignoring surrounding
// whitespace, equals id.
func findByID(rows []domain.Row, id string) *domain.Row {
	id = strings.TrimSpace(id)
	for i := range rows {
		if strings.TrimSpace(rows[i].Record["id"]) == id {
			return &rows[i]
		}
	}
	return nil
}

// overlay copies base and lays fields over it.
func overlay(base, fields domain.Record) domain.Record {
	out := make(domain.Record, len(base)+len(fields))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// mergeHeader appends the required columns missing from header.
func mergeHeader(header, required []string) []string {
	out := append([]string(nil), header...)
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		seen[h] = struct{}{}
	}
	for _, h := range required {
		if _, ok := seen[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}
