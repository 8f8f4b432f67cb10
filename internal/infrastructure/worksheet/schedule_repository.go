package worksheet

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

var _ ports.ScheduleRepository = (*ScheduleRepository)(nil)

type ScheduleRepository struct {
	sheet *sheet
	log   zerolog.Logger
}

func NewScheduleRepository(opener ports.TableOpener, store string, writes ports.WriteSerializer, log zerolog.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		sheet: newSheet(opener, store, WorksheetSchedules, ScheduleHeader, writes, log),
		log:   log,
	}
}

func (r *ScheduleRepository) List(ctx context.Context) ([]domain.Schedule, error) {
	rows, err := r.sheet.readAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduleFromRow(row, r.log))
	}
	return out, nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*domain.Schedule, error) {
	rows, err := r.sheet.readAll(ctx)
	if err != nil {
		return nil, err
	}
	if row := findByID(rows, id); row != nil {
		s := scheduleFromRow(*row, r.log)
		return &s, nil
	}
	return nil, domain.ErrScheduleNotFound
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		return t.AppendRow(ctx, scheduleToRecord(s))
	})
	r.sheet.observe("append", err)
	if err == nil {
		s.Version = 1
	}
	return err
}

func (r *ScheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	var version int64
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		rows, err := t.ReadAll(ctx)
		if err != nil {
			return err
		}
		row := findByID(rows, s.ID)
		if row == nil {
			return domain.ErrScheduleNotFound
		}
		// Columns the schedule does not model keep their stored values.
		rec := overlay(row.Record, scheduleToRecord(s))
		v, err := t.UpdateRow(ctx, "id", row.Record["id"], s.Version, rec)
		version = v
		return err
	})
	r.sheet.observe("update_row", err)
	if err != nil {
		if errors.Is(err, domain.ErrRowNotFound) {
			return domain.ErrScheduleNotFound
		}
		return err
	}
	s.Version = version
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id string, version int64) error {
	err := r.sheet.write(ctx, func(ctx context.Context, t ports.Table) error {
		return t.DeleteRow(ctx, "id", id, version)
	})
	r.sheet.observe("delete_row", err)
	if errors.Is(err, domain.ErrRowNotFound) {
		return domain.ErrScheduleNotFound
	}
	return err
}
