package ports

import (
	"context"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// ScheduleRepository persists schedule records.
type ScheduleRepository interface {
	List(ctx context.Context) ([]domain.Schedule, error)
	FindByID(ctx context.Context, id string) (*domain.Schedule, error)
	Create(ctx context.Context, s *domain.Schedule) error
	// Update writes s if its Version is still current and stores the new
	// version back into s. A stale version yields domain.ErrVersionConflict.
	Update(ctx context.Context, s *domain.Schedule) error
	Delete(ctx context.Context, id string, version int64) error
}
