package ports

import (
	"context"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// ScheduleInput carries the editable fields of a schedule. Price and
// PaymentStatus are nil when the caller did not send them.
type ScheduleInput struct {
	Date          string
	Time          string
	Type          string
	Couple        domain.Couple
	Venue         string
	Product       string
	Manager       string
	SelectionDate string
	SelectionTime string
	USBDelivered  bool
	AlbumDone     bool
	Price         *float64
	PaymentStatus *string
}

// DaySchedule is the list-by-date view.
type DaySchedule struct {
	Date   string
	Total  int
	Groups []domain.TypeGroup
}

type ScheduleService interface {
	ListByDate(ctx context.Context, date string) (*DaySchedule, error)
	Search(ctx context.Context, query string) ([]domain.Schedule, error)
	Get(ctx context.Context, id string) (*domain.Schedule, error)
	Create(ctx context.Context, session domain.Session, in ScheduleInput) (*domain.Schedule, error)
	Update(ctx context.Context, session domain.Session, id string, version int64, in ScheduleInput) (*domain.Schedule, error)
	Delete(ctx context.Context, session domain.Session, id string, version int64) error
	AppendMemo(ctx context.Context, session domain.Session, id, content string) (*domain.Schedule, error)
}
