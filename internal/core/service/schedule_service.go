package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/pkg/metrics"
)

// memoAppendAttempts bounds retries of a memo append that lost a version race.
const memoAppendAttempts = 3

type ScheduleService struct {
	repo  ports.ScheduleRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

func NewScheduleService(repo ports.ScheduleRepository, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListByDate returns the schedules whose date equals date, grouped by type.
func (s *ScheduleService) ListByDate(ctx context.Context, date string) (*ports.DaySchedule, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.Schedule
	for _, sch := range all {
		if sch.Date == date {
			matched = append(matched, sch)
		}
	}

	return &ports.DaySchedule{
		Date:   date,
		Total:  len(matched),
		Groups: domain.GroupByType(matched),
	}, nil
}

// Search matches query case-insensitively against couple names and phones.
// An empty query returns every schedule.
func (s *ScheduleService) Search(ctx context.Context, query string) ([]domain.Schedule, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	matched := make([]domain.Schedule, 0)
	for _, sch := range all {
		if matchesCouple(sch.Couple, q) {
			matched = append(matched, sch)
		}
	}
	return matched, nil
}

func matchesCouple(c domain.Couple, q string) bool {
	for _, field := range []string{c.GroomName, c.BrideName, c.GroomPhone, c.BridePhone} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*domain.Schedule, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new schedule with a generated id and default status fields.
func (s *ScheduleService) Create(ctx context.Context, session domain.Session, in ports.ScheduleInput) (*domain.Schedule, error) {
	if !session.IsLoggedIn() {
		return nil, domain.ErrForbidden
	}
	if err := validateScheduleInput(in); err != nil {
		return nil, err
	}

	sch := &domain.Schedule{
		ID:            s.newID(),
		PaymentStatus: domain.PaymentUnsettled,
		Memos:         []domain.Memo{},
	}
	if err := checkPricing(session, sch, in); err != nil {
		return nil, err
	}
	applyScheduleInput(sch, in)

	if err := s.repo.Create(ctx, sch); err != nil {
		s.log.Error().Err(err).Msg("failed to create schedule")
		return nil, err
	}

	metrics.SchedulesCreatedTotal.WithLabelValues(string(sch.Type)).Inc()
	s.log.Info().
		Str("schedule_id", sch.ID).
		Str("date", sch.Date).
		Str("type", string(sch.Type)).
		Str("by", session.UserID).
		Msg("schedule created")
	return sch, nil
}

// Update replaces the editable fields of a schedule. version must be the
// version the caller read.
func (s *ScheduleService) Update(ctx context.Context, session domain.Session, id string, version int64, in ports.ScheduleInput) (*domain.Schedule, error) {
	if !session.IsLoggedIn() {
		return nil, domain.ErrForbidden
	}
	if err := validateScheduleInput(in); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Version != version {
		return nil, fmt.Errorf("update schedule %s: %w", id, domain.ErrVersionConflict)
	}
	if err := checkPricing(session, current, in); err != nil {
		return nil, err
	}

	updated := *current
	applyScheduleInput(&updated, in)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info().Str("schedule_id", id).Str("by", session.UserID).Int64("version", updated.Version).Msg("schedule updated")
	return &updated, nil
}

// Delete removes a schedule. Only a Master may delete.
func (s *ScheduleService) Delete(ctx context.Context, session domain.Session, id string, version int64) error {
	if !session.IsMaster() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id, version); err != nil {
		return err
	}
	s.log.Info().Str("schedule_id", id).Str("by", session.UserID).Msg("schedule deleted")
	return nil
}

// AppendMemo puts a new memo written by the session user in front of the
// schedule's memo list.
func (s *ScheduleService) AppendMemo(ctx context.Context, session domain.Session, id, content string) (*domain.Schedule, error) {
	if !session.IsLoggedIn() {
		return nil, domain.ErrForbidden
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: memo content is required", domain.ErrInvalidInput)
	}

	var lastErr error
	for attempt := 1; attempt <= memoAppendAttempts; attempt++ {
		sch, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		sch.Memos = domain.PrependMemo(sch.Memos, s.now().Format(domain.MemoDateLayout), session.Name, content)
		err = s.repo.Update(ctx, sch)
		if err == nil {
			metrics.MemosAppendedTotal.Inc()
			s.log.Info().Str("schedule_id", id).Int("memo_id", sch.Memos[0].ID).Str("writer", session.Name).Msg("memo appended")
			return sch, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
		s.log.Debug().Str("schedule_id", id).Int("attempt", attempt).Msg("memo append lost version race, retrying")
	}
	return nil, lastErr
}

// checkPricing rejects non-Master changes to price or payment status.
func checkPricing(session domain.Session, current *domain.Schedule, in ports.ScheduleInput) error {
	if session.IsMaster() {
		return nil
	}
	if in.Price != nil && *in.Price != current.Price {
		return fmt.Errorf("%w: only Master may change price", domain.ErrForbidden)
	}
	if in.PaymentStatus != nil && domain.PaymentStatus(*in.PaymentStatus) != current.PaymentStatus {
		return fmt.Errorf("%w: only Master may change payment status", domain.ErrForbidden)
	}
	return nil
}

func applyScheduleInput(sch *domain.Schedule, in ports.ScheduleInput) {
	sch.Date = in.Date
	sch.Time = in.Time
	sch.Type = domain.ScheduleType(in.Type)
	sch.Couple = in.Couple
	sch.Venue = in.Venue
	sch.Product = in.Product
	sch.Manager = in.Manager
	sch.SelectionDate = in.SelectionDate
	sch.SelectionTime = in.SelectionTime
	sch.USBDelivered = in.USBDelivered
	sch.AlbumDone = in.AlbumDone
	if in.Price != nil {
		sch.Price = *in.Price
	}
	if in.PaymentStatus != nil {
		sch.PaymentStatus = domain.PaymentStatus(*in.PaymentStatus)
	}
}

func validateScheduleInput(in ports.ScheduleInput) error {
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(domain.TimeLayout, in.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}
	valid := false
	for _, t := range domain.ScheduleTypes {
		if string(t) == in.Type {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown schedule type %q", domain.ErrInvalidInput, in.Type)
	}
	if in.SelectionDate != "" {
		if _, err := time.Parse(domain.DateLayout, in.SelectionDate); err != nil {
			return fmt.Errorf("%w: selection date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if in.SelectionTime != "" {
		if _, err := time.Parse(domain.TimeLayout, in.SelectionTime); err != nil {
			return fmt.Errorf("%w: selection time must be HH:MM", domain.ErrInvalidInput)
		}
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.PaymentStatus != nil {
		ps := domain.PaymentStatus(*in.PaymentStatus)
		if ps != domain.PaymentUnsettled && ps != domain.PaymentSettled {
			return fmt.Errorf("%w: unknown payment status %q", domain.ErrInvalidInput, *in.PaymentStatus)
		}
	}
	return nil
}
