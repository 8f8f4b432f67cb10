// Package worksheet implements the user and schedule repositories on top of
// the tabular store.
package worksheet

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/pkg/metrics"
)

const (
	WorksheetUsers     = "users"
	WorksheetSchedules = "schedules"
)

// sheet resolves one worksheet lazily and runs its writes through the
// serializer.
type sheet struct {
	opener ports.TableOpener
	store  string
	name   string
	header []string
	writes ports.WriteSerializer
	log    zerolog.Logger

	mu    sync.Mutex
	table ports.Table
}

func newSheet(opener ports.TableOpener, store, name string, header []string, writes ports.WriteSerializer, log zerolog.Logger) *sheet {
	return &sheet{opener: opener, store: store, name: name, header: header, writes: writes, log: log}
}

// open caches the table after the first successful Open. Failures are not
// cached so a store that comes back is picked up on the next call.
func (s *sheet) open(ctx context.Context) (ports.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil {
		return s.table, nil
	}
	t, err := s.opener.Open(ctx, s.store, s.name, s.header)
	if err != nil {
		s.log.Error().Err(err).Str("store", s.store).Str("worksheet", s.name).Msg("failed to open worksheet")
		return nil, err
	}
	s.table = t
	return t, nil
}

func (s *sheet) readAll(ctx context.Context) ([]domain.Row, error) {
	t, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	return t.ReadAll(ctx)
}

// write runs fn inside the worksheet's write section.
func (s *sheet) write(ctx context.Context, fn func(ctx context.Context, t ports.Table) error) error {
	t, err := s.open(ctx)
	if err != nil {
		return err
	}
	return s.writes.Do(ctx, s.name, func(ctx context.Context) error {
		return fn(ctx, t)
	})
}

// observe records the outcome of a write in the worksheet metrics.
func (s *sheet) observe(op string, err error) {
	switch {
	case err == nil:
		metrics.WorksheetWritesTotal.WithLabelValues(s.name, op).Inc()
	case errors.Is(err, domain.ErrVersionConflict):
		metrics.VersionConflictsTotal.WithLabelValues(s.name).Inc()
	}
}

// DirectWrites runs write sections inline. It is only safe when a single
// goroutine writes, as in tests and one-shot tools.
type DirectWrites struct{}

func (DirectWrites) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
