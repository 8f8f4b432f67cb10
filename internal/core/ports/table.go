package ports

import (
	"context"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

// TableOpener resolves a worksheet inside a named tabular store.
type TableOpener interface {
	// Open returns the worksheet. When it does not exist and defaultHeader is
	// non-empty it is created with that header; otherwise
	// domain.ErrWorksheetNotFound is returned. An unreachable or unknown
	// store yields domain.ErrStoreUnavailable.
	Open(ctx context.Context, store, worksheet string, defaultHeader []string) (Table, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Table is one worksheet. Reads always return the full sheet.
type Table interface {
	Name() string
	Header(ctx context.Context) ([]string, error)
	ReadAll(ctx context.Context) ([]domain.Row, error)
	AppendRow(ctx context.Context, rec domain.Record) error
	AppendRows(ctx context.Context, recs []domain.Record) error
	// ReplaceAll clears the worksheet and writes header followed by recs.
	ReplaceAll(ctx context.Context, header []string, recs []domain.Record) error
	// UpdateRow overwrites the first row whose keyField equals keyValue,
	// provided its version still equals expected. It returns the new version.
	UpdateRow(ctx context.Context, keyField, keyValue string, expected int64, rec domain.Record) (int64, error)
	DeleteRow(ctx context.Context, keyField, keyValue string, expected int64) error
}

// WriteSerializer gives fn exclusive write access to key for its duration.
type WriteSerializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
