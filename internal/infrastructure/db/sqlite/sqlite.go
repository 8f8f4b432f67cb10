// Package sqlite stores worksheets in SQLite files, one file per store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

var _ ports.TableOpener = (*Opener)(nil)

// Opener opens worksheets from <dir>/<store>.db.
type Opener struct {
	dir        string
	autoCreate bool

	mu  sync.Mutex
	dbs map[string]*sql.DB
}

// NewOpener returns an Opener rooted at dir. When autoCreate is false a store
// whose file does not exist yet is reported as unavailable.
func NewOpener(dir string, autoCreate bool) *Opener {
	return &Opener{dir: dir, autoCreate: autoCreate, dbs: make(map[string]*sql.DB)}
}

func (o *Opener) Open(ctx context.Context, store, worksheet string, defaultHeader []string) (ports.Table, error) {
	db, err := o.database(ctx, store)
	if err != nil {
		return nil, err
	}

	var raw string
	err = db.QueryRowContext(ctx, "SELECT header FROM worksheets WHERE name = ?", worksheet).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if len(defaultHeader) == 0 {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrWorksheetNotFound, store, worksheet)
		}
		encoded, err := json.Marshal(defaultHeader)
		if err != nil {
			return nil, err
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO worksheets (name, header) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
			worksheet, string(encoded)); err != nil {
			return nil, unavailable("create worksheet", err)
		}
	case err != nil:
		return nil, unavailable("open worksheet", err)
	}

	return &table{db: db, name: worksheet}, nil
}

func (o *Opener) database(ctx context.Context, store string) (*sql.DB, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if db, ok := o.dbs[store]; ok {
		return db, nil
	}

	path := filepath.Join(o.dir, store+".db")
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, unavailable("stat store", err)
		}
		if !o.autoCreate {
			return nil, fmt.Errorf("%w: store %q does not exist", domain.ErrStoreUnavailable, store)
		}
		if err := os.MkdirAll(o.dir, 0o755); err != nil {
			return nil, unavailable("create store directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable("open store", err)
	}
	// A single connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, unavailable("configure store", err)
		}
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, unavailable("migrate store", err)
	}

	o.dbs[store] = db
	return db, nil
}

// Ping checks every store opened so far.
func (o *Opener) Ping(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := os.Stat(o.dir); err != nil && !o.autoCreate {
		return unavailable("stat data directory", err)
	}
	for store, db := range o.dbs {
		if err := db.PingContext(ctx); err != nil {
			return unavailable("ping "+store, err)
		}
	}
	return nil
}

func (o *Opener) Close(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for store, db := range o.dbs {
		errs = append(errs, db.Close())
		delete(o.dbs, store)
	}
	return errors.Join(errs...)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
