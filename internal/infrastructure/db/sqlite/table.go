package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studiodesk/schedule-system/internal/core/domain"
)

type table struct {
	db   *sql.DB
	name string
}

func (t *table) Name() string { return t.name }

func (t *table) Header(ctx context.Context) ([]string, error) {
	return header(ctx, t.db, t.name)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func header(ctx context.Context, q queryer, worksheet string) ([]string, error) {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT header FROM worksheets WHERE name = ?", worksheet).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorksheetNotFound, worksheet)
	}
	if err != nil {
		return nil, unavailable("read header", err)
	}
	var h []string
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, fmt.Errorf("decode header of %s: %w", worksheet, err)
	}
	return h, nil
}

type storedRow struct {
	position int64
	version  int64
	record   domain.Record
}

func readRows(ctx context.Context, q queryer, worksheet string) ([]storedRow, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT position, version, fields FROM worksheet_rows WHERE worksheet = ? ORDER BY position", worksheet)
	if err != nil {
		return nil, unavailable("read rows", err)
	}
	defer rows.Close()

	var out []storedRow
	for rows.Next() {
		var (
			r   storedRow
			raw string
		)
		if err := rows.Scan(&r.position, &r.version, &raw); err != nil {
			return nil, unavailable("scan row", err)
		}
		if err := json.Unmarshal([]byte(raw), &r.record); err != nil {
			return nil, fmt.Errorf("decode row %d of %s: %w", r.position, worksheet, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("read rows", err)
	}
	return out, nil
}

func (t *table) ReadAll(ctx context.Context) ([]domain.Row, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin read", err)
	}
	defer tx.Rollback()

	h, err := header(ctx, tx, t.name)
	if err != nil {
		return nil, err
	}
	stored, err := readRows(ctx, tx, t.name)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Row, 0, len(stored))
	for _, r := range stored {
		out = append(out, domain.Row{Version: r.version, Record: r.record.Project(h)})
	}
	return out, nil
}

func (t *table) AppendRow(ctx context.Context, rec domain.Record) error {
	return t.AppendRows(ctx, []domain.Record{rec})
}

func (t *table) AppendRows(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	return t.inTx(ctx, func(tx *sql.Tx) error {
		h, err := header(ctx, tx, t.name)
		if err != nil {
			return err
		}
		var next int64
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(position), -1) + 1 FROM worksheet_rows WHERE worksheet = ?", t.name).Scan(&next); err != nil {
			return unavailable("next position", err)
		}
		for i, rec := range recs {
			if err := insertRow(ctx, tx, t.name, next+int64(i), 1, rec.Project(h)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceAll stamps every new row with a version above any the worksheet
// handed out before, so readers holding old versions conflict.
func (t *table) ReplaceAll(ctx context.Context, h []string, recs []domain.Record) error {
	encoded, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return t.inTx(ctx, func(tx *sql.Tx) error {
		var maxVersion int64
		if err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(version), 0) FROM worksheet_rows WHERE worksheet = ?", t.name).Scan(&maxVersion); err != nil {
			return unavailable("max version", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM worksheet_rows WHERE worksheet = ?", t.name); err != nil {
			return unavailable("clear rows", err)
		}
		res, err := tx.ExecContext(ctx, "UPDATE worksheets SET header = ? WHERE name = ?", string(encoded), t.name)
		if err != nil {
			return unavailable("write header", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", domain.ErrWorksheetNotFound, t.name)
		}
		for i, rec := range recs {
			if err := insertRow(ctx, tx, t.name, int64(i), maxVersion+1, rec.Project(h)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *table) UpdateRow(ctx context.Context, keyField, keyValue string, expected int64, rec domain.Record) (int64, error) {
	var newVersion int64
	err := t.inTx(ctx, func(tx *sql.Tx) error {
		h, err := header(ctx, tx, t.name)
		if err != nil {
			return err
		}
		target, err := findRow(ctx, tx, t.name, keyField, keyValue)
		if err != nil {
			return err
		}
		if target.version != expected {
			return fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
		}

		fields, err := json.Marshal(rec.Project(h))
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"UPDATE worksheet_rows SET fields = ?, version = version + 1 WHERE worksheet = ? AND position = ? AND version = ?",
			string(fields), t.name, target.position, expected)
		if err != nil {
			return unavailable("update row", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
		}
		newVersion = expected + 1
		return nil
	})
	return newVersion, err
}

func (t *table) DeleteRow(ctx context.Context, keyField, keyValue string, expected int64) error {
	return t.inTx(ctx, func(tx *sql.Tx) error {
		target, err := findRow(ctx, tx, t.name, keyField, keyValue)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"DELETE FROM worksheet_rows WHERE worksheet = ? AND position = ? AND version = ?",
			t.name, target.position, expected)
		if err != nil {
			return unavailable("delete row", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%s %s=%s: %w", t.name, keyField, keyValue, domain.ErrVersionConflict)
		}
		return nil
	})
}

// findRow returns the first row, in position order, whose keyField equals
// keyValue.
func findRow(ctx context.Context, q queryer, worksheet, keyField, keyValue string) (*storedRow, error) {
	stored, err := readRows(ctx, q, worksheet)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		if stored[i].record[keyField] == keyValue {
			return &stored[i], nil
		}
	}
	return nil, fmt.Errorf("%s %s=%s: %w", worksheet, keyField, keyValue, domain.ErrRowNotFound)
}

func insertRow(ctx context.Context, tx *sql.Tx, worksheet string, position, version int64, rec domain.Record) error {
	fields, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO worksheet_rows (worksheet, position, version, fields) VALUES (?, ?, ?, ?)",
		worksheet, position, version, string(fields)); err != nil {
		return unavailable("insert row", err)
	}
	return nil
}

func (t *table) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}
