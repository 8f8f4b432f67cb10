package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// openTestTable connects to MONGO_URI and opens a worksheet in a throwaway
// database. The test is skipped when no server is configured.
func openTestTable(t *testing.T, header []string) (*Opener, ports.Table) {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, Config{URI: uri, AppName: "studio-test"})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	store := fmt.Sprintf("studio_test_%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_ = client.Database(store).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	opener := NewOpener(client, true)
	tbl, err := opener.Open(ctx, store, "schedules", header)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return opener, tbl
}

func TestTable_VersionedWrites(t *testing.T) {
	_, tbl := openTestTable(t, []string{"id", "venue"})
	ctx := context.Background()

	if err := tbl.AppendRows(ctx, []domain.Record{{"id": "a", "venue": "Hall"}, {"id": "b", "venue": "Garden", "dropped": "x"}}); err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}

	tests := []struct {
		name     string
		run      func() error
		wantErr  error
		wantRows []domain.Record
	}{
		{
			name: "update with current version",
			run: func() error {
				v, err := tbl.UpdateRow(ctx, "id", "a", 1, domain.Record{"id": "a", "venue": "Rooftop"})
				if err == nil && v != 2 {
					return fmt.Errorf("expected version 2, got %d", v)
				}
				return err
			},
			wantRows: []domain.Record{{"id": "a", "venue": "Rooftop"}, {"id": "b", "venue": "Garden"}},
		},
		{
			name: "update with stale version",
			run: func() error {
				_, err := tbl.UpdateRow(ctx, "id", "a", 1, domain.Record{"id": "a", "venue": "Lost"})
				return err
			},
			wantErr:  domain.ErrVersionConflict,
			wantRows: []domain.Record{{"id": "a", "venue": "Rooftop"}, {"id": "b", "venue": "Garden"}},
		},
		{
			name:     "update missing row",
			run:      func() error { _, err := tbl.UpdateRow(ctx, "id", "zz", 1, domain.Record{}); return err },
			wantErr:  domain.ErrRowNotFound,
			wantRows: []domain.Record{{"id": "a", "venue": "Rooftop"}, {"id": "b", "venue": "Garden"}},
		},
		{
			name:     "delete with stale version",
			run:      func() error { return tbl.DeleteRow(ctx, "id", "b", 7) },
			wantErr:  domain.ErrVersionConflict,
			wantRows: []domain.Record{{"id": "a", "venue": "Rooftop"}, {"id": "b", "venue": "Garden"}},
		},
		{
			name:     "delete with current version",
			run:      func() error { return tbl.DeleteRow(ctx, "id", "b", 1) },
			wantRows: []domain.Record{{"id": "a", "venue": "Rooftop"}},
		},
		{
			name: "replace all",
			run: func() error {
				return tbl.ReplaceAll(ctx, []string{"id", "venue", "note"}, []domain.Record{{"id": "c", "note": "new"}})
			},
			wantRows: []domain.Record{{"id": "c", "venue": "", "note": "new"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			rows, err := tbl.ReadAll(ctx)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(rows) != len(tt.wantRows) {
				t.Fatalf("expected %d rows, got %d: %+v", len(tt.wantRows), len(rows), rows)
			}
			for i, want := range tt.wantRows {
				for k, v := range want {
					if rows[i].Record[k] != v {
						t.Fatalf("row %d field %s: expected %q, got %q", i, k, v, rows[i].Record[k])
					}
				}
				if _, ok := rows[i].Record["dropped"]; ok {
					t.Fatalf("field outside the header was stored: %v", rows[i].Record)
				}
			}
		})
	}
}

func TestTable_ReplaceAllOutdatesOldVersions(t *testing.T) {
	_, tbl := openTestTable(t, []string{"id"})
	ctx := context.Background()

	_ = tbl.AppendRow(ctx, domain.Record{"id": "a"})
	if err := tbl.ReplaceAll(ctx, []string{"id"}, []domain.Record{{"id": "a"}}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if _, err := tbl.UpdateRow(ctx, "id", "a", 1, domain.Record{"id": "a"}); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected a pre-rewrite version to conflict, got %v", err)
	}
}

func TestOpener_MissingWorksheetWithoutHeader(t *testing.T) {
	opener, _ := openTestTable(t, []string{"id"})
	store := fmt.Sprintf("studio_test_%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = opener.client.Database(store).Drop(context.Background()) })

	if _, err := opener.Open(context.Background(), store, "missing", nil); !errors.Is(err, domain.ErrWorksheetNotFound) {
		t.Fatalf("expected ErrWorksheetNotFound, got %v", err)
	}
}
