package sqlite

import (
	"context"
	"database/sql"
)

// schema holds one store. Every worksheet keeps its header in worksheets and
// its rows, in position order, in worksheet_rows. Row fields are a JSON
// object keyed by header name.
const schema = `
CREATE TABLE IF NOT EXISTS worksheets (
    name TEXT PRIMARY KEY,
    header TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS worksheet_rows (
    worksheet TEXT NOT NULL,
    position INTEGER NOT NULL,
    version INTEGER NOT NULL,
    fields TEXT NOT NULL,
    PRIMARY KEY (worksheet, position),
    FOREIGN KEY (worksheet) REFERENCES worksheets(name) ON DELETE CASCADE
);
`

func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
