package buckets

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Dialect holds the statements that differ between SQL backends.
type Dialect struct {
	Name        string
	PayloadType string
	Upsert      string
}

// SQL dialects for the state table.
var (
	Postgres = Dialect{
		Name:        "postgres",
		PayloadType: "JSONB",
		Upsert: `INSERT INTO state(bucket,payload,updated_at) VALUES($1,$2,$3)
			ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload, updated_at=EXCLUDED.updated_at`,
	}
	SQLite = Dialect{
		Name:        "sqlite",
		PayloadType: "BLOB",
		Upsert: `INSERT INTO state(bucket,payload,updated_at) VALUES(?,?,?)
			ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
	}
)

// SQLTable is a Backend storing one row per bucket in a "state" table.
type SQLTable struct {
	DB      *sql.DB
	Dialect Dialect
	Now     func() time.Time
}

// Ensure creates the state table when missing.
func (t SQLTable) Ensure(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload %s NOT NULL,
		updated_at TEXT NOT NULL
	)`, t.Dialect.PayloadType)
	if _, err := t.DB.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure %s state table: %w", t.Dialect.Name, err)
	}
	return nil
}

// Load implements Backend.
func (t SQLTable) Load(ctx context.Context) ([]Payload, error) {
	rows, err := t.DB.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Payload
	for rows.Next() {
		var p Payload
		if err := rows.Scan(&p.Bucket, &p.Data); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	return out, nil
}

// Save implements Backend. All payloads are written in one transaction.
func (t SQLTable) Save(ctx context.Context, payloads []Payload) (retErr error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	stamp := now().UTC().Format(time.RFC3339Nano)
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, p := range payloads {
		if _, err := tx.ExecContext(ctx, t.Dialect.Upsert, p.Bucket, p.Data, stamp); err != nil {
			return fmt.Errorf("upsert %s: %w", p.Bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
