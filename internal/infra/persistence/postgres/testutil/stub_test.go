package testutil

import (
	"context"
	"database/sql/driver"
	"io"
	"testing"
)

func TestStubUpsertsAndSelectsBuckets(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	upsert := "INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload"
	for _, payload := range []string{`[]`, `[{"id":"m1"}]`} {
		if _, err := conn.ExecContext(ctx, upsert, []driver.NamedValue{{Value: "menu_items"}, {Value: []byte(payload)}}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	rows := conn.Rows("state")
	if len(rows) != 1 || string(rows[0]["payload"].([]byte)) != `[{"id":"m1"}]` {
		t.Fatalf("expected single replaced row, got %v", rows)
	}

	result, err := conn.QueryContext(ctx, "SELECT bucket, payload FROM state", nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 2)
	if err := result.Next(dest); err != nil {
		t.Fatalf("next: %v", err)
	}
	if dest[0] != "menu_items" {
		t.Fatalf("unexpected bucket %v", dest[0])
	}
	if err := result.Next(dest); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestStubFailureSwitches(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.FailTables = map[string]bool{"state": true}
	if _, err := conn.ExecContext(ctx, "INSERT INTO state(bucket,payload) VALUES($1,$2)", []driver.NamedValue{{Value: "x"}, {Value: []byte("1")}}); err == nil {
		t.Fatalf("expected table failure")
	}
	if _, err := conn.QueryContext(ctx, "SELECT bucket FROM state", nil); err == nil {
		t.Fatalf("expected query failure")
	}
	if _, err := conn.QueryContext(ctx, "DROP TABLE state", nil); err == nil {
		t.Fatalf("expected parse failure")
	}
	conn.FailBegin = true
	if _, err := conn.Begin(); err == nil {
		t.Fatalf("expected begin failure")
	}
	conn.FailPing = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestStubTransactionsBufferWrites(t *testing.T) {
	ctx := context.Background()
	db, conn := NewStubDB()
	insert := "INSERT INTO state(bucket,payload) VALUES($1,$2)"

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.ExecContext(ctx, insert, "tables", []byte("[]")); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if rows := conn.Rows("state"); len(rows) != 0 {
		t.Fatalf("uncommitted write visible: %v", rows)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if rows := conn.Rows("state"); len(rows) != 0 {
		t.Fatalf("rolled back write visible: %v", rows)
	}

	tx, err = db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.ExecContext(ctx, insert, "tables", []byte("[]")); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rows := conn.Rows("state"); len(rows) != 1 || rows[0]["bucket"] != "tables" {
		t.Fatalf("expected committed row, got %v", rows)
	}
}
