// Package testutil provides an in-process database/sql driver that keeps
// rows in maps and understands the state-table statements the SQL stores
// issue: CREATE TABLE, INSERT with optional ON CONFLICT upsert, and plain
// column SELECTs.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	driverSeq atomic.Int64
	insertRe  = regexp.MustCompile(`(?is)^\s*insert\s+into\s+(\w+)\s*\(([^)]*)\)`)
	selectRe  = regexp.MustCompile(`(?is)^\s*select\s+(.+?)\s+from\s+(\w+)`)
)

// StubConn is a single shared connection. Writes made inside a transaction
// become visible on commit.
type StubConn struct {
	mu      sync.Mutex
	Execs   []string
	Tables  map[string][]map[string]any
	pending []write

	FailPing   bool
	FailExec   bool
	FailBegin  bool
	FailCommit bool
	FailTables map[string]bool
	RowsErr    error
}

type write struct {
	table  string
	key    string
	row    map[string]any
	upsert bool
}

// NewStubDB registers a driver under a fresh name and opens it.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Tables: make(map[string][]map[string]any)}
	name := fmt.Sprintf("stubsql%d", driverSeq.Add(1))
	sql.Register(name, stubDriver{conn})
	db, err := sql.Open(name, "")
	if err != nil {
		panic(err)
	}
	return db, conn
}

// Rows copies the committed rows of table.
func (c *StubConn) Rows(table string) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]any(nil), c.Tables[table]...)
}

type stubDriver struct{ conn *StubConn }

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn; only direct exec and query are supported.
func (c *StubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stub: prepared statements unsupported")
}

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx.
func (c *StubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	if c.FailBegin {
		return nil, errors.New("stub: begin failed")
	}
	c.mu.Lock()
	c.pending = []write{}
	c.mu.Unlock()
	return stubTx{c}, nil
}

// Ping implements driver.Pinger.
func (c *StubConn) Ping(context.Context) error {
	if c.FailPing {
		return errors.New("stub: ping failed")
	}
	return nil
}

// ExecContext implements driver.ExecerContext.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, errors.New("stub: exec failed")
	}
	m := insertRe.FindStringSubmatch(query)
	if m == nil {
		return driver.RowsAffected(0), nil
	}
	table, cols := strings.ToLower(m[1]), columns(m[2])
	if c.FailTables[table] {
		return nil, fmt.Errorf("stub: %s unavailable", table)
	}
	if len(cols) != len(args) {
		return nil, fmt.Errorf("stub: %d columns but %d args for %s", len(cols), len(args), table)
	}
	w := write{
		table:  table,
		key:    cols[0],
		row:    make(map[string]any, len(cols)),
		upsert: strings.Contains(strings.ToUpper(query), "ON CONFLICT"),
	}
	for i, col := range cols {
		w.row[col] = args[i].Value
	}
	if c.pending != nil {
		c.pending = append(c.pending, w)
	} else {
		c.apply(w)
	}
	return driver.RowsAffected(1), nil
}

// apply stores w; an upsert replaces the row sharing its first column.
func (c *StubConn) apply(w write) {
	rows := c.Tables[w.table]
	if w.upsert {
		for i, existing := range rows {
			if existing[w.key] == w.row[w.key] {
				rows[i] = w.row
				return
			}
		}
	}
	c.Tables[w.table] = append(rows, w.row)
}

// QueryContext implements driver.QueryerContext.
func (c *StubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := selectRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("stub: cannot parse %q", query)
	}
	cols, table := columns(m[1]), strings.ToLower(m[2])
	if c.FailTables[table] {
		return nil, fmt.Errorf("stub: %s unavailable", table)
	}
	out := &stubRows{cols: cols, err: c.RowsErr}
	for _, row := range c.Tables[table] {
		vals := make([]driver.Value, len(cols))
		for i, col := range cols {
			vals[i] = row[col]
		}
		out.rows = append(out.rows, vals)
	}
	return out, nil
}

type stubTx struct{ c *StubConn }

func (t stubTx) Commit() error {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	pending := t.c.pending
	t.c.pending = nil
	if t.c.FailCommit {
		return errors.New("stub: commit failed")
	}
	for _, w := range pending {
		t.c.apply(w)
	}
	return nil
}

func (t stubTx) Rollback() error {
	t.c.mu.Lock()
	t.c.pending = nil
	t.c.mu.Unlock()
	return nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	err  error
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}

func columns(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
