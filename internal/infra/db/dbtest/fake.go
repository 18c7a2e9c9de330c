// Package dbtest is an in-memory database/sql driver that serves one fixed
// result set and records the queries it was asked to run.
package dbtest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
)

// Result is the table every query returns.
type Result struct {
	Columns []string
	Rows    [][]driver.Value
	Err     error // returned from Query instead of rows when set
}

// Connector implements driver.Connector.
type Connector struct {
	Result Result

	mu      sync.Mutex
	queries []string
}

// Open returns a *sql.DB backed by c.
func Open(res Result) (*sql.DB, *Connector) {
	c := &Connector{Result: res}
	return sql.OpenDB(c), c
}

// Queries returns the SQL text received so far.
func (c *Connector) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *Connector) Connect(context.Context) (driver.Conn, error) { return &conn{c: c}, nil }
func (c *Connector) Driver() driver.Driver                       { return drv{c: c} }

type drv struct{ c *Connector }

func (d drv) Open(string) (driver.Conn, error) { return &conn{c: d.c}, nil }

type conn struct{ c *Connector }

func (cn *conn) Prepare(query string) (driver.Stmt, error) { return &stmt{c: cn.c, query: query}, nil }
func (cn *conn) Close() error                              { return nil }
func (cn *conn) Begin() (driver.Tx, error)                 { return nil, errors.New("dbtest: transactions unsupported") }

// Ping makes PingContext succeed.
func (cn *conn) Ping(context.Context) error { return nil }

type stmt struct {
	c     *Connector
	query string
}

func (s *stmt) Close() error  { return nil }
func (s *stmt) NumInput() int { return -1 }

func (s *stmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("dbtest: exec unsupported")
}

func (s *stmt) Query([]driver.Value) (driver.Rows, error) {
	s.c.mu.Lock()
	s.c.queries = append(s.c.queries, s.query)
	s.c.mu.Unlock()
	if s.c.Result.Err != nil {
		return nil, s.c.Result.Err
	}
	return &rows{res: s.c.Result}, nil
}

type rows struct {
	res Result
	i   int
}

func (r *rows) Columns() []string { return r.res.Columns }
func (r *rows) Close() error      { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.i >= len(r.res.Rows) {
		return io.EOF
	}
	copy(dest, r.res.Rows[r.i])
	r.i++
	return nil
}
