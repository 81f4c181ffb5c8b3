package warehouse

import (
	"context"
	"database/sql"
)

// DbConnection is a wrapper around Go native sql.DB that implements Connector.
type DbConnection struct {
	DbSql  *sql.DB
	DbType string
}

func (c *DbConnection) Exec(query string, args ...interface{}) (Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *DbConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return c.DbSql.ExecContext(ctx, query, args...)
}

func (c *DbConnection) Query(query string, args ...interface{}) (*Rows, error) {
	return c.QueryContext(context.Background(), query, args...)
}

func (c *DbConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	r, err := c.DbSql.QueryContext(ctx, query, args...)
	return &Rows{rowsSql: r}, err
}

func (c *DbConnection) Close() {
	_ = c.DbSql.Close()
}

func (c *DbConnection) GetType() string {
	return c.DbType
}

// Rows wraps sql.Rows so mock connections can satisfy Connector too.
type Rows struct {
	rowsSql *sql.Rows
}

func (r *Rows) Close() error {
	if r.rowsSql == nil {
		return nil
	}
	return r.rowsSql.Close()
}

func (r *Rows) Columns() ([]string, error) {
	if r.rowsSql == nil {
		return nil, nil
	}
	return r.rowsSql.Columns()
}

func (r *Rows) Err() error {
	if r.rowsSql == nil {
		return nil
	}
	return r.rowsSql.Err()
}

func (r *Rows) Next() bool {
	if r.rowsSql == nil {
		return false
	}
	return r.rowsSql.Next()
}

func (r *Rows) Scan(dest ...interface{}) error {
	return r.rowsSql.Scan(dest...)
}
