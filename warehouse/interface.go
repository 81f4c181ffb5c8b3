package warehouse

import (
	"context"
)

// Connector abstracts all access to the warehouse SQL session.
// One statement executes at a time; the pipeline never overlaps statements.
type Connector interface {
	Exec(query string, args ...interface{}) (Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (*Rows, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error)
	Close()
	GetType() string
}

type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// SqlResultHandler receives the header then each row of a query result set.
type SqlResultHandler interface {
	HandleHeader(i []interface{}) error
	HandleRow(i []interface{}) error
}

// ConnectionGetter loads named connection details, usually from the config file.
type ConnectionGetter interface {
	LoadConnection(name string) (ConnectionDetails, error)
}
