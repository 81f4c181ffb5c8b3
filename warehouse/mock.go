package warehouse

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/playlake/starload/logger"
)

const mockChanSize = 1000

// MockConnection implements Connector and records every executed statement onto a channel
// so tests can assert the exact SQL issued and its order.
// Set FailPattern to make Exec return an error for the first statement containing it.
type MockConnection struct {
	log         logger.Logger
	ChanSQL     chan string
	FailPattern string
	RowCount    int64 // value returned by Result.RowsAffected for every exec.
}

// NewMockConnection returns a mock Connector plus the channel its statements are recorded on.
func NewMockConnection(log logger.Logger) (*MockConnection, chan string) {
	c := &MockConnection{log: log, ChanSQL: make(chan string, mockChanSize)}
	return c, c.ChanSQL
}

func (c *MockConnection) Exec(query string, args ...interface{}) (Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *MockConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	if c.FailPattern != "" && strings.Contains(query, c.FailPattern) {
		return nil, errors.Errorf("mock failure executing %q", c.FailPattern)
	}
	c.log.Debug("mock connection exec: ", query)
	c.ChanSQL <- query
	return mockResult{rows: c.RowCount}, nil
}

func (c *MockConnection) Query(query string, args ...interface{}) (*Rows, error) {
	return c.QueryContext(context.Background(), query, args...)
}

func (c *MockConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	// Queries are not recorded; the pipeline only reads optional error counts.
	return nil, errors.New("mock connection does not serve queries")
}

func (c *MockConnection) Close() {
	close(c.ChanSQL)
}

func (c *MockConnection) GetType() string {
	return "mockRedshift"
}

type mockResult struct {
	rows int64
}

func (r mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (r mockResult) RowsAffected() (int64, error) {
	return r.rows, nil
}
