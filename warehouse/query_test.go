package warehouse

import (
	"context"
	"testing"

	"github.com/playlake/starload/logger"
)

// emptyRowsConnection serves an empty result set for every query.
type emptyRowsConnection struct{}

func (c *emptyRowsConnection) Exec(query string, args ...interface{}) (Result, error) {
	return nil, nil
}

func (c *emptyRowsConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return nil, nil
}

func (c *emptyRowsConnection) Query(query string, args ...interface{}) (*Rows, error) {
	return &Rows{}, nil
}

func (c *emptyRowsConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	return &Rows{}, nil
}

func (c *emptyRowsConnection) Close() {}

func (c *emptyRowsConnection) GetType() string {
	return "mockRedshift"
}

type recordingResultHandler struct {
	headers int
	rows    int
}

func (h *recordingResultHandler) HandleHeader(i []interface{}) error {
	h.headers++
	return nil
}

func (h *recordingResultHandler) HandleRow(i []interface{}) error {
	h.rows++
	return nil
}

func TestSqlQueryEmptyResult(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	h := &recordingResultHandler{}
	if err := SqlQuery(context.Background(), log, &emptyRowsConnection{}, "select 1", h); err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if h.headers != 1 {
		t.Fatal("expected the header to be handled once; got ", h.headers)
	}
	if h.rows != 0 {
		t.Fatal("expected no rows; got ", h.rows)
	}
}

func TestSqlQueryHonoursCancellation(t *testing.T) {
	log := logger.NewLogger("starload", "error", true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := &recordingResultHandler{}
	err := SqlQuery(ctx, log, &emptyRowsConnection{}, "select 1", h)
	if err != context.Canceled {
		t.Fatal("expected context.Canceled; got ", err)
	}
	if h.rows != 0 {
		t.Fatal("expected no rows after cancellation; got ", h.rows)
	}
}
