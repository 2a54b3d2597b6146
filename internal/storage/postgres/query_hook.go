package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/logger"
	"github.com/uptrace/bun"
)

// queryHook logs every statement with its duration.
type queryHook struct {
	slow time.Duration
}

var _ bun.QueryHook = (*queryHook)(nil)

func (h *queryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	took := time.Since(event.StartTime)

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		logger.Errorf("Query failed: operation=%s took=%s query=%q error=%v", event.Operation(), took, event.Query, event.Err)
	case took >= h.slow:
		logger.Warningf("Slow query: operation=%s took=%s query=%q", event.Operation(), took, event.Query)
	default:
		logger.Infof("Query executed: operation=%s took=%s", event.Operation(), took)
	}
}
