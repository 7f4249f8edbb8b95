package cache

import (
	"context"
	"time"

	"salepoint/backend/internal/domain"
)

// ReportCache stores built reports keyed by ledger length, so a cached
// entry can never go stale: any new sale changes the key. Implementations
// must be safe to skip entirely; a miss or error just means the report is
// rebuilt.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.Report, bool, error)
	Set(ctx context.Context, key string, value *domain.Report, ttl time.Duration) error
}

type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*domain.Report, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *domain.Report, _ time.Duration) error {
	return nil
}
