package shipping

import (
	"context"

	"shipfee/internal/models"
)

// NoopStatsCollector is a no-op implementation of StatsCollector
type NoopStatsCollector struct{}

func (n *NoopStatsCollector) RecordQuote(context.Context, string, string) {}

// noopCache is used when no QuoteCache is configured.
type noopCache struct{}

func (noopCache) GetQuote(context.Context, string) (*models.FeeQuote, bool, error) {
	return nil, false, nil
}

func (noopCache) SetQuote(context.Context, string, models.FeeQuote) error { return nil }

func outcomeOf(q models.FeeQuote) string {
	if q.Available {
		return OutcomeAvailable
	}
	return q.Reason
}
