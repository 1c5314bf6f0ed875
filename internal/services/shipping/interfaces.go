package shipping

import (
	"context"

	"shipfee/internal/models"
)

// Service defines the shipping fee service interface
type Service interface {
	// Quote computes the fee of one store's shipment.
	Quote(ctx context.Context, dest models.Destination, method string) (models.FeeQuote, error)

	// QuoteStores quotes every store of a cart against the same table.
	QuoteStores(ctx context.Context, stores []models.StoreShippingRequest) (*BatchResult, error)

	// Policy introspection
	Methods(ctx context.Context) (*MethodsInfo, error)
	Version() string

	// Reload re-reads the policy source and swaps the active table.
	Reload(ctx context.Context) (*ReloadResult, error)
}

// PolicyLoader reads a raw policy and a version that identifies its content.
type PolicyLoader interface {
	Load(ctx context.Context) (models.PolicySpec, string, error)
	Source() string
}

// QuoteCache stores computed quotes by their normalized inputs.
type QuoteCache interface {
	GetQuote(ctx context.Context, key string) (*models.FeeQuote, bool, error)
	SetQuote(ctx context.Context, key string, quote models.FeeQuote) error
}

// StatsCollector records quote outcomes. Implementations are best-effort.
type StatsCollector interface {
	RecordQuote(ctx context.Context, method, outcome string)
}
