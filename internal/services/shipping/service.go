package shipping

import (
	"context"
	"errors"
	"log"

	domainErrors "shipfee/internal/errors"
	"shipfee/internal/models"

	"golang.org/x/sync/errgroup"
)

type service struct {
	holder *Holder
	loader PolicyLoader
	cache  QuoteCache
	stats  StatsCollector
	config ServiceConfig
}

// NewService creates a new shipping service
func NewService(
	holder *Holder,
	loader PolicyLoader,
	cache QuoteCache,
	stats StatsCollector,
	config ServiceConfig,
) Service {
	if holder == nil {
		panic("holder is required")
	}

	if config.MaxBatchStores <= 0 {
		config.MaxBatchStores = DefaultMaxBatchStores
	}
	if config.BatchConcurrency <= 0 {
		config.BatchConcurrency = DefaultBatchConcurrency
	}

	// Cache and stats are optional
	if cache == nil {
		cache = noopCache{}
	}
	if stats == nil {
		stats = &NoopStatsCollector{}
	}

	return &service{
		holder: holder,
		loader: loader,
		cache:  cache,
		stats:  stats,
		config: config,
	}
}

func (s *service) table() (*Table, error) {
	table := s.holder.Load()
	if table == nil {
		return nil, domainErrors.ErrPolicyNotLoaded
	}
	return table, nil
}

func (s *service) Quote(ctx context.Context, dest models.Destination, method string) (models.FeeQuote, error) {
	if err := checkRequired(dest, method); err != nil {
		s.recordInvalid(ctx, method, err)
		return models.FeeQuote{}, err
	}

	table, err := s.table()
	if err != nil {
		return models.FeeQuote{}, err
	}
	return s.quoteWith(ctx, table, dest, method)
}

func (s *service) quoteWith(ctx context.Context, table *Table, dest models.Destination, method string) (models.FeeQuote, error) {
	key, cacheable := table.quoteKey(dest, method)
	if cacheable {
		cached, found, err := s.cache.GetQuote(ctx, key)
		if err != nil {
			log.Printf("Quote cache read failed for %s: %v", key, err)
		} else if found && cached != nil {
			s.stats.RecordQuote(ctx, cached.Method, OutcomeCacheHit)
			return *cached, nil
		}
	}

	quote, err := table.ComputeShippingFee(dest, method)
	if err != nil {
		s.recordInvalid(ctx, method, err)
		return models.FeeQuote{}, err
	}

	if cacheable {
		if err := s.cache.SetQuote(ctx, key, quote); err != nil {
			log.Printf("Quote cache write failed for %s: %v", key, err)
		}
	}
	s.stats.RecordQuote(ctx, quote.Method, outcomeOf(quote))

	return quote, nil
}

func (s *service) recordInvalid(ctx context.Context, method string, err error) {
	label := NormalizeMethod(method)
	if errors.Is(err, domainErrors.ErrInvalidMethod) || label == "" {
		label = statsUnknownMethod
	}
	s.stats.RecordQuote(ctx, label, OutcomeInvalid)
}

func (s *service) QuoteStores(ctx context.Context, stores []models.StoreShippingRequest) (*BatchResult, error) {
	if len(stores) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(stores) > s.config.MaxBatchStores {
		return nil, ErrBatchTooLarge
	}

	// One table for the whole cart, even if a reload lands mid-batch.
	table, err := s.table()
	if err != nil {
		return nil, err
	}

	results := make([]StoreQuote, len(stores))
	var g errgroup.Group
	g.SetLimit(s.config.BatchConcurrency)

	for i, store := range stores {
		g.Go(func() error {
			result := StoreQuote{StoreID: store.StoreID}
			quote, err := s.quoteWith(ctx, table, store.Destination(), store.ShippingMethod)
			if err != nil {
				result.Error = asDomainError(err)
			} else {
				result.Quote = &quote
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{
		Version:      table.Version(),
		Stores:       results,
		AllAvailable: true,
	}
	for _, r := range results {
		if r.Quote == nil || !r.Quote.Available {
			batch.AllAvailable = false
			continue
		}
		batch.TotalFee += *r.Quote.Fee
	}

	return batch, nil
}

func asDomainError(err error) *domainErrors.DomainError {
	var de *domainErrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	return &domainErrors.DomainError{Code: "INTERNAL", Message: "failed to compute quote"}
}

func (s *service) Methods(ctx context.Context) (*MethodsInfo, error) {
	table, err := s.table()
	if err != nil {
		return nil, err
	}

	info := &MethodsInfo{
		Version:  table.Version(),
		Currency: table.Currency(),
		Origin:   table.Origin(),
		Cities:   table.CityCount(),
	}
	for _, name := range table.MethodNames() {
		policy, _ := table.Method(name)
		info.Methods = append(info.Methods, MethodInfo{Name: name, MethodPolicy: policy})
	}

	return info, nil
}

func (s *service) Version() string {
	if table := s.holder.Load(); table != nil {
		return table.Version()
	}
	return ""
}

func (s *service) Reload(ctx context.Context) (*ReloadResult, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}

	table, err := LoadTable(ctx, s.loader)
	if err != nil {
		log.Printf("Shipping policy reload rejected, keeping %s: %v", shortVersion(s.Version()), err)
		return nil, err
	}

	result := &ReloadResult{
		Source:     s.loader.Source(),
		NewVersion: table.Version(),
	}
	if old := s.holder.Swap(table); old != nil {
		result.OldVersion = old.Version()
	}
	result.Changed = result.OldVersion != result.NewVersion

	log.Printf("Shipping policy swapped: %s -> %s", shortVersion(result.OldVersion), shortVersion(result.NewVersion))
	return result, nil
}
