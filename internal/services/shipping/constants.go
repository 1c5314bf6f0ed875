package shipping

const (
	// EarthRadiusKm is the mean earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// distanceScale rounds distances to one decimal place.
	distanceScale = 10.0

	DefaultPostalCodePattern = `^[0-9]{5}$`
	DefaultCurrency          = "IDR"

	// MaxFee bounds every fee a policy can produce so fees stay exact as
	// float64 and never overflow int64.
	MaxFee = 1 << 53

	DefaultMaxBatchStores   = 50
	DefaultBatchConcurrency = 8
)

// Outcomes recorded by StatsCollector.
const (
	OutcomeAvailable = "available"
	OutcomeInvalid   = "invalid"
	OutcomeCacheHit  = "cache_hit"
)

// statsUnknownMethod keeps invalid method names out of metric labels.
const statsUnknownMethod = "unknown"
