package shipping

import "errors"

// Service errors
var (
	ErrEmptyBatch    = errors.New("batch must contain at least one store")
	ErrBatchTooLarge = errors.New("batch exceeds the maximum number of stores")
	ErrNoLoader      = errors.New("no policy source configured")
)
