package shipping

import (
	domainErrors "shipfee/internal/errors"
	"shipfee/internal/models"
)

// ServiceConfig holds configuration for the shipping service
type ServiceConfig struct {
	MaxBatchStores   int
	BatchConcurrency int
}

// StoreQuote is the outcome for one store of a batch. Exactly one of Quote
// and Error is set.
type StoreQuote struct {
	StoreID string                    `json:"storeId"`
	Quote   *models.FeeQuote          `json:"quote,omitempty"`
	Error   *domainErrors.DomainError `json:"error,omitempty"`
}

// BatchResult holds per-store quotes in request order.
type BatchResult struct {
	Version      string       `json:"version"`
	Stores       []StoreQuote `json:"stores"`
	TotalFee     int64        `json:"totalFee"`
	AllAvailable bool         `json:"allAvailable"`
}

// MethodInfo describes one method of the active table.
type MethodInfo struct {
	Name string `json:"name"`
	models.MethodPolicy
}

// MethodsInfo describes the active table.
type MethodsInfo struct {
	Version  string            `json:"version"`
	Currency string            `json:"currency"`
	Origin   models.OriginSpec `json:"origin"`
	Methods  []MethodInfo      `json:"methods"`
	Cities   int               `json:"cities"`
}

// ReloadResult reports a table swap.
type ReloadResult struct {
	Source     string `json:"source"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
	Changed    bool   `json:"changed"`
}
