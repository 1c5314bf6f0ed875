package validation

import (
	"fmt"

	"shipfee/internal/models"
)

// String lengths
const (
	MaxCityLength       = 100
	MaxPostalCodeLength = 16
	MaxMethodLength     = 32
	MaxStoreIDLength    = 64
)

// ShippingRequest validates the fields of one fee request. Empty fields pass;
// the fee calculator reports them as missing.
func (v *Validator) ShippingRequest(prefix string, req models.ShippingFeeRequest) {
	v.ValidUTF8(prefix+"city", req.City)
	v.MaxLength(prefix+"city", req.City, MaxCityLength)
	v.ValidUTF8(prefix+"postalCode", req.PostalCode)
	v.MaxLength(prefix+"postalCode", req.PostalCode, MaxPostalCodeLength)
	v.MaxLength(prefix+"shippingMethod", req.ShippingMethod, MaxMethodLength)
}

// BatchRequest validates every store entry. Store IDs are required and must
// be unique within the cart.
func (v *Validator) BatchRequest(req models.BatchShippingRequest) {
	seen := make(map[string]int, len(req.Stores))
	for i, store := range req.Stores {
		prefix := fmt.Sprintf("stores[%d].", i)

		v.Required(prefix+"storeId", store.StoreID)
		v.MaxLength(prefix+"storeId", store.StoreID, MaxStoreIDLength)
		if store.StoreID != "" {
			if first, dup := seen[store.StoreID]; dup {
				v.AddError(prefix+"storeId", fmt.Sprintf("duplicates stores[%d]", first))
			} else {
				seen[store.StoreID] = i
			}
		}

		v.ShippingRequest(prefix, store.ShippingFeeRequest)
	}
}
