package models

// Destination is the delivery location supplied by a checkout for one store.
type Destination struct {
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Unavailability reasons carried on a FeeQuote.
const (
	ReasonUnresolvedDestination = "unresolved_destination"
	ReasonMethodNotOffered      = "method_not_offered"
	ReasonOutOfRange            = "out_of_range"
)

// FeeQuote is the result of one fee computation. Fee and DistanceKm are
// null in JSON when they were not computed.
type FeeQuote struct {
	Available  bool     `json:"available"`
	Fee        *int64   `json:"fee"`
	DistanceKm *float64 `json:"distanceKm"`
	Method     string   `json:"method"`
	Reason     string   `json:"reason,omitempty"`
}

// ShippingFeeRequest is the checkout boundary input, one per store.
type ShippingFeeRequest struct {
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	ShippingMethod string `json:"shippingMethod"`
}

// Destination returns the destination part of the request.
func (r ShippingFeeRequest) Destination() Destination {
	return Destination{City: r.City, PostalCode: r.PostalCode}
}

// ShippingFeeResponse is the checkout boundary output for a serviceable request.
type ShippingFeeResponse struct {
	FeePerStore int64   `json:"feePerStore"`
	DistanceKm  float64 `json:"distanceKm"`
	Method      string  `json:"method"`
}

// StoreShippingRequest is one entry of a multi-store quote request.
type StoreShippingRequest struct {
	StoreID string `json:"storeId"`
	ShippingFeeRequest
}

// BatchShippingRequest asks for one quote per store in a cart.
type BatchShippingRequest struct {
	Stores []StoreShippingRequest `json:"stores"`
}
