package models

// Coordinate is a WGS 84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// MethodPolicy prices one shipping method. Fees are integer currency units.
type MethodPolicy struct {
	BaseFee       int64   `json:"base_fee" yaml:"base_fee"`
	PerKmRate     int64   `json:"per_km_rate" yaml:"per_km_rate"`
	MaxDistanceKm float64 `json:"max_distance_km" yaml:"max_distance_km"`
	MinFee        int64   `json:"min_fee" yaml:"min_fee"`
}

// OriginSpec is the fixed point every distance is measured from.
type OriginSpec struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
}

// CitySpec describes a serviceable city. An empty Methods list means every
// method of the table is offered there.
type CitySpec struct {
	Name        string                `json:"name" yaml:"name"`
	Aliases     []string              `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Lat         float64               `json:"lat" yaml:"lat"`
	Lon         float64               `json:"lon" yaml:"lon"`
	Methods     []string              `json:"methods,omitempty" yaml:"methods,omitempty"`
	PostalCodes map[string]Coordinate `json:"postal_codes,omitempty" yaml:"postal_codes,omitempty"`
}

// PolicySpec is the raw, unvalidated policy as read from a source.
type PolicySpec struct {
	Currency          string                  `json:"currency" yaml:"currency"`
	Origin            OriginSpec              `json:"origin" yaml:"origin"`
	PostalCodePattern string                  `json:"postal_code_pattern,omitempty" yaml:"postal_code_pattern,omitempty"`
	Methods           map[string]MethodPolicy `json:"methods" yaml:"methods"`
	Cities            []CitySpec              `json:"cities" yaml:"cities"`
}
