package shipping

import (
	"math"
	"regexp"
	"sort"

	domainErrors "shipfee/internal/errors"
	"shipfee/internal/models"
)

type cityEntry struct {
	name        string
	point       models.Coordinate
	methods     map[string]struct{} // nil offers every method
	postalCodes map[string]models.Coordinate
}

func (c *cityEntry) offers(method string) bool {
	if c.methods == nil {
		return true
	}
	_, ok := c.methods[method]
	return ok
}

// Table is a validated policy snapshot. It is never mutated after NewTable
// returns, so it may be shared freely between goroutines.
type Table struct {
	version       string
	currency      string
	origin        models.OriginSpec
	postalPattern *regexp.Regexp
	methods       map[string]models.MethodPolicy
	cities        map[string]*cityEntry
	cityCount     int
	postalCount   int
}

// NewTable validates spec and builds a lookup table from it. Overlapping
// keys and malformed entries are rejected here so that quoting never has to
// deal with them.
func NewTable(spec models.PolicySpec, version string) (*Table, error) {
	if !validCoordinate(spec.Origin.Lat, spec.Origin.Lon) {
		return nil, domainErrors.InvalidPolicy("origin coordinate (%v, %v) is out of range", spec.Origin.Lat, spec.Origin.Lon)
	}

	pattern := spec.PostalCodePattern
	if pattern == "" {
		pattern = DefaultPostalCodePattern
	}
	postalPattern, err := regexp.Compile(pattern)
	if err != nil {
		return nil, domainErrors.InvalidPolicy("postal code pattern %q: %v", pattern, err)
	}

	currency := spec.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	t := &Table{
		version:       version,
		currency:      currency,
		origin:        spec.Origin,
		postalPattern: postalPattern,
		methods:       make(map[string]models.MethodPolicy, len(spec.Methods)),
		cities:        make(map[string]*cityEntry),
	}

	if len(spec.Methods) == 0 {
		return nil, domainErrors.InvalidPolicy("policy defines no shipping methods")
	}
	for name, policy := range spec.Methods {
		key := NormalizeMethod(name)
		if key == "" {
			return nil, domainErrors.InvalidPolicy("shipping method name must not be empty")
		}
		if _, dup := t.methods[key]; dup {
			return nil, domainErrors.InvalidPolicy("shipping method %q is defined more than once", key)
		}
		if err := validateMethodPolicy(key, policy); err != nil {
			return nil, err
		}
		t.methods[key] = policy
	}

	postalOwner := make(map[string]string)
	for _, city := range spec.Cities {
		entry, err := t.buildCity(city, postalOwner)
		if err != nil {
			return nil, err
		}

		keys := append([]string{city.Name}, city.Aliases...)
		for _, raw := range keys {
			key := NormalizeCity(raw)
			if key == "" {
				return nil, domainErrors.InvalidPolicy("city %q has an empty name or alias", city.Name)
			}
			if other, dup := t.cities[key]; dup {
				return nil, domainErrors.InvalidPolicy("city key %q is claimed by both %q and %q", key, other.name, entry.name)
			}
			t.cities[key] = entry
		}
		t.cityCount++
	}

	return t, nil
}

func validateMethodPolicy(name string, p models.MethodPolicy) error {
	switch {
	case p.BaseFee < 0:
		return domainErrors.InvalidPolicy("method %q: base_fee must not be negative", name)
	case p.PerKmRate < 0:
		return domainErrors.InvalidPolicy("method %q: per_km_rate must not be negative", name)
	case p.MinFee < 0:
		return domainErrors.InvalidPolicy("method %q: min_fee must not be negative", name)
	case math.IsNaN(p.MaxDistanceKm) || math.IsInf(p.MaxDistanceKm, 0) || p.MaxDistanceKm <= 0:
		return domainErrors.InvalidPolicy("method %q: max_distance_km must be a positive number", name)
	case p.MinFee > MaxFee:
		return domainErrors.InvalidPolicy("method %q: min_fee exceeds %d", name, int64(MaxFee))
	case float64(p.BaseFee)+float64(p.PerKmRate)*p.MaxDistanceKm > MaxFee:
		return domainErrors.InvalidPolicy("method %q: fee at max_distance_km exceeds %d", name, int64(MaxFee))
	}
	return nil
}

func (t *Table) buildCity(city models.CitySpec, postalOwner map[string]string) (*cityEntry, error) {
	name := NormalizeCity(city.Name)
	if name == "" {
		return nil, domainErrors.InvalidPolicy("city name must not be empty")
	}
	if !validCoordinate(city.Lat, city.Lon) {
		return nil, domainErrors.InvalidPolicy("city %q: coordinate (%v, %v) is out of range", city.Name, city.Lat, city.Lon)
	}

	entry := &cityEntry{
		name:  city.Name,
		point: models.Coordinate{Lat: city.Lat, Lon: city.Lon},
	}

	if len(city.Methods) > 0 {
		entry.methods = make(map[string]struct{}, len(city.Methods))
		for _, m := range city.Methods {
			key := NormalizeMethod(m)
			if _, ok := t.methods[key]; !ok {
				return nil, domainErrors.InvalidPolicy("city %q offers undefined method %q", city.Name, m)
			}
			entry.methods[key] = struct{}{}
		}
	}

	if len(city.PostalCodes) > 0 {
		entry.postalCodes = make(map[string]models.Coordinate, len(city.PostalCodes))
		for raw, point := range city.PostalCodes {
			code := normalizePostalCode(raw)
			if !t.postalPattern.MatchString(code) {
				return nil, domainErrors.InvalidPolicy("city %q: postal code %q does not match %q", city.Name, raw, t.postalPattern.String())
			}
			if !validCoordinate(point.Lat, point.Lon) {
				return nil, domainErrors.InvalidPolicy("city %q: postal code %q coordinate is out of range", city.Name, raw)
			}
			if owner, dup := postalOwner[code]; dup {
				return nil, domainErrors.InvalidPolicy("postal code %q is claimed by both %q and %q", code, owner, city.Name)
			}
			postalOwner[code] = city.Name
			entry.postalCodes[code] = point
			t.postalCount++
		}
	}

	return entry, nil
}

// ComputeShippingFee quotes method for dest. Only missing fields and unknown
// methods are errors; every other negative outcome is a quote with
// Available=false.
func (t *Table) ComputeShippingFee(dest models.Destination, method string) (models.FeeQuote, error) {
	if err := checkRequired(dest, method); err != nil {
		return models.FeeQuote{}, err
	}
	city := NormalizeCity(dest.City)
	name := NormalizeMethod(method)
	policy, ok := t.methods[name]
	if !ok {
		return models.FeeQuote{}, domainErrors.InvalidMethod(method)
	}

	quote := models.FeeQuote{Method: name}

	entry, ok := t.cities[city]
	if !ok {
		quote.Reason = models.ReasonUnresolvedDestination
		return quote, nil
	}
	if !entry.offers(name) {
		quote.Reason = models.ReasonMethodNotOffered
		return quote, nil
	}

	distance := roundDistance(haversineKm(t.originPoint(), t.referencePoint(entry, dest.PostalCode)))
	quote.DistanceKm = &distance

	if distance > policy.MaxDistanceKm {
		quote.Reason = models.ReasonOutOfRange
		return quote, nil
	}

	fee := computeFee(policy, distance)
	quote.Available = true
	quote.Fee = &fee
	return quote, nil
}

// checkRequired reports the first blank required input. It needs no table,
// so a bad request is reported as such even before a policy is loaded.
func checkRequired(dest models.Destination, method string) error {
	if NormalizeCity(dest.City) == "" {
		return domainErrors.MissingField("city")
	}
	if NormalizeMethod(method) == "" {
		return domainErrors.MissingField("shippingMethod")
	}
	return nil
}

// referencePoint prefers a postal-code override. Malformed or unknown codes
// fall back to the city point.
func (t *Table) referencePoint(entry *cityEntry, postalCode string) models.Coordinate {
	if code, ok := t.postalCode(postalCode); ok {
		if point, ok := entry.postalCodes[code]; ok {
			return point
		}
	}
	return entry.point
}

func (t *Table) postalCode(raw string) (string, bool) {
	code := normalizePostalCode(raw)
	if code == "" || !t.postalPattern.MatchString(code) {
		return "", false
	}
	return code, true
}

func (t *Table) originPoint() models.Coordinate {
	return models.Coordinate{Lat: t.origin.Lat, Lon: t.origin.Lon}
}

func computeFee(p models.MethodPolicy, distanceKm float64) int64 {
	raw := float64(p.BaseFee) + float64(p.PerKmRate)*distanceKm
	fee := int64(math.Round(raw))
	if fee < p.MinFee {
		return p.MinFee
	}
	return fee
}

// quoteKey identifies a quote by its normalized inputs. It returns false when
// the inputs would not produce a quote.
func (t *Table) quoteKey(dest models.Destination, method string) (string, bool) {
	city := NormalizeCity(dest.City)
	name := NormalizeMethod(method)
	if city == "" || name == "" {
		return "", false
	}
	if _, ok := t.methods[name]; !ok {
		return "", false
	}
	code, _ := t.postalCode(dest.PostalCode)
	return t.version + ":" + name + ":" + city + ":" + code, true
}

func (t *Table) Version() string           { return t.version }
func (t *Table) Currency() string          { return t.currency }
func (t *Table) Origin() models.OriginSpec { return t.origin }
func (t *Table) CityCount() int            { return t.cityCount }
func (t *Table) PostalCodeCount() int      { return t.postalCount }

// Method returns the policy of a method by name.
func (t *Table) Method(name string) (models.MethodPolicy, bool) {
	p, ok := t.methods[NormalizeMethod(name)]
	return p, ok
}

// MethodNames returns the defined methods in sorted order.
func (t *Table) MethodNames() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
