package shipping

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	domainErrors "shipfee/internal/errors"
	"shipfee/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSpec places the origin on the equator; 0.045 degrees of latitude is
// 5.0 km after rounding and 0.09 degrees is 10.0 km.
func testSpec() models.PolicySpec {
	return models.PolicySpec{
		Currency: "IDR",
		Origin:   models.OriginSpec{Name: "test origin", Lat: 0, Lon: 0},
		Methods: map[string]models.MethodPolicy{
			"regular": {BaseFee: 5000, PerKmRate: 1000, MaxDistanceKm: 50, MinFee: 5000},
			"express": {BaseFee: 8000, PerKmRate: 2000, MaxDistanceKm: 3, MinFee: 9000},
			"economy": {BaseFee: 1000, PerKmRate: 100, MaxDistanceKm: 100, MinFee: 4000},
		},
		Cities: []models.CitySpec{
			{
				Name:    "Jakarta",
				Aliases: []string{"DKI Jakarta"},
				Lat:     0.045,
				Lon:     0,
				PostalCodes: map[string]models.Coordinate{
					"00000": {Lat: 0, Lon: 0},
					"10110": {Lat: 0.09, Lon: 0},
				},
			},
			{Name: "Far City", Lat: 0.09, Lon: 0},
			{Name: "Regular Town", Lat: 0.045, Lon: 0, Methods: []string{"regular"}},
		},
	}
}

func mustTable(t *testing.T, spec models.PolicySpec) *Table {
	t.Helper()
	table, err := NewTable(spec, "test-version")
	require.NoError(t, err)
	return table
}

func TestHaversineKm(t *testing.T) {
	// Distance from (0,0) to (0,1) ~ 111.19 km
	d := haversineKm(models.Coordinate{Lat: 0, Lon: 0}, models.Coordinate{Lat: 0, Lon: 1})
	assert.InDelta(t, 111.19, d, 0.01)

	// Same point should be zero
	p := models.Coordinate{Lat: 10.5, Lon: 20.7}
	assert.Equal(t, 0.0, haversineKm(p, p))
}

func TestRoundDistance(t *testing.T) {
	assert.Equal(t, 5.0, roundDistance(5.0037))
	assert.Equal(t, 4.9, roundDistance(4.9036))
	assert.Equal(t, 12.3, roundDistance(12.34))
}

func TestComputeShippingFee_Scenarios(t *testing.T) {
	table := mustTable(t, testSpec())

	t.Run("regular within range", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "regular")
		require.NoError(t, err)
		assert.True(t, q.Available)
		require.NotNil(t, q.Fee)
		require.NotNil(t, q.DistanceKm)
		assert.Equal(t, int64(10000), *q.Fee)
		assert.Equal(t, 5.0, *q.DistanceKm)
		assert.Equal(t, "regular", q.Method)
		assert.Empty(t, q.Reason)
	})

	t.Run("express beyond its cap", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "express")
		require.NoError(t, err)
		assert.False(t, q.Available)
		assert.Nil(t, q.Fee)
		require.NotNil(t, q.DistanceKm)
		assert.Equal(t, 5.0, *q.DistanceKm)
		assert.Equal(t, models.ReasonOutOfRange, q.Reason)
	})

	t.Run("unknown city", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "Atlantis"}, "regular")
		require.NoError(t, err)
		assert.False(t, q.Available)
		assert.Nil(t, q.Fee)
		assert.Nil(t, q.DistanceKm)
		assert.Equal(t, models.ReasonUnresolvedDestination, q.Reason)
	})

	t.Run("missing city", func(t *testing.T) {
		_, err := table.ComputeShippingFee(models.Destination{City: "   "}, "regular")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrMissingField))

		var de *domainErrors.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "city", de.Field)
	})

	t.Run("missing method", func(t *testing.T) {
		_, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "")
		assert.True(t, errors.Is(err, domainErrors.ErrMissingField))
	})

	t.Run("unknown method is not unavailability", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "teleport")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrInvalidMethod))
		assert.False(t, errors.Is(err, domainErrors.ErrMethodUnavailable))
		assert.Equal(t, models.FeeQuote{}, q)
	})

	t.Run("unknown method for unknown city is still invalid", func(t *testing.T) {
		_, err := table.ComputeShippingFee(models.Destination{City: "Atlantis"}, "teleport")
		assert.True(t, errors.Is(err, domainErrors.ErrInvalidMethod))
	})

	t.Run("method not offered in city", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "Regular Town"}, "economy")
		require.NoError(t, err)
		assert.False(t, q.Available)
		assert.Nil(t, q.Fee)
		assert.Nil(t, q.DistanceKm)
		assert.Equal(t, models.ReasonMethodNotOffered, q.Reason)
	})

	t.Run("alias resolves to city", func(t *testing.T) {
		q, err := table.ComputeShippingFee(models.Destination{City: "dki  JAKARTA"}, "regular")
		require.NoError(t, err)
		assert.Equal(t, 5.0, *q.DistanceKm)
	})
}

func TestComputeShippingFee_ZeroDistanceKeepsFloor(t *testing.T) {
	table := mustTable(t, testSpec())

	q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta", PostalCode: "00000"}, "regular")
	require.NoError(t, err)
	assert.True(t, q.Available)
	assert.Equal(t, 0.0, *q.DistanceKm)
	assert.Equal(t, int64(5000), *q.Fee)

	q, err = table.ComputeShippingFee(models.Destination{City: "Jakarta", PostalCode: "00000"}, "economy")
	require.NoError(t, err)
	assert.Equal(t, int64(4000), *q.Fee)
}

func TestComputeShippingFee_PostalCodes(t *testing.T) {
	table := mustTable(t, testSpec())

	tests := []struct {
		name    string
		dest    models.Destination
		wantKm  float64
		wantFee int64
	}{
		{"override wins", models.Destination{City: "Jakarta", PostalCode: "10110"}, 10.0, 15000},
		{"spaces inside code", models.Destination{City: "Jakarta", PostalCode: " 101 10 "}, 10.0, 15000},
		{"unknown code falls back to city", models.Destination{City: "Jakarta", PostalCode: "99999"}, 5.0, 10000},
		{"malformed code falls back to city", models.Destination{City: "Jakarta", PostalCode: "ABC"}, 5.0, 10000},
		{"wrong length falls back to city", models.Destination{City: "Jakarta", PostalCode: "101100"}, 5.0, 10000},
		{"codes are scoped to their city", models.Destination{City: "Far City", PostalCode: "00000"}, 10.0, 15000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := table.ComputeShippingFee(tt.dest, "regular")
			require.NoError(t, err)
			require.True(t, q.Available)
			assert.Equal(t, tt.wantKm, *q.DistanceKm)
			assert.Equal(t, tt.wantFee, *q.Fee)
		})
	}
}

func TestComputeShippingFee_Normalization(t *testing.T) {
	table := mustTable(t, testSpec())

	reference, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "regular")
	require.NoError(t, err)

	for _, city := range []string{"jakarta", " JAKARTA ", "\tJaKaRtA\n"} {
		q, err := table.ComputeShippingFee(models.Destination{City: city}, "regular")
		require.NoError(t, err)
		assert.Equal(t, reference, q, city)
	}

	q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, " Regular ")
	require.NoError(t, err)
	assert.Equal(t, reference, q)
}

func TestComputeShippingFee_MaxDistanceBoundary(t *testing.T) {
	spec := testSpec()
	spec.Methods["edge"] = models.MethodPolicy{BaseFee: 1000, PerKmRate: 10, MaxDistanceKm: 5.0, MinFee: 0}
	spec.Methods["short"] = models.MethodPolicy{BaseFee: 1000, PerKmRate: 10, MaxDistanceKm: 4.9, MinFee: 0}
	table := mustTable(t, spec)

	q, err := table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "edge")
	require.NoError(t, err)
	assert.True(t, q.Available, "a destination exactly at the cap is served")
	assert.Equal(t, int64(1050), *q.Fee)

	q, err = table.ComputeShippingFee(models.Destination{City: "Jakarta"}, "short")
	require.NoError(t, err)
	assert.False(t, q.Available)
	assert.Nil(t, q.Fee)
	assert.Equal(t, 5.0, *q.DistanceKm)
}

func TestComputeShippingFee_MonotonicInDistance(t *testing.T) {
	spec := testSpec()
	spec.Cities = nil
	for i := 0; i <= 40; i++ {
		spec.Cities = append(spec.Cities, models.CitySpec{
			Name: "ring " + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Lat:  float64(i) * 0.01,
		})
	}
	table := mustTable(t, spec)

	var lastFee int64
	var lastKm float64
	for _, c := range spec.Cities {
		q, err := table.ComputeShippingFee(models.Destination{City: c.Name}, "regular")
		require.NoError(t, err)
		require.True(t, q.Available)
		assert.GreaterOrEqual(t, *q.DistanceKm, lastKm)
		assert.GreaterOrEqual(t, *q.Fee, lastFee)
		assert.GreaterOrEqual(t, *q.Fee, int64(5000))
		assert.LessOrEqual(t, *q.DistanceKm, 50.0)
		lastFee, lastKm = *q.Fee, *q.DistanceKm
	}
}

func TestComputeShippingFee_Deterministic(t *testing.T) {
	table := mustTable(t, testSpec())
	dest := models.Destination{City: "Far City"}

	first, err := table.ComputeShippingFee(dest, "economy")
	require.NoError(t, err)
	want, err := json.Marshal(first)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := table.ComputeShippingFee(dest, "economy")
			assert.NoError(t, err)
			got, _ := json.Marshal(q)
			assert.Equal(t, string(want), string(got))
		}()
	}
	wg.Wait()
}

func TestNewTable_RejectsMalformedPolicy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PolicySpec)
		errMsg string
	}{
		{
			name:   "origin out of range",
			mutate: func(s *models.PolicySpec) { s.Origin.Lat = 91 },
			errMsg: "origin coordinate",
		},
		{
			name:   "no methods",
			mutate: func(s *models.PolicySpec) { s.Methods = nil },
			errMsg: "no shipping methods",
		},
		{
			name:   "empty method name",
			mutate: func(s *models.PolicySpec) { s.Methods[" "] = models.MethodPolicy{MaxDistanceKm: 1} },
			errMsg: "must not be empty",
		},
		{
			name:   "method names overlap after normalization",
			mutate: func(s *models.PolicySpec) { s.Methods["Regular"] = models.MethodPolicy{MaxDistanceKm: 1} },
			errMsg: "defined more than once",
		},
		{
			name: "negative base fee",
			mutate: func(s *models.PolicySpec) {
				s.Methods["regular"] = models.MethodPolicy{BaseFee: -1, MaxDistanceKm: 1}
			},
			errMsg: "base_fee",
		},
		{
			name: "zero max distance",
			mutate: func(s *models.PolicySpec) {
				s.Methods["regular"] = models.MethodPolicy{BaseFee: 1}
			},
			errMsg: "max_distance_km",
		},
		{
			name: "fee at max distance overflows",
			mutate: func(s *models.PolicySpec) {
				s.Methods["regular"] = models.MethodPolicy{PerKmRate: 1 << 62, MaxDistanceKm: 50, MinFee: 1}
			},
			errMsg: "fee at max_distance_km exceeds",
		},
		{
			name: "base fee alone above bound",
			mutate: func(s *models.PolicySpec) {
				s.Methods["regular"] = models.MethodPolicy{BaseFee: 1 << 54, MaxDistanceKm: 1}
			},
			errMsg: "fee at max_distance_km exceeds",
		},
		{
			name: "min fee above bound",
			mutate: func(s *models.PolicySpec) {
				s.Methods["regular"] = models.MethodPolicy{MaxDistanceKm: 1, MinFee: 1 << 60}
			},
			errMsg: "min_fee exceeds",
		},
		{
			name: "city alias overlaps another city",
			mutate: func(s *models.PolicySpec) {
				s.Cities = append(s.Cities, models.CitySpec{Name: "Batavia", Aliases: []string{" jakarta "}})
			},
			errMsg: "claimed by both",
		},
		{
			name:   "duplicate city",
			mutate: func(s *models.PolicySpec) { s.Cities = append(s.Cities, models.CitySpec{Name: "FAR  CITY"}) },
			errMsg: "claimed by both",
		},
		{
			name: "postal code claimed by two cities",
			mutate: func(s *models.PolicySpec) {
				s.Cities[1].PostalCodes = map[string]models.Coordinate{"10110": {}}
			},
			errMsg: "postal code \"10110\" is claimed",
		},
		{
			name: "malformed postal code",
			mutate: func(s *models.PolicySpec) {
				s.Cities[1].PostalCodes = map[string]models.Coordinate{"1A": {}}
			},
			errMsg: "does not match",
		},
		{
			name:   "city offers undefined method",
			mutate: func(s *models.PolicySpec) { s.Cities[2].Methods = []string{"drone"} },
			errMsg: "undefined method",
		},
		{
			name:   "city coordinate out of range",
			mutate: func(s *models.PolicySpec) { s.Cities[0].Lon = 181 },
			errMsg: "out of range",
		},
		{
			name:   "bad postal pattern",
			mutate: func(s *models.PolicySpec) { s.PostalCodePattern = "([" },
			errMsg: "postal code pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(&spec)

			_, err := NewTable(spec, "v")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainErrors.ErrInvalidPolicy))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewTable_DefaultPolicy(t *testing.T) {
	table := mustTable(t, models.DefaultPolicySpec())

	assert.Equal(t, []string{"express", "regular", "same_day"}, table.MethodNames())
	assert.Equal(t, 9, table.CityCount())
	assert.Equal(t, 3, table.PostalCodeCount())

	q, err := table.ComputeShippingFee(models.Destination{City: "jakarta"}, models.MethodSameDay)
	require.NoError(t, err)
	assert.True(t, q.Available)
	assert.Equal(t, 4.2, *q.DistanceKm)
	assert.Equal(t, int64(26300), *q.Fee)

	q, err = table.ComputeShippingFee(models.Destination{City: "Jogja"}, models.MethodExpress)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonMethodNotOffered, q.Reason)

	q, err = table.ComputeShippingFee(models.Destination{City: "Surabaya"}, models.MethodRegular)
	require.NoError(t, err)
	assert.True(t, q.Available)
	assert.Equal(t, 665.3, *q.DistanceKm)
}

func TestHolder_Swap(t *testing.T) {
	first := mustTable(t, testSpec())
	second, err := NewTable(testSpec(), "second")
	require.NoError(t, err)

	h := NewHolder(first)
	assert.Same(t, first, h.Load())

	old := h.Swap(second)
	assert.Same(t, first, old)
	assert.Equal(t, "second", h.Load().Version())

	assert.Nil(t, NewHolder(nil).Load())
}
