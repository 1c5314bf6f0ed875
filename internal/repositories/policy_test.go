package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shipfee/internal/config"
	"shipfee/internal/models"
	"shipfee/internal/services/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePolicy = `
currency: IDR
origin:
  name: Warehouse
  lat: 0
  lon: 0
methods:
  regular:
    base_fee: 5000
    per_km_rate: 100
    max_distance_km: 500
    min_fee: 6000
cities:
  - name: Alpha
    aliases: [Alfa]
    lat: 0.045
    lon: 0
    postal_codes:
      "11111": { lat: 0.09, lon: 0 }
`

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFilePolicyLoader_Load(t *testing.T) {
	path := writePolicy(t, samplePolicy)
	loader := NewFilePolicyLoader(path)

	spec, version, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "file:"+path, loader.Source())
	assert.Len(t, version, 64)
	assert.Equal(t, "Warehouse", spec.Origin.Name)
	assert.Equal(t, int64(5000), spec.Methods["regular"].BaseFee)
	require.Len(t, spec.Cities, 1)
	assert.Equal(t, []string{"Alfa"}, spec.Cities[0].Aliases)
	assert.Equal(t, models.Coordinate{Lat: 0.09, Lon: 0}, spec.Cities[0].PostalCodes["11111"])

	// Same bytes, same version.
	_, again, err := NewFilePolicyLoader(writePolicy(t, samplePolicy)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, version, again)

	// Any edit changes the version.
	_, edited, err := NewFilePolicyLoader(writePolicy(t, samplePolicy+"\n# edited\n")).Load(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, version, edited)
}

func TestFilePolicyLoader_BuildsTable(t *testing.T) {
	spec, version, err := NewFilePolicyLoader(writePolicy(t, samplePolicy)).Load(context.Background())
	require.NoError(t, err)

	table, err := shipping.NewTable(spec, version)
	require.NoError(t, err)

	quote, err := table.ComputeShippingFee(models.Destination{City: "alfa", PostalCode: "11111"}, "regular")
	require.NoError(t, err)
	require.True(t, quote.Available)
	assert.Equal(t, 10.0, *quote.DistanceKm)
	assert.Equal(t, int64(6000), *quote.Fee)
}

func TestFilePolicyLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writePolicy(t, "methods: [unterminated") },
		},
		{
			name: "unknown field",
			path: func(t *testing.T) string { return writePolicy(t, "currency: IDR\nbase_fees: 1\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewFilePolicyLoader(tt.path(t)).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestExamplePolicyFile(t *testing.T) {
	spec, version, err := NewFilePolicyLoader(filepath.Join("..", "..", "policy.example.yaml")).Load(context.Background())
	require.NoError(t, err)

	_, err = shipping.NewTable(spec, version)
	assert.NoError(t, err)
}

func TestBuiltinPolicyLoader(t *testing.T) {
	loader := NewBuiltinPolicyLoader()

	spec, v1, err := loader.Load(context.Background())
	require.NoError(t, err)
	_, v2, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "builtin", loader.Source())
	assert.Equal(t, v1, v2)
	assert.Equal(t, models.DefaultPolicySpec(), spec)
}

func TestNewPolicyLoader(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "builtin", source: config.PolicySourceBuiltin, want: "builtin"},
		{name: "empty defaults to builtin", source: "", want: "builtin"},
		{name: "file", source: config.PolicySourceFile, want: "file:policy.yaml"},
		{name: "postgres without db", source: config.PolicySourcePostgres, wantErr: true},
		{name: "unknown", source: "s3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewPolicyLoader(config.Config{PolicySource: tt.source, PolicyFile: "policy.yaml"}, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loader.Source())
		})
	}
}

func TestAssemblePolicySpec(t *testing.T) {
	origin := models.ShippingOrigin{ID: 1, Name: "Hub", Lat: -6.2, Lon: 106.8, Currency: "IDR", Active: true}
	methods := []models.ShippingMethod{
		{Name: "express", BaseFee: 15000, PerKmRate: 300, MaxDistanceKm: 200, MinFee: 18000},
		{Name: "regular", BaseFee: 9000, PerKmRate: 150, MaxDistanceKm: 1200, MinFee: 10000},
	}
	cities := []models.ShippingCity{
		{
			ID: 1, Name: "Jakarta", Lat: -6.2, Lon: 106.84,
			Aliases:     []models.ShippingCityAlias{{CityID: 1, Alias: "DKI Jakarta"}},
			PostalCodes: []models.ShippingCityPostalCode{{CityID: 1, PostalCode: "10110", Lat: -6.17, Lon: 106.82}},
		},
		{
			ID: 2, Name: "Surabaya", Lat: -7.25, Lon: 112.75,
			Methods: []models.ShippingCityMethod{{CityID: 2, Method: "regular"}},
		},
	}

	spec, err := assemblePolicySpec(origin, methods, cities)
	require.NoError(t, err)

	assert.Equal(t, "IDR", spec.Currency)
	assert.Equal(t, models.OriginSpec{Name: "Hub", Lat: -6.2, Lon: 106.8}, spec.Origin)
	assert.Len(t, spec.Methods, 2)
	assert.Equal(t, int64(150), spec.Methods["regular"].PerKmRate)
	require.Len(t, spec.Cities, 2)
	assert.Equal(t, []string{"DKI Jakarta"}, spec.Cities[0].Aliases)
	assert.Nil(t, spec.Cities[0].Methods)
	assert.Equal(t, models.Coordinate{Lat: -6.17, Lon: 106.82}, spec.Cities[0].PostalCodes["10110"])
	assert.Equal(t, []string{"regular"}, spec.Cities[1].Methods)
	assert.Nil(t, spec.Cities[1].PostalCodes)

	v1, err := specVersion(spec)
	require.NoError(t, err)
	again, err := assemblePolicySpec(origin, methods, cities)
	require.NoError(t, err)
	v2, err := specVersion(again)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)

	_, err = shipping.NewTable(spec, v1)
	assert.NoError(t, err)
}

func TestAssemblePolicySpec_Duplicates(t *testing.T) {
	origin := models.ShippingOrigin{Name: "Hub", Currency: "IDR"}

	_, err := assemblePolicySpec(origin, []models.ShippingMethod{{Name: "regular"}, {Name: "regular"}}, nil)
	assert.ErrorContains(t, err, `shipping method "regular" appears twice`)

	cities := []models.ShippingCity{{
		Name: "Jakarta",
		PostalCodes: []models.ShippingCityPostalCode{
			{PostalCode: "10110"},
			{PostalCode: "10110", Lat: 1},
		},
	}}
	_, err = assemblePolicySpec(origin, nil, cities)
	assert.ErrorContains(t, err, `postal code "10110" appears twice`)
}
