package models

// Shipping method names offered by the built-in policy.
const (
	MethodRegular = "regular"
	MethodExpress = "express"
	MethodSameDay = "same_day"
)

// DefaultPolicySpec returns the built-in policy: a central Jakarta warehouse
// shipping to Java cities. Fees are in rupiah.
func DefaultPolicySpec() PolicySpec {
	return PolicySpec{
		Currency: "IDR",
		Origin: OriginSpec{
			Name: "Gudang Jakarta Pusat",
			Lat:  -6.175392,
			Lon:  106.827153,
		},
		PostalCodePattern: `^[0-9]{5}$`,
		Methods: map[string]MethodPolicy{
			MethodRegular: {
				BaseFee:       9000,
				PerKmRate:     150,
				MaxDistanceKm: 1200,
				MinFee:        10000,
			},
			MethodExpress: {
				BaseFee:       15000,
				PerKmRate:     300,
				MaxDistanceKm: 200,
				MinFee:        18000,
			},
			MethodSameDay: {
				BaseFee:       20000,
				PerKmRate:     1500,
				MaxDistanceKm: 40,
				MinFee:        25000,
			},
		},
		Cities: []CitySpec{
			{
				Name:    "Jakarta",
				Aliases: []string{"DKI Jakarta"},
				Lat:     -6.208763,
				Lon:     106.845599,
				PostalCodes: map[string]Coordinate{
					"10110": {Lat: -6.176655, Lon: 106.822701}, // Gambir
					"12190": {Lat: -6.229728, Lon: 106.801720}, // Kebayoran Baru
					"14240": {Lat: -6.158806, Lon: 106.905593}, // Kelapa Gading
				},
			},
			{Name: "Depok", Lat: -6.402484, Lon: 106.794243},
			{Name: "Tangerang", Lat: -6.178306, Lon: 106.631889},
			{Name: "Bekasi", Lat: -6.238270, Lon: 106.975571},
			{
				Name:    "Bogor",
				Lat:     -6.597147,
				Lon:     106.806038,
				Methods: []string{MethodRegular, MethodExpress},
			},
			{
				Name:    "Bandung",
				Lat:     -6.917464,
				Lon:     107.619123,
				Methods: []string{MethodRegular, MethodExpress},
			},
			{
				Name:    "Semarang",
				Lat:     -6.966667,
				Lon:     110.416664,
				Methods: []string{MethodRegular},
			},
			{
				Name:    "Yogyakarta",
				Aliases: []string{"Jogja", "Jogjakarta", "Yogya"},
				Lat:     -7.795580,
				Lon:     110.369492,
				Methods: []string{MethodRegular},
			},
			{
				Name:    "Surabaya",
				Lat:     -7.257472,
				Lon:     112.752090,
				Methods: []string{MethodRegular},
			},
		},
	}
}
