package repositories

import (
	"context"
	"errors"
	"fmt"

	"shipfee/internal/models"

	"gorm.io/gorm"
)

// DBPolicyLoader reads the policy from the storefront database. It only
// issues SELECTs; the tables are owned by the admin panel.
type DBPolicyLoader struct {
	db *gorm.DB
}

func NewDBPolicyLoader(db *gorm.DB) *DBPolicyLoader {
	return &DBPolicyLoader{db: db}
}

func (l *DBPolicyLoader) Source() string { return "postgres" }

func (l *DBPolicyLoader) Load(ctx context.Context) (models.PolicySpec, string, error) {
	db := l.db.WithContext(ctx)

	var origin models.ShippingOrigin
	if err := db.Where("active = ?", true).Order("id").First(&origin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PolicySpec{}, "", errors.New("no active shipping origin")
		}
		return models.PolicySpec{}, "", fmt.Errorf("failed to read shipping origin: %w", err)
	}

	var methods []models.ShippingMethod
	if err := db.Order("name").Find(&methods).Error; err != nil {
		return models.PolicySpec{}, "", fmt.Errorf("failed to read shipping methods: %w", err)
	}

	var cities []models.ShippingCity
	err := db.Preload("Aliases").
		Preload("Methods").
		Preload("PostalCodes").
		Order("id").
		Find(&cities).Error
	if err != nil {
		return models.PolicySpec{}, "", fmt.Errorf("failed to read shipping cities: %w", err)
	}

	spec, err := assemblePolicySpec(origin, methods, cities)
	if err != nil {
		return models.PolicySpec{}, "", err
	}
	version, err := specVersion(spec)
	if err != nil {
		return models.PolicySpec{}, "", err
	}
	return spec, version, nil
}

// assemblePolicySpec turns database rows into a PolicySpec. Conflicts that a
// map would silently collapse are reported here; everything else is left to
// shipping.NewTable.
func assemblePolicySpec(origin models.ShippingOrigin, methods []models.ShippingMethod, cities []models.ShippingCity) (models.PolicySpec, error) {
	spec := models.PolicySpec{
		Currency: origin.Currency,
		Origin: models.OriginSpec{
			Name: origin.Name,
			Lat:  origin.Lat,
			Lon:  origin.Lon,
		},
		Methods: make(map[string]models.MethodPolicy, len(methods)),
	}

	for _, m := range methods {
		if _, dup := spec.Methods[m.Name]; dup {
			return models.PolicySpec{}, fmt.Errorf("shipping method %q appears twice", m.Name)
		}
		spec.Methods[m.Name] = models.MethodPolicy{
			BaseFee:       m.BaseFee,
			PerKmRate:     m.PerKmRate,
			MaxDistanceKm: m.MaxDistanceKm,
			MinFee:        m.MinFee,
		}
	}

	for _, c := range cities {
		city := models.CitySpec{
			Name: c.Name,
			Lat:  c.Lat,
			Lon:  c.Lon,
		}
		for _, a := range c.Aliases {
			city.Aliases = append(city.Aliases, a.Alias)
		}
		for _, m := range c.Methods {
			city.Methods = append(city.Methods, m.Method)
		}
		if len(c.PostalCodes) > 0 {
			city.PostalCodes = make(map[string]models.Coordinate, len(c.PostalCodes))
			for _, p := range c.PostalCodes {
				if _, dup := city.PostalCodes[p.PostalCode]; dup {
					return models.PolicySpec{}, fmt.Errorf("postal code %q appears twice for city %q", p.PostalCode, c.Name)
				}
				city.PostalCodes[p.PostalCode] = models.Coordinate{Lat: p.Lat, Lon: p.Lon}
			}
		}
		spec.Cities = append(spec.Cities, city)
	}

	return spec, nil
}
