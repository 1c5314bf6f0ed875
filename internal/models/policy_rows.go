package models

// Read-only rows of the postgres policy source. The service never writes them.

type ShippingOrigin struct {
	ID       uint    `gorm:"primarykey"`
	Name     string  `gorm:"not null"`
	Lat      float64 `gorm:"not null"`
	Lon      float64 `gorm:"not null"`
	Currency string  `gorm:"default:'IDR'"`
	Active   bool    `gorm:"default:true"`
}

type ShippingMethod struct {
	ID            uint    `gorm:"primarykey"`
	Name          string  `gorm:"uniqueIndex;not null"`
	BaseFee       int64   `gorm:"not null"`
	PerKmRate     int64   `gorm:"not null"`
	MaxDistanceKm float64 `gorm:"not null"`
	MinFee        int64   `gorm:"not null"`
}

type ShippingCity struct {
	ID          uint                     `gorm:"primarykey"`
	Name        string                   `gorm:"uniqueIndex;not null"`
	Lat         float64                  `gorm:"not null"`
	Lon         float64                  `gorm:"not null"`
	Aliases     []ShippingCityAlias      `gorm:"foreignKey:CityID"`
	Methods     []ShippingCityMethod     `gorm:"foreignKey:CityID"`
	PostalCodes []ShippingCityPostalCode `gorm:"foreignKey:CityID"`
}

type ShippingCityAlias struct {
	ID     uint   `gorm:"primarykey"`
	CityID uint   `gorm:"index;not null"`
	Alias  string `gorm:"not null"`
}

type ShippingCityMethod struct {
	ID     uint   `gorm:"primarykey"`
	CityID uint   `gorm:"index;not null"`
	Method string `gorm:"not null"`
}

type ShippingCityPostalCode struct {
	ID         uint    `gorm:"primarykey"`
	CityID     uint    `gorm:"index;not null"`
	PostalCode string  `gorm:"not null"`
	Lat        float64 `gorm:"not null"`
	Lon        float64 `gorm:"not null"`
}
