// Package refdata holds the reference-data entities shared by the rest
// of the platform: cities, warehouses, storages, cash registers, legal
// entities and their company relations.
package refdata

import (
	"strings"

	"github.com/refdata/backend/internal/domain/shared"
)

// City is a directory entry shared by all companies. It carries no
// company ownership; reads are open to any authenticated caller while
// writes are restricted to superadmins.
type City struct {
	shared.BaseEntity
	Name       string  `gorm:"type:varchar(100);not null"`
	Region     string  `gorm:"type:varchar(100);not null"`
	Code       *string `gorm:"type:varchar(50)"`
	ExternalID *string `gorm:"type:varchar(100)"`
	Timezone   int     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// CitySortFields maps public sort field names to columns
var CitySortFields = map[string]string{
	"name":        "name",
	"city_name":   "name",
	"region":      "region",
	"code":        "code",
	"external_id": "external_id",
	"timezone":    "timezone",
}

// NewCity creates a city after validating required fields
func NewCity(name, region string, code, externalID *string, timezone int) (*City, error) {
	if err := validateCityName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(region) == "" {
		return nil, shared.NewValidationError("region is required")
	}
	return &City{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Region:     region,
		Code:       code,
		ExternalID: externalID,
		Timezone:   timezone,
	}, nil
}

// Rename changes the city name
func (c *City) Rename(name string) error {
	if err := validateCityName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

func validateCityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("city name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("city name cannot exceed 100 characters")
	}
	return nil
}
