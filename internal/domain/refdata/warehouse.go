package refdata

import (
	"strings"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// Warehouse is a company-owned storage site at a physical address,
// optionally pinned to a city from the directory.
type Warehouse struct {
	shared.AuditedEntity
	Name        string     `gorm:"type:varchar(100);not null"`
	Description *string    `gorm:"type:text"`
	Address     string     `gorm:"type:varchar(255);not null"`
	CityID      *uuid.UUID `gorm:"type:uuid;index"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// CompanyOwnedSortFields maps the public sort field names shared by
// warehouses, storages and cash registers to columns.
var CompanyOwnedSortFields = map[string]string{
	"name":        "name",
	"description": "description",
	"created_at":  "created_at",
	"modified_at": "modified_at",
}

// WarehouseSortFields adds the warehouse-only address column to the
// shared owned-resource fields.
var WarehouseSortFields = map[string]string{
	"name":        "name",
	"description": "description",
	"address":     "address",
	"created_at":  "created_at",
	"modified_at": "modified_at",
}

// NewWarehouse creates a warehouse stamped with the acting user.
// Callers must have checked that cityID, when given, names an existing
// city.
func NewWarehouse(actor, companyID uuid.UUID, name, address string, description *string, cityID *uuid.UUID) (*Warehouse, error) {
	if err := validateOwnedName(name); err != nil {
		return nil, err
	}
	if err := validateWarehouseAddress(address); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("company_id is required")
	}
	return &Warehouse{
		AuditedEntity: shared.NewAuditedEntity(actor),
		Name:          name,
		Description:   description,
		Address:       address,
		CityID:        cityID,
		CompanyID:     companyID,
	}, nil
}

// Rename changes the warehouse name
func (w *Warehouse) Rename(name string) error {
	if err := validateOwnedName(name); err != nil {
		return err
	}
	w.Name = name
	return nil
}

// Relocate changes the warehouse address
func (w *Warehouse) Relocate(address string) error {
	if err := validateWarehouseAddress(address); err != nil {
		return err
	}
	w.Address = address
	return nil
}

func validateWarehouseAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return shared.NewValidationError("address is required")
	}
	if len(address) > 255 {
		return shared.NewValidationError("address cannot exceed 255 characters")
	}
	return nil
}

// validateOwnedName enforces the common 3..100 name length used by all
// company-owned resources.
func validateOwnedName(name string) error {
	if len(name) < 3 {
		return shared.NewValidationError("name must be at least 3 characters")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name cannot exceed 100 characters")
	}
	return nil
}
