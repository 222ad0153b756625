package refdata

import (
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// Storage is a company-owned storage location, finer grained than a
// warehouse (a cell, a room, a yard).
type Storage struct {
	shared.AuditedEntity
	Name        string    `gorm:"type:varchar(100);not null"`
	Description *string   `gorm:"type:text"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Storage) TableName() string {
	return "storages"
}

// NewStorage creates a storage stamped with the acting user
func NewStorage(actor, companyID uuid.UUID, name string, description *string) (*Storage, error) {
	if err := validateOwnedName(name); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("company_id is required")
	}
	return &Storage{
		AuditedEntity: shared.NewAuditedEntity(actor),
		Name:          name,
		Description:   description,
		CompanyID:     companyID,
	}, nil
}

// Rename changes the storage name
func (s *Storage) Rename(name string) error {
	if err := validateOwnedName(name); err != nil {
		return err
	}
	s.Name = name
	return nil
}
