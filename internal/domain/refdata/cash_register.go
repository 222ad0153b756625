package refdata

import (
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// CashRegister is a company-owned point-of-sale register
type CashRegister struct {
	shared.AuditedEntity
	Name        string    `gorm:"type:varchar(100);not null"`
	Description *string   `gorm:"type:text"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CashRegister) TableName() string {
	return "cash_registers"
}

// NewCashRegister creates a cash register stamped with the acting user
func NewCashRegister(actor, companyID uuid.UUID, name string, description *string) (*CashRegister, error) {
	if err := validateOwnedName(name); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("company_id is required")
	}
	return &CashRegister{
		AuditedEntity: shared.NewAuditedEntity(actor),
		Name:          name,
		Description:   description,
		CompanyID:     companyID,
	}, nil
}

// Rename changes the register name
func (r *CashRegister) Rename(name string) error {
	if err := validateOwnedName(name); err != nil {
		return err
	}
	r.Name = name
	return nil
}
