package refdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// Well-known relation types. The column is free-form but these two
// drive the buyer/seller views.
const (
	RelationTypeBuyer  = "buyer"
	RelationTypeSeller = "seller"
)

// EntityCompanyRelation links a legal entity to a company and is the
// sole source of entity visibility for non-superadmin callers.
type EntityCompanyRelation struct {
	shared.BaseEntity
	CompanyID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	LegalEntityID uuid.UUID    `gorm:"type:uuid;not null;index"`
	LegalEntity   *LegalEntity `gorm:"foreignKey:LegalEntityID;constraint:OnDelete:CASCADE"`
	RelationType  string       `gorm:"type:varchar(10);not null"`
	Description   *string      `gorm:"type:text"`
	CreatedAt     time.Time    `gorm:"not null;autoCreateTime"`
}

// TableName returns the table name for GORM
func (EntityCompanyRelation) TableName() string {
	return "entity_company_relations"
}

// RelationSortFields maps public sort field names to columns
var RelationSortFields = map[string]string{
	"relation_type": "relation_type",
	"description":   "description",
	"created_at":    "created_at",
}

// NewEntityCompanyRelation creates a relation after validating the type
func NewEntityCompanyRelation(companyID, legalEntityID uuid.UUID, relationType string, description *string) (*EntityCompanyRelation, error) {
	if err := validateRelationType(relationType); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("company_id is required")
	}
	if legalEntityID == uuid.Nil {
		return nil, shared.NewValidationError("legal_entity_id is required")
	}
	return &EntityCompanyRelation{
		BaseEntity:    shared.NewBaseEntity(),
		CompanyID:     companyID,
		LegalEntityID: legalEntityID,
		RelationType:  relationType,
		Description:   description,
		CreatedAt:     time.Now(),
	}, nil
}

// ChangeType switches the relation type after validating it
func (r *EntityCompanyRelation) ChangeType(relationType string) error {
	if err := validateRelationType(relationType); err != nil {
		return err
	}
	r.RelationType = relationType
	return nil
}

func validateRelationType(relationType string) error {
	if strings.TrimSpace(relationType) == "" {
		return shared.NewValidationError("relation_type is required")
	}
	if len(relationType) > 10 {
		return shared.NewValidationError("relation_type cannot exceed 10 characters")
	}
	return nil
}
