package refdata

import (
	"strings"

	"github.com/refdata/backend/internal/domain/shared"
)

// LegalEntity is an organization identified by its state registration
// numbers. Entities are shared records; a company gains visibility of
// an entity through an EntityCompanyRelation, never by direct
// ownership.
type LegalEntity struct {
	shared.BaseEntity
	FullName     *string `gorm:"type:varchar(255)"`
	ShortName    string  `gorm:"type:varchar(255);not null"`
	INN          string  `gorm:"type:varchar(12);not null;uniqueIndex:idx_legal_entities_inn_kpp,priority:1"`
	KPP          *string `gorm:"type:varchar(9);uniqueIndex:idx_legal_entities_inn_kpp,priority:2"`
	OGRN         string  `gorm:"type:varchar(15);not null;uniqueIndex"`
	VatRate      int     `gorm:"not null;default:0"`
	Address      *string `gorm:"type:text"`
	OPF          *string `gorm:"type:varchar(255)"`
	EntityTypeID *string `gorm:"type:varchar(50);index"`
	Signer       *string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (LegalEntity) TableName() string {
	return "legal_entities"
}

// LegalEntitySortFields maps public sort field names to columns
var LegalEntitySortFields = map[string]string{
	"short_name": "short_name",
	"full_name":  "full_name",
	"inn":        "inn",
	"kpp":        "kpp",
	"ogrn":       "ogrn",
	"opf":        "opf",
	"vat_rate":   "vat_rate",
	"address":    "address",
}

// NewLegalEntityInput carries the fields accepted when registering an
// entity directly (as opposed to a registry lookup).
type NewLegalEntityInput struct {
	ShortName    string
	FullName     *string
	INN          string
	KPP          *string
	OGRN         string
	VatRate      int
	Address      *string
	OPF          *string
	EntityTypeID *string
	Signer       *string
}

// NewLegalEntity creates a legal entity after validating its
// registration numbers
func NewLegalEntity(in NewLegalEntityInput) (*LegalEntity, error) {
	if strings.TrimSpace(in.ShortName) == "" {
		return nil, shared.NewValidationError("short_name is required")
	}
	if err := ValidateINN(in.INN); err != nil {
		return nil, err
	}
	if in.KPP != nil {
		if err := ValidateKPP(*in.KPP); err != nil {
			return nil, err
		}
	}
	if err := ValidateOGRN(in.OGRN); err != nil {
		return nil, err
	}
	if in.VatRate < 0 {
		return nil, shared.NewValidationError("vat_rate cannot be negative")
	}
	return &LegalEntity{
		BaseEntity:   shared.NewBaseEntity(),
		FullName:     in.FullName,
		ShortName:    in.ShortName,
		INN:          in.INN,
		KPP:          in.KPP,
		OGRN:         in.OGRN,
		VatRate:      in.VatRate,
		Address:      in.Address,
		OPF:          in.OPF,
		EntityTypeID: in.EntityTypeID,
		Signer:       in.Signer,
	}, nil
}

// ValidateINN checks the taxpayer number: 10 digits for organizations,
// 12 for individual entrepreneurs.
func ValidateINN(inn string) error {
	if !isDigits(inn) || (len(inn) != 10 && len(inn) != 12) {
		return shared.NewValidationError("inn must be 10 or 12 digits")
	}
	return nil
}

// ValidateKPP checks the tax registration reason code (9 digits)
func ValidateKPP(kpp string) error {
	if !isDigits(kpp) || len(kpp) != 9 {
		return shared.NewValidationError("kpp must be 9 digits")
	}
	return nil
}

// ValidateOGRN checks the state registration number: 13 digits for
// organizations, 15 for individual entrepreneurs.
func ValidateOGRN(ogrn string) error {
	if !isDigits(ogrn) || (len(ogrn) != 13 && len(ogrn) != 15) {
		return shared.NewValidationError("ogrn must be 13 or 15 digits")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LegalEntityType classifies legal entities (OOO, IP, ...). The
// directory is read-only here; rows are seeded by migrations.
type LegalEntityType struct {
	ID   string `gorm:"type:varchar(50);primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (LegalEntityType) TableName() string {
	return "legal_entity_types"
}

// LegalEntityTypeSortFields maps public sort field names to columns
var LegalEntityTypeSortFields = map[string]string{
	"id":   "id",
	"name": "name",
}
