package refdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// CityRepository persists cities
type CityRepository interface {
	shared.Repository[City]
}

// WarehouseRepository persists warehouses
type WarehouseRepository interface {
	shared.Repository[Warehouse]
}

// StorageRepository persists storages
type StorageRepository interface {
	shared.Repository[Storage]
}

// CashRegisterRepository persists cash registers
type CashRegisterRepository interface {
	shared.Repository[CashRegister]
}

// LegalEntityRepository persists legal entities
type LegalEntityRepository interface {
	shared.Repository[LegalEntity]

	// FindByINN looks an entity up by taxpayer number, narrowed by KPP
	// when one is given.
	FindByINN(ctx context.Context, inn string, kpp *string) (*LegalEntity, error)
	ExistsByINN(ctx context.Context, inn string, kpp *string) (bool, error)
	ExistsByOGRN(ctx context.Context, ogrn string) (bool, error)

	// FindByIDs fetches the entities whose IDs appear in ids; missing
	// IDs are skipped silently.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]LegalEntity, error)

	// SaveWithRelation stores a new entity together with its initial
	// company relation in one transaction.
	SaveWithRelation(ctx context.Context, entity *LegalEntity, relation *EntityCompanyRelation) error
}

// LegalEntityTypeRepository reads the entity type directory
type LegalEntityTypeRepository interface {
	FindAll(ctx context.Context, query shared.ListQuery) ([]LegalEntityType, error)
	Count(ctx context.Context, query shared.ListQuery) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// RelationRepository persists entity-company relations and answers the
// visibility questions the access policy needs.
type RelationRepository interface {
	shared.Repository[EntityCompanyRelation]

	// EntityIDsForCompany lists the legal entities visible to a company.
	EntityIDsForCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)

	// EntityIDsByType lists entities related with the given type;
	// companyID narrows the search when non-nil.
	EntityIDsByType(ctx context.Context, companyID *uuid.UUID, relationType string) ([]uuid.UUID, error)

	// CompanyIDsForEntity lists the companies an entity is related to.
	CompanyIDsForEntity(ctx context.Context, legalEntityID uuid.UUID) ([]uuid.UUID, error)

	// ExistsForEntityAndCompany reports whether the entity is visible to
	// the company.
	ExistsForEntityAndCompany(ctx context.Context, legalEntityID, companyID uuid.UUID) (bool, error)
}
