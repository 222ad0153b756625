package refdata

import (
	"context"

	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// EntityTypeService reads the legal entity type directory. Types are
// seeded by migration; the API only lists them.
type EntityTypeService struct {
	typeRepo refdata.LegalEntityTypeRepository
}

// NewEntityTypeService creates a new EntityTypeService
func NewEntityTypeService(typeRepo refdata.LegalEntityTypeRepository) *EntityTypeService {
	return &EntityTypeService{typeRepo: typeRepo}
}

// List retrieves entity types
func (s *EntityTypeService) List(ctx context.Context, filter EntityTypeListFilter) ([]LegalEntityTypeResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.LegalEntityTypeSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("name", filter.EntityName)

	types, err := s.typeRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.typeRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToLegalEntityTypeResponses(types), total, nil
}
