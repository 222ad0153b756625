package refdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// RelationService handles entity-company relations
type RelationService struct {
	relationRepo refdata.RelationRepository
	entityRepo   refdata.LegalEntityRepository
}

// NewRelationService creates a new RelationService
func NewRelationService(relationRepo refdata.RelationRepository, entityRepo refdata.LegalEntityRepository) *RelationService {
	return &RelationService{relationRepo: relationRepo, entityRepo: entityRepo}
}

// Create relates a legal entity to the caller's company, or to an
// explicitly named one for superadmins. The entity must exist.
func (s *RelationService) Create(ctx context.Context, caller shared.Caller, req CreateRelationRequest) (*RelationResponse, error) {
	companyID, err := resolveTargetCompany(caller, req.CompanyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.entityRepo.FindByID(ctx, req.LegalEntityID); err != nil {
		return nil, err
	}

	exists, err := s.relationRepo.ExistsForEntityAndCompany(ctx, req.LegalEntityID, companyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("entity is already related to this company")
	}

	relation, err := refdata.NewEntityCompanyRelation(companyID, req.LegalEntityID, req.RelationType, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.relationRepo.Save(ctx, relation); err != nil {
		return nil, err
	}

	response := ToRelationResponse(relation)
	return &response, nil
}

// GetByID retrieves a relation
func (s *RelationService) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*RelationResponse, error) {
	relation, err := s.relationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, relation.CompanyID); err != nil {
		return nil, err
	}

	response := ToRelationResponse(relation)
	return &response, nil
}

// List retrieves relations visible to the caller
func (s *RelationService) List(ctx context.Context, caller shared.Caller, filter RelationListFilter) ([]RelationResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.RelationSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("relation_type", filter.RelationType)
	query = query.WithContains("description", filter.Description)
	if filter.LegalEntityID != nil {
		query = query.WithEquals("legal_entity_id", *filter.LegalEntityID)
	}
	query = refdata.ApplyCompanyScope(caller, query, filter.CompanyID)

	relations, err := s.relationRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.relationRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToRelationResponses(relations), total, nil
}

// Update applies a partial update to a relation
func (s *RelationService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateRelationRequest) (*RelationResponse, error) {
	relation, err := s.relationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, relation.CompanyID); err != nil {
		return nil, err
	}

	if req.LegalEntityID != nil && *req.LegalEntityID != relation.LegalEntityID {
		if _, err := s.entityRepo.FindByID(ctx, *req.LegalEntityID); err != nil {
			return nil, err
		}
		relation.LegalEntityID = *req.LegalEntityID
	}
	if req.RelationType != nil {
		if err := relation.ChangeType(*req.RelationType); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		relation.Description = req.Description
	}

	if err := s.relationRepo.Save(ctx, relation); err != nil {
		return nil, err
	}

	response := ToRelationResponse(relation)
	return &response, nil
}

// Delete removes a relation. The entity itself stays.
func (s *RelationService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	relation, err := s.relationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, relation.CompanyID); err != nil {
		return err
	}

	return s.relationRepo.Delete(ctx, id)
}
