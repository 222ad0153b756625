package refdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/infrastructure/registry"
)

// StateRegistry looks up legal entities in the state registry
type StateRegistry interface {
	Lookup(ctx context.Context, inn string) (*registry.EntityCard, error)
}

// Notifier delivers operational alerts. Failures are logged, never
// propagated to the caller.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// LegalEntityService handles legal entities and their registry-backed
// registration. Entities are shared rows; visibility follows the
// company relations, so most operations consult the relation
// repository before touching the entity itself.
type LegalEntityService struct {
	entityRepo   refdata.LegalEntityRepository
	relationRepo refdata.RelationRepository
	typeRepo     refdata.LegalEntityTypeRepository
	registry     StateRegistry
	notifier     Notifier
}

// NewLegalEntityService creates a new LegalEntityService. registry and
// notifier may be nil; add-by-inn then reports the registry as
// unavailable.
func NewLegalEntityService(
	entityRepo refdata.LegalEntityRepository,
	relationRepo refdata.RelationRepository,
	typeRepo refdata.LegalEntityTypeRepository,
	stateRegistry StateRegistry,
	notifier Notifier,
) *LegalEntityService {
	return &LegalEntityService{
		entityRepo:   entityRepo,
		relationRepo: relationRepo,
		typeRepo:     typeRepo,
		registry:     stateRegistry,
		notifier:     notifier,
	}
}

// Create registers a legal entity directly and relates it to the
// caller's company. A superadmin without a target company creates an
// unrelated (globally invisible to regular users) entity.
func (s *LegalEntityService) Create(ctx context.Context, caller shared.Caller, req CreateLegalEntityRequest) (*LegalEntityResponse, error) {
	if req.EntityTypeID != nil {
		exists, err := s.typeRepo.Exists(ctx, *req.EntityTypeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewValidationError("unknown entity_type_id")
		}
	}

	entity, err := refdata.NewLegalEntity(refdata.NewLegalEntityInput{
		ShortName:    req.ShortName,
		FullName:     req.FullName,
		INN:          req.INN,
		KPP:          req.KPP,
		OGRN:         req.OGRN,
		VatRate:      req.VatRate,
		Address:      req.Address,
		OPF:          req.OPF,
		EntityTypeID: req.EntityTypeID,
		Signer:       req.Signer,
	})
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, entity.INN, entity.KPP, entity.OGRN); err != nil {
		return nil, err
	}

	if err := s.saveWithInitialRelation(ctx, caller, entity, req.CompanyID, req.RelationType); err != nil {
		return nil, err
	}

	response := ToLegalEntityResponse(entity)
	return &response, nil
}

// AddByINN registers an entity from the state registry. When a KPP is
// given it must belong to the head entity or one of its branches;
// anything else reads as the entity not existing.
func (s *LegalEntityService) AddByINN(ctx context.Context, caller shared.Caller, req AddByINNRequest) (*LegalEntityResponse, error) {
	if err := refdata.ValidateINN(req.INN); err != nil {
		return nil, err
	}
	if req.KPP != nil {
		if err := refdata.ValidateKPP(*req.KPP); err != nil {
			return nil, err
		}
	}
	if s.registry == nil {
		return nil, fmt.Errorf("%w: registry not configured", registry.ErrRegistryUnavailable)
	}

	card, err := s.registry.Lookup(ctx, req.INN)
	if err != nil {
		if errors.Is(err, registry.ErrEntityNotFound) {
			return nil, shared.NewNotFoundError("legal entity not found in state registry")
		}
		s.alert(ctx, fmt.Sprintf("state registry lookup failed for inn %s: %v", req.INN, err))
		return nil, err
	}

	kpp := card.KPP
	address := card.Address.Format()
	shortName := card.ShortName
	if req.KPP != nil {
		if !card.MatchesKPP(*req.KPP) {
			return nil, shared.NewNotFoundError("no entity or branch with this kpp")
		}
		kpp = req.KPP
		if branch := card.BranchByKPP(*req.KPP); branch != nil {
			if branch.Name != "" {
				shortName = branch.Name
			}
			if formatted := branch.Address.Format(); formatted != "" {
				address = formatted
			}
		}
	}
	if shortName == "" {
		shortName = card.FullName
	}

	input := refdata.NewLegalEntityInput{
		ShortName: shortName,
		INN:       card.INN,
		KPP:       kpp,
		VatRate:   req.VatRate,
		OPF:       card.OPF,
		Signer:    card.ManagementName,
	}
	if card.OGRN != nil {
		input.OGRN = *card.OGRN
	}
	if card.FullName != "" {
		input.FullName = &card.FullName
	}
	if address != "" {
		input.Address = &address
	}

	entity, err := refdata.NewLegalEntity(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, entity.INN, entity.KPP, entity.OGRN); err != nil {
		return nil, err
	}

	if err := s.saveWithInitialRelation(ctx, caller, entity, req.CompanyID, req.RelationType); err != nil {
		return nil, err
	}

	response := ToLegalEntityResponse(entity)
	return &response, nil
}

// GetByID retrieves a legal entity visible to the caller
func (s *LegalEntityService) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*LegalEntityResponse, error) {
	entity, err := s.entityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEntity(ctx, caller, id); err != nil {
		return nil, err
	}

	response := ToLegalEntityResponse(entity)
	return &response, nil
}

// List retrieves legal entities visible to the caller
func (s *LegalEntityService) List(ctx context.Context, caller shared.Caller, filter LegalEntityListFilter) ([]LegalEntityResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.LegalEntitySortFields, "short_name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("short_name", filter.ShortName)
	query = query.WithContains("inn", filter.INN)
	if filter.EntityTypeID != "" {
		query = query.WithEquals("entity_type_id", filter.EntityTypeID)
	}

	scope := filter.CompanyID
	if !caller.IsSuperadmin {
		scope = &caller.CompanyID
	}
	if scope != nil {
		ids, err := s.relationRepo.EntityIDsForCompany(ctx, *scope)
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return []LegalEntityResponse{}, 0, nil
		}
		query = query.WithEquals("id", ids)
	}

	entities, err := s.entityRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.entityRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToLegalEntityResponses(entities), total, nil
}

// GetBuyers lists entities related as buyers
func (s *LegalEntityService) GetBuyers(ctx context.Context, caller shared.Caller, companyID *uuid.UUID) ([]LegalEntityResponse, error) {
	return s.getByRelationType(ctx, caller, companyID, refdata.RelationTypeBuyer)
}

// GetSellers lists entities related as sellers
func (s *LegalEntityService) GetSellers(ctx context.Context, caller shared.Caller, companyID *uuid.UUID) ([]LegalEntityResponse, error) {
	return s.getByRelationType(ctx, caller, companyID, refdata.RelationTypeSeller)
}

func (s *LegalEntityService) getByRelationType(ctx context.Context, caller shared.Caller, companyID *uuid.UUID, relationType string) ([]LegalEntityResponse, error) {
	scope := companyID
	if !caller.IsSuperadmin {
		scope = &caller.CompanyID
	}

	ids, err := s.relationRepo.EntityIDsByType(ctx, scope, relationType)
	if err != nil {
		return nil, err
	}
	entities, err := s.entityRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ToLegalEntityResponses(entities), nil
}

// GetByCompany lists entities related to the given company
func (s *LegalEntityService) GetByCompany(ctx context.Context, caller shared.Caller, companyID uuid.UUID) ([]LegalEntityResponse, error) {
	if err := refdata.AuthorizeCompanyAccess(caller, companyID); err != nil {
		return nil, err
	}

	ids, err := s.relationRepo.EntityIDsForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	entities, err := s.entityRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ToLegalEntityResponses(entities), nil
}

// FindByINNKPP resolves an entity reference from its registration
// numbers.
func (s *LegalEntityService) FindByINNKPP(ctx context.Context, inn string, kpp *string) (*LegalEntityRefResponse, error) {
	if err := refdata.ValidateINN(inn); err != nil {
		return nil, err
	}
	if kpp != nil {
		if err := refdata.ValidateKPP(*kpp); err != nil {
			return nil, err
		}
	}

	entity, err := s.entityRepo.FindByINN(ctx, inn, kpp)
	if err != nil {
		return nil, err
	}

	return &LegalEntityRefResponse{ID: entity.ID, Name: entity.ShortName}, nil
}

// GetByIDs fetches entities in bulk, filtered down to what the caller
// may see.
func (s *LegalEntityService) GetByIDs(ctx context.Context, caller shared.Caller, ids []uuid.UUID) ([]LegalEntityResponse, error) {
	entities, err := s.entityRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if !caller.IsSuperadmin {
		visibleIDs, err := s.relationRepo.EntityIDsForCompany(ctx, caller.CompanyID)
		if err != nil {
			return nil, err
		}
		visible := make(map[uuid.UUID]bool, len(visibleIDs))
		for _, id := range visibleIDs {
			visible[id] = true
		}

		filtered := entities[:0]
		for _, entity := range entities {
			if visible[entity.ID] {
				filtered = append(filtered, entity)
			}
		}
		entities = filtered
	}

	return ToLegalEntityResponses(entities), nil
}

// Update applies a partial update to a legal entity
func (s *LegalEntityService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateLegalEntityRequest) (*LegalEntityResponse, error) {
	entity, err := s.entityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEntity(ctx, caller, id); err != nil {
		return nil, err
	}

	inn := entity.INN
	kpp := entity.KPP
	if req.INN != nil {
		if err := refdata.ValidateINN(*req.INN); err != nil {
			return nil, err
		}
		inn = *req.INN
	}
	kppChanged := false
	if req.KPP != nil {
		if err := refdata.ValidateKPP(*req.KPP); err != nil {
			return nil, err
		}
		kppChanged = entity.KPP == nil || *req.KPP != *entity.KPP
		kpp = req.KPP
	}
	// Re-sending the entity's current numbers is not a conflict; the
	// duplicate check runs only when the (inn, kpp) pair actually
	// changes, so it can never match the row being updated.
	if inn != entity.INN || kppChanged {
		exists, err := s.entityRepo.ExistsByINN(ctx, inn, kpp)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("legal entity with this inn and kpp already exists")
		}
	}
	if req.OGRN != nil && *req.OGRN != entity.OGRN {
		if err := refdata.ValidateOGRN(*req.OGRN); err != nil {
			return nil, err
		}
		exists, err := s.entityRepo.ExistsByOGRN(ctx, *req.OGRN)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("legal entity with this ogrn already exists")
		}
	}
	if req.EntityTypeID != nil {
		exists, err := s.typeRepo.Exists(ctx, *req.EntityTypeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewValidationError("unknown entity_type_id")
		}
		entity.EntityTypeID = req.EntityTypeID
	}

	entity.INN = inn
	entity.KPP = kpp
	if req.ShortName != nil {
		if *req.ShortName == "" {
			return nil, shared.NewValidationError("short_name cannot be empty")
		}
		entity.ShortName = *req.ShortName
	}
	if req.FullName != nil {
		entity.FullName = req.FullName
	}
	if req.OGRN != nil {
		entity.OGRN = *req.OGRN
	}
	if req.VatRate != nil {
		if *req.VatRate < 0 {
			return nil, shared.NewValidationError("vat_rate cannot be negative")
		}
		entity.VatRate = *req.VatRate
	}
	if req.Address != nil {
		entity.Address = req.Address
	}
	if req.OPF != nil {
		entity.OPF = req.OPF
	}
	if req.Signer != nil {
		entity.Signer = req.Signer
	}

	if err := s.entityRepo.Save(ctx, entity); err != nil {
		return nil, err
	}

	response := ToLegalEntityResponse(entity)
	return &response, nil
}

// Delete removes a legal entity together with its relations
func (s *LegalEntityService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	if _, err := s.entityRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.authorizeEntity(ctx, caller, id); err != nil {
		return err
	}

	return s.entityRepo.Delete(ctx, id)
}

// authorizeEntity checks visibility through the company relations
func (s *LegalEntityService) authorizeEntity(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	if caller.IsSuperadmin {
		return nil
	}
	companyIDs, err := s.relationRepo.CompanyIDsForEntity(ctx, id)
	if err != nil {
		return err
	}
	return refdata.AuthorizeRelatedEntity(caller, companyIDs)
}

// checkUniqueness rejects duplicate registration numbers before insert
func (s *LegalEntityService) checkUniqueness(ctx context.Context, inn string, kpp *string, ogrn string) error {
	exists, err := s.entityRepo.ExistsByINN(ctx, inn, kpp)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("legal entity with this inn and kpp already exists")
	}
	exists, err = s.entityRepo.ExistsByOGRN(ctx, ogrn)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("legal entity with this ogrn already exists")
	}
	return nil
}

// saveWithInitialRelation persists the entity, relating it to the
// resolved target company when there is one.
func (s *LegalEntityService) saveWithInitialRelation(ctx context.Context, caller shared.Caller, entity *refdata.LegalEntity, requestedCompany *uuid.UUID, relationType string) error {
	if relationType == "" {
		relationType = refdata.RelationTypeBuyer
	}

	companyID := caller.CompanyID
	if requestedCompany != nil {
		if err := refdata.AuthorizeCompanyAccess(caller, *requestedCompany); err != nil {
			return err
		}
		companyID = *requestedCompany
	}

	if companyID == uuid.Nil {
		// Superadmin with no target company: entity only, no relation.
		return s.entityRepo.Save(ctx, entity)
	}

	relation, err := refdata.NewEntityCompanyRelation(companyID, entity.ID, relationType, nil)
	if err != nil {
		return err
	}
	return s.entityRepo.SaveWithRelation(ctx, entity, relation)
}

// alert sends an operational alert, best effort
func (s *LegalEntityService) alert(ctx context.Context, text string) {
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, text)
	}
}
