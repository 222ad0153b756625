package refdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// StorageService handles company-owned storages
type StorageService struct {
	storageRepo refdata.StorageRepository
}

// NewStorageService creates a new StorageService
func NewStorageService(storageRepo refdata.StorageRepository) *StorageService {
	return &StorageService{storageRepo: storageRepo}
}

// Create creates a new storage
func (s *StorageService) Create(ctx context.Context, caller shared.Caller, req CreateStorageRequest) (*StorageResponse, error) {
	companyID, err := resolveTargetCompany(caller, req.CompanyID)
	if err != nil {
		return nil, err
	}

	storage, err := refdata.NewStorage(caller.UserID, companyID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.storageRepo.Save(ctx, storage); err != nil {
		return nil, err
	}

	response := ToStorageResponse(storage)
	return &response, nil
}

// GetByID retrieves a storage
func (s *StorageService) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*StorageResponse, error) {
	storage, err := s.storageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, storage.CompanyID); err != nil {
		return nil, err
	}

	response := ToStorageResponse(storage)
	return &response, nil
}

// List retrieves storages visible to the caller
func (s *StorageService) List(ctx context.Context, caller shared.Caller, filter StorageListFilter) ([]StorageResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.CompanyOwnedSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("name", filter.Name)
	query = query.WithContains("description", filter.Description)
	query = refdata.ApplyCompanyScope(caller, query, filter.CompanyID)

	storages, err := s.storageRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.storageRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToStorageResponses(storages), total, nil
}

// Update applies a partial update to a storage
func (s *StorageService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateStorageRequest) (*StorageResponse, error) {
	storage, err := s.storageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, storage.CompanyID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := storage.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		storage.Description = req.Description
	}
	storage.Touch(caller.UserID)

	if err := s.storageRepo.Save(ctx, storage); err != nil {
		return nil, err
	}

	response := ToStorageResponse(storage)
	return &response, nil
}

// Delete removes a storage
func (s *StorageService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	storage, err := s.storageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, storage.CompanyID); err != nil {
		return err
	}

	return s.storageRepo.Delete(ctx, id)
}
