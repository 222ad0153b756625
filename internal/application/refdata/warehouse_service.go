package refdata

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// WarehouseService handles company-owned warehouses. It keeps a city
// repository to check that a supplied city_id names a directory row.
type WarehouseService struct {
	warehouseRepo refdata.WarehouseRepository
	cityRepo      refdata.CityRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo refdata.WarehouseRepository, cityRepo refdata.CityRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo, cityRepo: cityRepo}
}

// Create creates a new warehouse in the caller's company, or in an
// explicitly named one for superadmins.
func (s *WarehouseService) Create(ctx context.Context, caller shared.Caller, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	companyID, err := resolveTargetCompany(caller, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCityExists(ctx, req.CityID); err != nil {
		return nil, err
	}

	warehouse, err := refdata.NewWarehouse(caller.UserID, companyID, req.Name, req.Address, req.Description, req.CityID)
	if err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse. The row is loaded before ownership is
// checked so absence reads as NOT_FOUND, not FORBIDDEN.
func (s *WarehouseService) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, warehouse.CompanyID); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses visible to the caller
func (s *WarehouseService) List(ctx context.Context, caller shared.Caller, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.WarehouseSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("name", filter.Name)
	query = query.WithContains("description", filter.Description)
	if filter.CityID != nil {
		query = query.WithEquals("city_id", *filter.CityID)
	}
	query = refdata.ApplyCompanyScope(caller, query, filter.CompanyID)

	warehouses, err := s.warehouseRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToWarehouseResponses(warehouses), total, nil
}

// Update applies a partial update to a warehouse
func (s *WarehouseService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, warehouse.CompanyID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := warehouse.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		warehouse.Description = req.Description
	}
	if req.Address != nil {
		if err := warehouse.Relocate(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.CityID != nil {
		if err := s.ensureCityExists(ctx, req.CityID); err != nil {
			return nil, err
		}
		warehouse.CityID = req.CityID
	}
	warehouse.Touch(caller.UserID)

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// ensureCityExists rejects a city_id that names no directory row. A
// nil cityID passes; the field is optional.
func (s *WarehouseService) ensureCityExists(ctx context.Context, cityID *uuid.UUID) error {
	if cityID == nil {
		return nil
	}
	if _, err := s.cityRepo.FindByID(ctx, *cityID); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
			return shared.NewValidationError("unknown city_id")
		}
		return err
	}
	return nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, warehouse.CompanyID); err != nil {
		return err
	}

	return s.warehouseRepo.Delete(ctx, id)
}
