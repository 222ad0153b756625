package refdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// CashRegisterService handles company-owned cash registers
type CashRegisterService struct {
	registerRepo refdata.CashRegisterRepository
}

// NewCashRegisterService creates a new CashRegisterService
func NewCashRegisterService(registerRepo refdata.CashRegisterRepository) *CashRegisterService {
	return &CashRegisterService{registerRepo: registerRepo}
}

// Create creates a new cash register
func (s *CashRegisterService) Create(ctx context.Context, caller shared.Caller, req CreateCashRegisterRequest) (*CashRegisterResponse, error) {
	companyID, err := resolveTargetCompany(caller, req.CompanyID)
	if err != nil {
		return nil, err
	}

	register, err := refdata.NewCashRegister(caller.UserID, companyID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.registerRepo.Save(ctx, register); err != nil {
		return nil, err
	}

	response := ToCashRegisterResponse(register)
	return &response, nil
}

// GetByID retrieves a cash register
func (s *CashRegisterService) GetByID(ctx context.Context, caller shared.Caller, id uuid.UUID) (*CashRegisterResponse, error) {
	register, err := s.registerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, register.CompanyID); err != nil {
		return nil, err
	}

	response := ToCashRegisterResponse(register)
	return &response, nil
}

// List retrieves cash registers visible to the caller
func (s *CashRegisterService) List(ctx context.Context, caller shared.Caller, filter CashRegisterListFilter) ([]CashRegisterResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.CompanyOwnedSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("name", filter.Name)
	query = query.WithContains("description", filter.Description)
	query = refdata.ApplyCompanyScope(caller, query, filter.CompanyID)

	registers, err := s.registerRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.registerRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToCashRegisterResponses(registers), total, nil
}

// Update applies a partial update to a cash register
func (s *CashRegisterService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateCashRegisterRequest) (*CashRegisterResponse, error) {
	register, err := s.registerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, register.CompanyID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := register.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		register.Description = req.Description
	}
	register.Touch(caller.UserID)

	if err := s.registerRepo.Save(ctx, register); err != nil {
		return nil, err
	}

	response := ToCashRegisterResponse(register)
	return &response, nil
}

// Delete removes a cash register
func (s *CashRegisterService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	register, err := s.registerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := refdata.AuthorizeCompanyAccess(caller, register.CompanyID); err != nil {
		return err
	}

	return s.registerRepo.Delete(ctx, id)
}
