package refdata

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func createTestWarehouse(companyID uuid.UUID) *refdata.Warehouse {
	warehouse, _ := refdata.NewWarehouse(uuid.New(), companyID, "Central Warehouse", "Vavilova 19", nil, nil)
	return warehouse
}

func newWarehouseService(warehouseRepo *MockWarehouseRepository) (*WarehouseService, *MockCityRepository) {
	cityRepo := new(MockCityRepository)
	return NewWarehouseService(warehouseRepo, cityRepo), cityRepo
}

func TestWarehouseService_Create_UsesCallerCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	mockRepo.On("Save", ctx, mock.MatchedBy(func(w *refdata.Warehouse) bool {
		return w.CompanyID == caller.CompanyID && w.CreatedBy == caller.UserID
	})).Return(nil)

	response, err := service.Create(ctx, caller, CreateWarehouseRequest{
		Name:    "Central Warehouse",
		Address: "Vavilova 19",
	})

	assert.NoError(t, err)
	assert.Equal(t, caller.CompanyID, response.CompanyID)
	assert.Equal(t, "Vavilova 19", response.Address)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_Create_StoresCityReference(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, cityRepo := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	cityID := uuid.New()
	cityRepo.On("FindByID", ctx, cityID).Return(&refdata.City{}, nil)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(w *refdata.Warehouse) bool {
		return w.CityID != nil && *w.CityID == cityID
	})).Return(nil)

	response, err := service.Create(ctx, caller, CreateWarehouseRequest{
		Name:    "Central Warehouse",
		Address: "Vavilova 19",
		CityID:  &cityID,
	})

	assert.NoError(t, err)
	assert.Equal(t, &cityID, response.CityID)
	cityRepo.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_Create_UnknownCityRejected(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, cityRepo := newWarehouseService(mockRepo)

	ctx := context.Background()
	cityID := uuid.New()
	cityRepo.On("FindByID", ctx, cityID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, regularCaller(), CreateWarehouseRequest{
		Name:    "Central Warehouse",
		Address: "Vavilova 19",
		CityID:  &cityID,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWarehouseService_Create_RegularUserCannotTargetOtherCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	other := otherCompanyID()
	_, err := service.Create(context.Background(), regularCaller(), CreateWarehouseRequest{
		Name:      "Central Warehouse",
		Address:   "Vavilova 19",
		CompanyID: &other,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWarehouseService_Create_SuperadminMustNameCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	_, err := service.Create(context.Background(), superadminCaller(), CreateWarehouseRequest{
		Name:    "Central Warehouse",
		Address: "Vavilova 19",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestWarehouseService_Create_SuperadminTargetsNamedCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	target := otherCompanyID()
	mockRepo.On("Save", ctx, mock.MatchedBy(func(w *refdata.Warehouse) bool {
		return w.CompanyID == target
	})).Return(nil)

	response, err := service.Create(ctx, superadminCaller(), CreateWarehouseRequest{
		Name:      "Central Warehouse",
		Address:   "Vavilova 19",
		CompanyID: &target,
	})

	assert.NoError(t, err)
	assert.Equal(t, target, response.CompanyID)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_Create_RejectsShortName(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	_, err := service.Create(context.Background(), regularCaller(), CreateWarehouseRequest{
		Name:    "ab",
		Address: "Vavilova 19",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestWarehouseService_GetByID_NotFoundBeforeForbidden(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	warehouseID := uuid.New()
	mockRepo.On("FindByID", ctx, warehouseID).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(ctx, regularCaller(), warehouseID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_GetByID_ForbiddenForOtherCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	warehouse := createTestWarehouse(otherCompanyID())
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)

	_, err := service.GetByID(ctx, regularCaller(), warehouse.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_GetByID_SuperadminSeesAnyCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	warehouse := createTestWarehouse(otherCompanyID())
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)

	response, err := service.GetByID(ctx, superadminCaller(), warehouse.ID)

	assert.NoError(t, err)
	assert.Equal(t, warehouse.ID, response.ID)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_List_ForcesOwnCompanyScope(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	other := otherCompanyID()

	scopedToOwnCompany := mock.MatchedBy(func(q shared.ListQuery) bool {
		return q.Equals["company_id"] == caller.CompanyID
	})
	mockRepo.On("FindAll", ctx, scopedToOwnCompany).Return([]refdata.Warehouse{}, nil)
	mockRepo.On("Count", ctx, scopedToOwnCompany).Return(int64(0), nil)

	// Asking for another company is ignored, not rejected
	_, _, err := service.List(ctx, caller, WarehouseListFilter{CompanyID: &other})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_List_SuperadminNarrowsByCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	target := otherCompanyID()

	scopedToTarget := mock.MatchedBy(func(q shared.ListQuery) bool {
		return q.Equals["company_id"] == target
	})
	mockRepo.On("FindAll", ctx, scopedToTarget).Return([]refdata.Warehouse{}, nil)
	mockRepo.On("Count", ctx, scopedToTarget).Return(int64(0), nil)

	_, _, err := service.List(ctx, superadminCaller(), WarehouseListFilter{CompanyID: &target})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_List_SuperadminUnscopedByDefault(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	unscoped := mock.MatchedBy(func(q shared.ListQuery) bool {
		_, scoped := q.Equals["company_id"]
		return !scoped
	})
	mockRepo.On("FindAll", ctx, unscoped).Return([]refdata.Warehouse{}, nil)
	mockRepo.On("Count", ctx, unscoped).Return(int64(0), nil)

	_, _, err := service.List(ctx, superadminCaller(), WarehouseListFilter{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_List_NarrowsByCity(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	cityID := uuid.New()

	scopedToCity := mock.MatchedBy(func(q shared.ListQuery) bool {
		return q.Equals["city_id"] == cityID
	})
	mockRepo.On("FindAll", ctx, scopedToCity).Return([]refdata.Warehouse{}, nil)
	mockRepo.On("Count", ctx, scopedToCity).Return(int64(0), nil)

	_, _, err := service.List(ctx, superadminCaller(), WarehouseListFilter{CityID: &cityID})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_Update_RenameAndTouch(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	warehouse := createTestWarehouse(caller.CompanyID)
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)
	mockRepo.On("Save", ctx, warehouse).Return(nil)

	response, err := service.Update(ctx, caller, warehouse.ID, UpdateWarehouseRequest{
		Name: strPtr("North Warehouse"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "North Warehouse", response.Name)
	assert.Equal(t, caller.UserID, warehouse.ModifiedBy)
	mockRepo.AssertExpectations(t)
}

func TestWarehouseService_Update_RevalidatesSuppliedCity(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, cityRepo := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	warehouse := createTestWarehouse(caller.CompanyID)
	cityID := uuid.New()
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)
	cityRepo.On("FindByID", ctx, cityID).Return(nil, shared.ErrNotFound)

	_, err := service.Update(ctx, caller, warehouse.ID, UpdateWarehouseRequest{
		CityID: &cityID,
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWarehouseService_Update_MovesToExistingCity(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, cityRepo := newWarehouseService(mockRepo)

	ctx := context.Background()
	caller := regularCaller()
	warehouse := createTestWarehouse(caller.CompanyID)
	cityID := uuid.New()
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)
	cityRepo.On("FindByID", ctx, cityID).Return(&refdata.City{}, nil)
	mockRepo.On("Save", ctx, warehouse).Return(nil)

	response, err := service.Update(ctx, caller, warehouse.ID, UpdateWarehouseRequest{
		Address: strPtr("Tverskaya 7"),
		CityID:  &cityID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Tverskaya 7", response.Address)
	assert.Equal(t, &cityID, response.CityID)
	mockRepo.AssertExpectations(t)
	cityRepo.AssertExpectations(t)
}

func TestWarehouseService_Delete_ForbiddenForOtherCompany(t *testing.T) {
	mockRepo := new(MockWarehouseRepository)
	service, _ := newWarehouseService(mockRepo)

	ctx := context.Background()
	warehouse := createTestWarehouse(otherCompanyID())
	mockRepo.On("FindByID", ctx, warehouse.ID).Return(warehouse, nil)

	err := service.Delete(ctx, regularCaller(), warehouse.ID)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
