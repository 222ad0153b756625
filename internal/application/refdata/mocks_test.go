package refdata

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/infrastructure/registry"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCityRepository is a mock implementation of CityRepository
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.City), args.Error(1)
}

func (m *MockCityRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.City, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]refdata.City), args.Error(1)
}

func (m *MockCityRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCityRepository) Save(ctx context.Context, city *refdata.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.Warehouse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]refdata.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *refdata.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLegalEntityRepository is a mock implementation of LegalEntityRepository
type MockLegalEntityRepository struct {
	mock.Mock
}

func (m *MockLegalEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.LegalEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.LegalEntity), args.Error(1)
}

func (m *MockLegalEntityRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.LegalEntity, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]refdata.LegalEntity), args.Error(1)
}

func (m *MockLegalEntityRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLegalEntityRepository) Save(ctx context.Context, entity *refdata.LegalEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockLegalEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLegalEntityRepository) FindByINN(ctx context.Context, inn string, kpp *string) (*refdata.LegalEntity, error) {
	args := m.Called(ctx, inn, kpp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.LegalEntity), args.Error(1)
}

func (m *MockLegalEntityRepository) ExistsByINN(ctx context.Context, inn string, kpp *string) (bool, error) {
	args := m.Called(ctx, inn, kpp)
	return args.Bool(0), args.Error(1)
}

func (m *MockLegalEntityRepository) ExistsByOGRN(ctx context.Context, ogrn string) (bool, error) {
	args := m.Called(ctx, ogrn)
	return args.Bool(0), args.Error(1)
}

func (m *MockLegalEntityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]refdata.LegalEntity, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]refdata.LegalEntity), args.Error(1)
}

func (m *MockLegalEntityRepository) SaveWithRelation(ctx context.Context, entity *refdata.LegalEntity, relation *refdata.EntityCompanyRelation) error {
	args := m.Called(ctx, entity, relation)
	return args.Error(0)
}

// MockLegalEntityTypeRepository is a mock implementation of LegalEntityTypeRepository
type MockLegalEntityTypeRepository struct {
	mock.Mock
}

func (m *MockLegalEntityTypeRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.LegalEntityType, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]refdata.LegalEntityType), args.Error(1)
}

func (m *MockLegalEntityTypeRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLegalEntityTypeRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockRelationRepository is a mock implementation of RelationRepository
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.EntityCompanyRelation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refdata.EntityCompanyRelation), args.Error(1)
}

func (m *MockRelationRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.EntityCompanyRelation, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]refdata.EntityCompanyRelation), args.Error(1)
}

func (m *MockRelationRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRelationRepository) Save(ctx context.Context, relation *refdata.EntityCompanyRelation) error {
	args := m.Called(ctx, relation)
	return args.Error(0)
}

func (m *MockRelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRelationRepository) EntityIDsForCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRelationRepository) EntityIDsByType(ctx context.Context, companyID *uuid.UUID, relationType string) ([]uuid.UUID, error) {
	args := m.Called(ctx, companyID, relationType)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRelationRepository) CompanyIDsForEntity(ctx context.Context, legalEntityID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, legalEntityID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRelationRepository) ExistsForEntityAndCompany(ctx context.Context, legalEntityID, companyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, legalEntityID, companyID)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Mock Collaborators
// =============================================================================

// MockStateRegistry is a mock implementation of StateRegistry
type MockStateRegistry struct {
	mock.Mock
}

func (m *MockStateRegistry) Lookup(ctx context.Context, inn string) (*registry.EntityCard, error) {
	args := m.Called(ctx, inn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.EntityCard), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

// fakeListCache is an in-memory ListCache for caching behavior tests
type fakeListCache struct {
	entries     map[string][]byte
	invalidated []string
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{entries: make(map[string][]byte)}
}

func (c *fakeListCache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *fakeListCache) Set(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.entries[key] = raw
}

func (c *fakeListCache) InvalidatePrefix(_ context.Context, prefix string) {
	c.invalidated = append(c.invalidated, prefix)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// =============================================================================
// Test Helper Functions
// =============================================================================

func testCompanyID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func otherCompanyID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func regularCaller() shared.Caller {
	return shared.Caller{
		UserID:    uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"),
		CompanyID: testCompanyID(),
	}
}

func superadminCaller() shared.Caller {
	return shared.Caller{
		UserID:       uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"),
		IsSuperadmin: true,
	}
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
