package refdata

import (
	"time"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
)

// =============================================================================
// City DTOs
// =============================================================================

// CreateCityRequest represents a request to create a city
type CreateCityRequest struct {
	Name       string  `json:"city_name" binding:"required,max=100"`
	Region     string  `json:"region" binding:"required,max=100"`
	Code       *string `json:"code" binding:"omitempty,max=50"`
	ExternalID *string `json:"external_id" binding:"omitempty,max=100"`
	Timezone   int     `json:"timezone"`
}

// UpdateCityRequest represents a partial update of a city
type UpdateCityRequest struct {
	Name       *string `json:"city_name" binding:"omitempty,max=100"`
	Region     *string `json:"region" binding:"omitempty,max=100"`
	Code       *string `json:"code" binding:"omitempty,max=50"`
	ExternalID *string `json:"external_id" binding:"omitempty,max=100"`
	Timezone   *int    `json:"timezone"`
}

// CityResponse represents a city in API responses
type CityResponse struct {
	ID         uuid.UUID `json:"city_id"`
	Name       string    `json:"city_name"`
	Region     string    `json:"region"`
	Code       *string   `json:"code"`
	ExternalID *string   `json:"external_id"`
	Timezone   int       `json:"timezone"`
}

// CityListFilter represents filter options for the city list
type CityListFilter struct {
	Name       string `form:"city_name"`
	Region     string `form:"region"`
	Code       string `form:"code"`
	ExternalID string `form:"external_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	SortBy     string `form:"sort_by"`
	Order      string `form:"order"`
}

// ToCityResponse converts a domain city to its response form
func ToCityResponse(city *refdata.City) CityResponse {
	return CityResponse{
		ID:         city.ID,
		Name:       city.Name,
		Region:     city.Region,
		Code:       city.Code,
		ExternalID: city.ExternalID,
		Timezone:   city.Timezone,
	}
}

// ToCityResponses converts a slice of cities
func ToCityResponses(cities []refdata.City) []CityResponse {
	responses := make([]CityResponse, len(cities))
	for i := range cities {
		responses[i] = ToCityResponse(&cities[i])
	}
	return responses
}

// =============================================================================
// Company-owned resource DTOs (warehouses, storages, cash registers)
// =============================================================================

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name        string     `json:"warehouse_name" binding:"required,min=3,max=100"`
	Description *string    `json:"description"`
	Address     string     `json:"address" binding:"required,max=255"`
	CityID      *uuid.UUID `json:"city_id"`
	CompanyID   *uuid.UUID `json:"company_id"`
}

// UpdateWarehouseRequest represents a partial update of a warehouse
type UpdateWarehouseRequest struct {
	Name        *string    `json:"warehouse_name" binding:"omitempty,min=3,max=100"`
	Description *string    `json:"description"`
	Address     *string    `json:"address" binding:"omitempty,max=255"`
	CityID      *uuid.UUID `json:"city_id"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID          uuid.UUID  `json:"warehouse_id"`
	Name        string     `json:"warehouse_name"`
	Description *string    `json:"description"`
	Address     string     `json:"address"`
	CityID      *uuid.UUID `json:"city_id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	ModifiedAt  time.Time  `json:"modified_at"`
	ModifiedBy  uuid.UUID  `json:"modified_by"`
}

// CreateStorageRequest represents a request to create a storage
type CreateStorageRequest struct {
	Name        string     `json:"storage_name" binding:"required,min=3,max=100"`
	Description *string    `json:"description"`
	CompanyID   *uuid.UUID `json:"company_id"`
}

// UpdateStorageRequest represents a partial update of a storage
type UpdateStorageRequest struct {
	Name        *string `json:"storage_name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description"`
}

// StorageResponse represents a storage in API responses
type StorageResponse struct {
	ID          uuid.UUID `json:"storage_id"`
	Name        string    `json:"storage_name"`
	Description *string   `json:"description"`
	CompanyID   uuid.UUID `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
	ModifiedAt  time.Time `json:"modified_at"`
	ModifiedBy  uuid.UUID `json:"modified_by"`
}

// CreateCashRegisterRequest represents a request to create a cash register
type CreateCashRegisterRequest struct {
	Name        string     `json:"cash_register_name" binding:"required,min=3,max=100"`
	Description *string    `json:"description"`
	CompanyID   *uuid.UUID `json:"company_id"`
}

// UpdateCashRegisterRequest represents a partial update of a cash register
type UpdateCashRegisterRequest struct {
	Name        *string `json:"cash_register_name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description"`
}

// CashRegisterResponse represents a cash register in API responses
type CashRegisterResponse struct {
	ID          uuid.UUID `json:"cash_register_id"`
	Name        string    `json:"cash_register_name"`
	Description *string   `json:"description"`
	CompanyID   uuid.UUID `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
	ModifiedAt  time.Time `json:"modified_at"`
	ModifiedBy  uuid.UUID `json:"modified_by"`
}

// WarehouseListFilter represents filter options for the warehouse
// list. Name filters bind the resource-prefixed query parameter each
// client already sends.
type WarehouseListFilter struct {
	Name        string     `form:"warehouse_name"`
	Description string     `form:"description"`
	CityID      *uuid.UUID `form:"city_id"`
	CompanyID   *uuid.UUID `form:"company_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	Order       string     `form:"order"`
}

// StorageListFilter represents filter options for the storage list
type StorageListFilter struct {
	Name        string     `form:"storage_name"`
	Description string     `form:"description"`
	CompanyID   *uuid.UUID `form:"company_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	Order       string     `form:"order"`
}

// CashRegisterListFilter represents filter options for the cash
// register list
type CashRegisterListFilter struct {
	Name        string     `form:"cash_register_name"`
	Description string     `form:"description"`
	CompanyID   *uuid.UUID `form:"company_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	Order       string     `form:"order"`
}

// ToWarehouseResponse converts a domain warehouse to its response form
func ToWarehouseResponse(warehouse *refdata.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:          warehouse.ID,
		Name:        warehouse.Name,
		Description: warehouse.Description,
		Address:     warehouse.Address,
		CityID:      warehouse.CityID,
		CompanyID:   warehouse.CompanyID,
		CreatedAt:   warehouse.CreatedAt,
		CreatedBy:   warehouse.CreatedBy,
		ModifiedAt:  warehouse.ModifiedAt,
		ModifiedBy:  warehouse.ModifiedBy,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []refdata.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = ToWarehouseResponse(&warehouses[i])
	}
	return responses
}

// ToStorageResponse converts a domain storage to its response form
func ToStorageResponse(storage *refdata.Storage) StorageResponse {
	return StorageResponse{
		ID:          storage.ID,
		Name:        storage.Name,
		Description: storage.Description,
		CompanyID:   storage.CompanyID,
		CreatedAt:   storage.CreatedAt,
		CreatedBy:   storage.CreatedBy,
		ModifiedAt:  storage.ModifiedAt,
		ModifiedBy:  storage.ModifiedBy,
	}
}

// ToStorageResponses converts a slice of storages
func ToStorageResponses(storages []refdata.Storage) []StorageResponse {
	responses := make([]StorageResponse, len(storages))
	for i := range storages {
		responses[i] = ToStorageResponse(&storages[i])
	}
	return responses
}

// ToCashRegisterResponse converts a domain cash register to its response form
func ToCashRegisterResponse(register *refdata.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		ID:          register.ID,
		Name:        register.Name,
		Description: register.Description,
		CompanyID:   register.CompanyID,
		CreatedAt:   register.CreatedAt,
		CreatedBy:   register.CreatedBy,
		ModifiedAt:  register.ModifiedAt,
		ModifiedBy:  register.ModifiedBy,
	}
}

// ToCashRegisterResponses converts a slice of cash registers
func ToCashRegisterResponses(registers []refdata.CashRegister) []CashRegisterResponse {
	responses := make([]CashRegisterResponse, len(registers))
	for i := range registers {
		responses[i] = ToCashRegisterResponse(&registers[i])
	}
	return responses
}

// =============================================================================
// Legal entity DTOs
// =============================================================================

// CreateLegalEntityRequest represents a request to register a legal
// entity directly, together with its initial company relation.
type CreateLegalEntityRequest struct {
	ShortName    string     `json:"short_name" binding:"required,max=255"`
	FullName     *string    `json:"full_name" binding:"omitempty,max=255"`
	INN          string     `json:"inn" binding:"required"`
	KPP          *string    `json:"kpp"`
	OGRN         string     `json:"ogrn" binding:"required,max=15"`
	VatRate      int        `json:"vat_rate"`
	Address      *string    `json:"address"`
	OPF          *string    `json:"opf" binding:"omitempty,max=255"`
	EntityTypeID *string    `json:"entity_type_id" binding:"omitempty,max=50"`
	Signer       *string    `json:"signer" binding:"omitempty,max=255"`
	RelationType string     `json:"relation_type" binding:"omitempty,max=10"`
	CompanyID    *uuid.UUID `json:"company_id"`
}

// AddByINNRequest represents a request to register an entity from the
// state registry by its taxpayer number.
type AddByINNRequest struct {
	INN          string     `json:"inn" binding:"required"`
	KPP          *string    `json:"kpp"`
	VatRate      int        `json:"vat_rate"`
	RelationType string     `json:"relation_type" binding:"omitempty,max=10"`
	CompanyID    *uuid.UUID `json:"company_id"`
}

// UpdateLegalEntityRequest represents a partial update of a legal entity
type UpdateLegalEntityRequest struct {
	ShortName    *string `json:"short_name" binding:"omitempty,max=255"`
	FullName     *string `json:"full_name" binding:"omitempty,max=255"`
	INN          *string `json:"inn"`
	KPP          *string `json:"kpp"`
	OGRN         *string `json:"ogrn" binding:"omitempty,max=15"`
	VatRate      *int    `json:"vat_rate"`
	Address      *string `json:"address"`
	OPF          *string `json:"opf" binding:"omitempty,max=255"`
	EntityTypeID *string `json:"entity_type_id" binding:"omitempty,max=50"`
	Signer       *string `json:"signer" binding:"omitempty,max=255"`
}

// LegalEntityResponse represents a legal entity in API responses
type LegalEntityResponse struct {
	ID           uuid.UUID `json:"legal_entity_id"`
	ShortName    string    `json:"short_name"`
	FullName     *string   `json:"full_name"`
	INN          string    `json:"inn"`
	KPP          *string   `json:"kpp"`
	OGRN         string    `json:"ogrn"`
	VatRate      int       `json:"vat_rate"`
	Address      *string   `json:"address"`
	OPF          *string   `json:"opf"`
	EntityTypeID *string   `json:"entity_type_id"`
	Signer       *string   `json:"signer"`
}

// LegalEntityRefResponse is the short id/name pair returned by the
// inn-kpp lookup.
type LegalEntityRefResponse struct {
	ID   uuid.UUID `json:"legal_entity_id"`
	Name string    `json:"legal_entity_name"`
}

// LegalEntityListFilter represents filter options for the entity list
type LegalEntityListFilter struct {
	ShortName    string     `form:"short_name"`
	INN          string     `form:"inn"`
	EntityTypeID string     `form:"entity_type_id"`
	CompanyID    *uuid.UUID `form:"company_id"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
	SortBy       string     `form:"sort_by"`
	Order        string     `form:"order"`
}

// ByIDsRequest carries the id list for the bulk fetch endpoint
type ByIDsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// ToLegalEntityResponse converts a domain entity to its response form
func ToLegalEntityResponse(entity *refdata.LegalEntity) LegalEntityResponse {
	return LegalEntityResponse{
		ID:           entity.ID,
		ShortName:    entity.ShortName,
		FullName:     entity.FullName,
		INN:          entity.INN,
		KPP:          entity.KPP,
		OGRN:         entity.OGRN,
		VatRate:      entity.VatRate,
		Address:      entity.Address,
		OPF:          entity.OPF,
		EntityTypeID: entity.EntityTypeID,
		Signer:       entity.Signer,
	}
}

// ToLegalEntityResponses converts a slice of entities
func ToLegalEntityResponses(entities []refdata.LegalEntity) []LegalEntityResponse {
	responses := make([]LegalEntityResponse, len(entities))
	for i := range entities {
		responses[i] = ToLegalEntityResponse(&entities[i])
	}
	return responses
}

// =============================================================================
// Entity type DTOs
// =============================================================================

// LegalEntityTypeResponse represents an entity type in API responses
type LegalEntityTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityTypeListFilter represents filter options for the type list
type EntityTypeListFilter struct {
	EntityName string `form:"entity_name"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	SortBy     string `form:"sort_by"`
	Order      string `form:"order"`
}

// ToLegalEntityTypeResponses converts a slice of entity types
func ToLegalEntityTypeResponses(types []refdata.LegalEntityType) []LegalEntityTypeResponse {
	responses := make([]LegalEntityTypeResponse, len(types))
	for i, t := range types {
		responses[i] = LegalEntityTypeResponse{ID: t.ID, Name: t.Name}
	}
	return responses
}

// =============================================================================
// Relation DTOs
// =============================================================================

// CreateRelationRequest represents a request to relate a legal entity
// to a company
type CreateRelationRequest struct {
	LegalEntityID uuid.UUID  `json:"legal_entity_id" binding:"required"`
	RelationType  string     `json:"relation_type" binding:"required,max=10"`
	Description   *string    `json:"description"`
	CompanyID     *uuid.UUID `json:"company_id"`
}

// UpdateRelationRequest represents a partial update of a relation
type UpdateRelationRequest struct {
	LegalEntityID *uuid.UUID `json:"legal_entity_id"`
	RelationType  *string    `json:"relation_type" binding:"omitempty,max=10"`
	Description   *string    `json:"description"`
}

// RelationResponse represents a relation in API responses
type RelationResponse struct {
	ID            uuid.UUID `json:"relation_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	LegalEntityID uuid.UUID `json:"legal_entity_id"`
	RelationType  string    `json:"relation_type"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// RelationListFilter represents filter options for the relation list
type RelationListFilter struct {
	RelationType  string     `form:"relation_type"`
	Description   string     `form:"description"`
	LegalEntityID *uuid.UUID `form:"legal_entity_id"`
	CompanyID     *uuid.UUID `form:"company_id"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	SortBy        string     `form:"sort_by"`
	Order         string     `form:"order"`
}

// ToRelationResponse converts a domain relation to its response form
func ToRelationResponse(relation *refdata.EntityCompanyRelation) RelationResponse {
	return RelationResponse{
		ID:            relation.ID,
		CompanyID:     relation.CompanyID,
		LegalEntityID: relation.LegalEntityID,
		RelationType:  relation.RelationType,
		Description:   relation.Description,
		CreatedAt:     relation.CreatedAt,
	}
}

// ToRelationResponses converts a slice of relations
func ToRelationResponses(relations []refdata.EntityCompanyRelation) []RelationResponse {
	responses := make([]RelationResponse, len(relations))
	for i := range relations {
		responses[i] = ToRelationResponse(&relations[i])
	}
	return responses
}
