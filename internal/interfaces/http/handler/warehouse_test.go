package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	refdataapp "github.com/refdata/backend/internal/application/refdata"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWarehouseRepo is an in-memory WarehouseRepository that records
// the last list query so filter binding can be asserted end to end.
type stubWarehouseRepo struct {
	warehouses map[uuid.UUID]refdata.Warehouse
	lastQuery  shared.ListQuery
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{warehouses: make(map[uuid.UUID]refdata.Warehouse)}
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*refdata.Warehouse, error) {
	warehouse, ok := r.warehouses[id]
	if !ok {
		return nil, shared.NewNotFoundError("warehouse not found")
	}
	return &warehouse, nil
}

func (r *stubWarehouseRepo) FindAll(_ context.Context, query shared.ListQuery) ([]refdata.Warehouse, error) {
	r.lastQuery = query
	out := make([]refdata.Warehouse, 0, len(r.warehouses))
	for _, warehouse := range r.warehouses {
		out = append(out, warehouse)
	}
	return out, nil
}

func (r *stubWarehouseRepo) Count(_ context.Context, _ shared.ListQuery) (int64, error) {
	return int64(len(r.warehouses)), nil
}

func (r *stubWarehouseRepo) Save(_ context.Context, warehouse *refdata.Warehouse) error {
	r.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *stubWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.warehouses[id]; !ok {
		return shared.NewNotFoundError("warehouse not found")
	}
	delete(r.warehouses, id)
	return nil
}

func newWarehouseTestRouter(warehouseRepo *stubWarehouseRepo, cityRepo *stubCityRepo, caller shared.Caller) *gin.Engine {
	handler := NewWarehouseHandler(refdataapp.NewWarehouseService(warehouseRepo, cityRepo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CallerKey, caller)
	})
	router.POST("/api/warehouses/add", handler.Create)
	router.GET("/api/warehouses/all", handler.List)
	router.GET("/api/warehouses/:id", handler.GetByID)
	router.PATCH("/api/warehouses/:id", handler.Update)
	return router
}

func TestWarehouseHandler_Create(t *testing.T) {
	warehouseRepo := newStubWarehouseRepo()
	cityRepo := newStubCityRepo()
	cityID := seedCity(t, cityRepo, "Kazan", "Tatarstan")
	router := newWarehouseTestRouter(warehouseRepo, cityRepo, testRegularUser())

	w := doJSON(router, http.MethodPost, "/api/warehouses/add",
		`{"warehouse_name":"Main Warehouse","address":"Baumana 5","city_id":"`+cityID.String()+`"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	id, err := uuid.Parse(body["warehouse_id"])
	require.NoError(t, err)

	stored, ok := warehouseRepo.warehouses[id]
	require.True(t, ok)
	assert.Equal(t, "Main Warehouse", stored.Name)
	assert.Equal(t, "Baumana 5", stored.Address)
	require.NotNil(t, stored.CityID)
	assert.Equal(t, cityID, *stored.CityID)
}

func TestWarehouseHandler_Create_UnknownCityRejected(t *testing.T) {
	warehouseRepo := newStubWarehouseRepo()
	router := newWarehouseTestRouter(warehouseRepo, newStubCityRepo(), testRegularUser())

	w := doJSON(router, http.MethodPost, "/api/warehouses/add",
		`{"warehouse_name":"Main Warehouse","address":"Baumana 5","city_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Empty(t, warehouseRepo.warehouses)
}

func TestWarehouseHandler_Create_MissingAddressRejected(t *testing.T) {
	router := newWarehouseTestRouter(newStubWarehouseRepo(), newStubCityRepo(), testRegularUser())

	w := doJSON(router, http.MethodPost, "/api/warehouses/add",
		`{"warehouse_name":"Main Warehouse"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestWarehouseHandler_List_BindsResourceFilters(t *testing.T) {
	warehouseRepo := newStubWarehouseRepo()
	cityID := uuid.New()
	router := newWarehouseTestRouter(warehouseRepo, newStubCityRepo(), testSuperadmin())

	w := doJSON(router, http.MethodGet,
		"/api/warehouses/all?warehouse_name=main&city_id="+cityID.String(), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "main", warehouseRepo.lastQuery.Contains["name"])
	assert.Equal(t, cityID, warehouseRepo.lastQuery.Equals["city_id"])
}

func TestWarehouseHandler_Update_MovesToCity(t *testing.T) {
	warehouseRepo := newStubWarehouseRepo()
	cityRepo := newStubCityRepo()
	cityID := seedCity(t, cityRepo, "Kazan", "Tatarstan")

	caller := testRegularUser()
	warehouse, err := refdata.NewWarehouse(caller.UserID, caller.CompanyID, "Main Warehouse", "Baumana 5", nil, nil)
	require.NoError(t, err)
	require.NoError(t, warehouseRepo.Save(context.Background(), warehouse))

	router := newWarehouseTestRouter(warehouseRepo, cityRepo, caller)

	w := doJSON(router, http.MethodPatch, "/api/warehouses/"+warehouse.ID.String(),
		`{"address":"Kremlin 1","city_id":"`+cityID.String()+`"}`)

	assert.Equal(t, http.StatusNoContent, w.Code)
	stored := warehouseRepo.warehouses[warehouse.ID]
	assert.Equal(t, "Kremlin 1", stored.Address)
	require.NotNil(t, stored.CityID)
	assert.Equal(t, cityID, *stored.CityID)
}

func TestWarehouseHandler_Update_UnknownCityRejected(t *testing.T) {
	warehouseRepo := newStubWarehouseRepo()
	caller := testRegularUser()
	warehouse, err := refdata.NewWarehouse(caller.UserID, caller.CompanyID, "Main Warehouse", "Baumana 5", nil, nil)
	require.NoError(t, err)
	require.NoError(t, warehouseRepo.Save(context.Background(), warehouse))

	router := newWarehouseTestRouter(warehouseRepo, newStubCityRepo(), caller)

	w := doJSON(router, http.MethodPatch, "/api/warehouses/"+warehouse.ID.String(),
		`{"city_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, warehouseRepo.warehouses[warehouse.ID].CityID)
}
