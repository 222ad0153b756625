package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormWarehouseRepository_FindByID(t *testing.T) {
	t.Run("finds existing warehouse", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		warehouseID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "description", "company_id", "created_at", "modified_at"}).
			AddRow(warehouseID, "Main warehouse", nil, companyID, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, 1).
			WillReturnRows(rows)

		warehouse, err := repo.FindByID(context.Background(), warehouseID)

		assert.NoError(t, err)
		assert.NotNil(t, warehouse)
		assert.Equal(t, warehouseID, warehouse.ID)
		assert.Equal(t, companyID, warehouse.CompanyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent warehouse", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		warehouse, err := repo.FindByID(context.Background(), warehouseID)

		assert.Error(t, err)
		assert.Nil(t, warehouse)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_FindAll(t *testing.T) {
	t.Run("orders by sort column with id tiebreaker", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "company_id"}).
			AddRow(uuid.New(), "Depot A", companyID).
			AddRow(uuid.New(), "Depot B", companyID)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE "company_id" = \$1 ORDER BY name ASC,id ASC LIMIT .*`).
			WithArgs(companyID, 10).
			WillReturnRows(rows)

		query := shared.ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: shared.OrderAsc}
		query = query.WithEquals("company_id", companyID)

		warehouses, err := repo.FindAll(context.Background(), query)

		assert.NoError(t, err)
		assert.Len(t, warehouses, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies substring filter", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "name", "company_id"}).
			AddRow(uuid.New(), "Central depot", uuid.New())

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE name ILIKE \$1 ORDER BY name ASC,id ASC LIMIT .*`).
			WithArgs("%central%", 10).
			WillReturnRows(rows)

		query := shared.ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: shared.OrderAsc}
		query = query.WithContains("name", "central")

		warehouses, err := repo.FindAll(context.Background(), query)

		assert.NoError(t, err)
		assert.Len(t, warehouses, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("treats wildcards in filter values as literals", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE name ILIKE \$1 ORDER BY name ASC,id ASC LIMIT .*`).
			WithArgs(`%100\% cotton\_depot%`, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "company_id"}))

		query := shared.ListQuery{Page: 1, PageSize: 10, SortBy: "name", Order: shared.OrderAsc}
		query = query.WithContains("name", "100% cotton_depot")

		_, err := repo.FindAll(context.Background(), query)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies offset beyond first page", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" ORDER BY created_at DESC,id ASC LIMIT .* OFFSET .*`).
			WithArgs(25, 50).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "company_id"}))

		query := shared.ListQuery{Page: 3, PageSize: 25, SortBy: "created_at", Order: shared.OrderDesc}

		warehouses, err := repo.FindAll(context.Background(), query)

		assert.NoError(t, err)
		assert.Empty(t, warehouses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_Count(t *testing.T) {
	t.Run("counts without pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE "company_id" = \$1`).
			WithArgs(companyID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		query := shared.ListQuery{Page: 2, PageSize: 10}
		query = query.WithEquals("company_id", companyID)

		count, err := repo.Count(context.Background(), query)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_Delete(t *testing.T) {
	t.Run("deletes existing warehouse", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		warehouseID := uuid.New()

		mock.ExpectExec(`DELETE FROM "warehouses" WHERE id = \$1`).
			WithArgs(warehouseID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), warehouseID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent warehouse", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormWarehouseRepository(gormDB)

		warehouseID := uuid.New()

		mock.ExpectExec(`DELETE FROM "warehouses" WHERE id = \$1`).
			WithArgs(warehouseID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), warehouseID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_InterfaceCompliance(t *testing.T) {
	gormDB, _, mockDB := newMockDB(t)
	defer mockDB.Close()

	var _ refdata.WarehouseRepository = NewGormWarehouseRepository(gormDB)
}
