package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormLegalEntityRepository_FindByINN(t *testing.T) {
	t.Run("finds entity by inn and kpp", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		entityID := uuid.New()
		kpp := "770701001"

		rows := sqlmock.NewRows([]string{"id", "short_name", "inn", "kpp", "vat_rate"}).
			AddRow(entityID, "ООО Ромашка", "7707083893", kpp, 20)

		mock.ExpectQuery(`SELECT \* FROM "legal_entities" WHERE inn = \$1 AND kpp = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("7707083893", kpp, 1).
			WillReturnRows(rows)

		entity, err := repo.FindByINN(context.Background(), "7707083893", &kpp)

		assert.NoError(t, err)
		require.NotNil(t, entity)
		assert.Equal(t, entityID, entity.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil kpp matches rows without kpp", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "legal_entities" WHERE inn = \$1 AND kpp IS NULL ORDER BY .* LIMIT .*`).
			WithArgs("770708389312", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entity, err := repo.FindByINN(context.Background(), "770708389312", nil)

		assert.Nil(t, entity)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLegalEntityRepository_ExistsByINN(t *testing.T) {
	t.Run("returns true when pair exists", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		kpp := "770701001"

		mock.ExpectQuery(`SELECT count\(\*\) FROM "legal_entities" WHERE inn = \$1 AND kpp = \$2`).
			WithArgs("7707083893", kpp).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByINN(context.Background(), "7707083893", &kpp)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLegalEntityRepository_FindByIDs(t *testing.T) {
	t.Run("finds multiple entities", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "short_name", "inn", "vat_rate"}).
			AddRow(id1, "Entity 1", "7707083893", 0).
			AddRow(id2, "Entity 2", "770708389312", 20)

		mock.ExpectQuery(`SELECT \* FROM "legal_entities" WHERE id IN \(\$1,\$2\) ORDER BY id ASC`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		entities, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		assert.Len(t, entities, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for empty IDs", func(t *testing.T) {
		gormDB, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		entities, err := repo.FindByIDs(context.Background(), []uuid.UUID{})

		assert.NoError(t, err)
		assert.Empty(t, entities)
	})
}

func TestGormLegalEntityRepository_SaveWithRelation(t *testing.T) {
	t.Run("rolls back when relation insert fails", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLegalEntityRepository(gormDB)

		entity, err := refdata.NewLegalEntity(refdata.NewLegalEntityInput{
			ShortName: "ООО Ромашка",
			INN:       "7707083893",
			OGRN:      "1027700132195",
		})
		require.NoError(t, err)

		relation, err := refdata.NewEntityCompanyRelation(uuid.New(), entity.ID, refdata.RelationTypeBuyer, nil)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "legal_entities" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "entity_company_relations" SET`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = repo.SaveWithRelation(context.Background(), entity, relation)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRelationRepository_EntityIDsForCompany(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormRelationRepository(gormDB)

	companyID := uuid.New()
	entityID := uuid.New()

	mock.ExpectQuery(`SELECT DISTINCT "legal_entity_id" FROM "entity_company_relations" WHERE company_id = \$1`).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"legal_entity_id"}).AddRow(entityID))

	ids, err := repo.EntityIDsForCompany(context.Background(), companyID)

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{entityID}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRelationRepository_ExistsForEntityAndCompany(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormRelationRepository(gormDB)

	entityID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "entity_company_relations" WHERE legal_entity_id = \$1 AND company_id = \$2`).
		WithArgs(entityID, companyID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsForEntityAndCompany(context.Background(), entityID, companyID)

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
