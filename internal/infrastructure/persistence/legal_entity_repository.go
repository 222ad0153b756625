package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLegalEntityRepository implements LegalEntityRepository using GORM
type GormLegalEntityRepository struct {
	db *gorm.DB
}

// NewGormLegalEntityRepository creates a new GormLegalEntityRepository
func NewGormLegalEntityRepository(db *gorm.DB) *GormLegalEntityRepository {
	return &GormLegalEntityRepository{db: db}
}

// FindByID finds a legal entity by its ID
func (r *GormLegalEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.LegalEntity, error) {
	var entity refdata.LegalEntity
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all legal entities matching the query
func (r *GormLegalEntityRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.LegalEntity, error) {
	var entities []refdata.LegalEntity
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.LegalEntity{}), query)
	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts legal entities matching the query, ignoring pagination
func (r *GormLegalEntityRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.LegalEntity{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a legal entity
func (r *GormLegalEntityRepository) Save(ctx context.Context, entity *refdata.LegalEntity) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete deletes a legal entity. Company relations go with it via the
// cascading foreign key.
func (r *GormLegalEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&refdata.LegalEntity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByINN finds a legal entity by taxpayer number. A nil kpp matches
// only rows without a KPP, mirroring the uniqueness of the (inn, kpp)
// pair.
func (r *GormLegalEntityRepository) FindByINN(ctx context.Context, inn string, kpp *string) (*refdata.LegalEntity, error) {
	var entity refdata.LegalEntity
	query := r.db.WithContext(ctx).Where("inn = ?", inn)
	if kpp != nil {
		query = query.Where("kpp = ?", *kpp)
	} else {
		query = query.Where("kpp IS NULL")
	}
	if err := query.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// ExistsByINN checks whether an entity with the (inn, kpp) pair exists
func (r *GormLegalEntityRepository) ExistsByINN(ctx context.Context, inn string, kpp *string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&refdata.LegalEntity{}).Where("inn = ?", inn)
	if kpp != nil {
		query = query.Where("kpp = ?", *kpp)
	} else {
		query = query.Where("kpp IS NULL")
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByOGRN checks whether an entity with the given OGRN exists
func (r *GormLegalEntityRepository) ExistsByOGRN(ctx context.Context, ogrn string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&refdata.LegalEntity{}).
		Where("ogrn = ?", ogrn).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDs fetches the entities whose IDs appear in ids
func (r *GormLegalEntityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]refdata.LegalEntity, error) {
	if len(ids) == 0 {
		return []refdata.LegalEntity{}, nil
	}

	var entities []refdata.LegalEntity
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// SaveWithRelation stores a new entity together with its initial company
// relation in one transaction, so a failed relation insert never leaves
// an orphaned entity behind.
func (r *GormLegalEntityRepository) SaveWithRelation(ctx context.Context, entity *refdata.LegalEntity, relation *refdata.EntityCompanyRelation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entity).Error; err != nil {
			return err
		}
		return tx.Save(relation).Error
	})
}

// Ensure GormLegalEntityRepository implements LegalEntityRepository
var _ refdata.LegalEntityRepository = (*GormLegalEntityRepository)(nil)
