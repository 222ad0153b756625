package persistence

import (
	"context"

	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLegalEntityTypeRepository implements LegalEntityTypeRepository using GORM.
// The type directory is seeded by migrations and read-only at runtime.
type GormLegalEntityTypeRepository struct {
	db *gorm.DB
}

// NewGormLegalEntityTypeRepository creates a new GormLegalEntityTypeRepository
func NewGormLegalEntityTypeRepository(db *gorm.DB) *GormLegalEntityTypeRepository {
	return &GormLegalEntityTypeRepository{db: db}
}

// FindAll finds all entity types matching the query
func (r *GormLegalEntityTypeRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.LegalEntityType, error) {
	var types []refdata.LegalEntityType
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.LegalEntityType{}), query)
	if err := q.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// Count counts entity types matching the query, ignoring pagination
func (r *GormLegalEntityTypeRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.LegalEntityType{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks whether an entity type with the given ID exists
func (r *GormLegalEntityTypeRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&refdata.LegalEntityType{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormLegalEntityTypeRepository implements LegalEntityTypeRepository
var _ refdata.LegalEntityTypeRepository = (*GormLegalEntityTypeRepository)(nil)
