package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStorageRepository implements StorageRepository using GORM
type GormStorageRepository struct {
	db *gorm.DB
}

// NewGormStorageRepository creates a new GormStorageRepository
func NewGormStorageRepository(db *gorm.DB) *GormStorageRepository {
	return &GormStorageRepository{db: db}
}

// FindByID finds a storage by its ID
func (r *GormStorageRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.Storage, error) {
	var storage refdata.Storage
	if err := r.db.WithContext(ctx).First(&storage, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &storage, nil
}

// FindAll finds all storages matching the query
func (r *GormStorageRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.Storage, error) {
	var storages []refdata.Storage
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.Storage{}), query)
	if err := q.Find(&storages).Error; err != nil {
		return nil, err
	}
	return storages, nil
}

// Count counts storages matching the query, ignoring pagination
func (r *GormStorageRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.Storage{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a storage
func (r *GormStorageRepository) Save(ctx context.Context, storage *refdata.Storage) error {
	return r.db.WithContext(ctx).Save(storage).Error
}

// Delete deletes a storage
func (r *GormStorageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&refdata.Storage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStorageRepository implements StorageRepository
var _ refdata.StorageRepository = (*GormStorageRepository)(nil)
