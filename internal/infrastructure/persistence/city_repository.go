package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCityRepository implements CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by its ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.City, error) {
	var city refdata.City
	if err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// FindAll finds all cities matching the query
func (r *GormCityRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.City, error) {
	var cities []refdata.City
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.City{}), query)
	if err := q.Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// Count counts cities matching the query, ignoring pagination
func (r *GormCityRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.City{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *refdata.City) error {
	return r.db.WithContext(ctx).Save(city).Error
}

// Delete deletes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&refdata.City{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCityRepository implements CityRepository
var _ refdata.CityRepository = (*GormCityRepository)(nil)
