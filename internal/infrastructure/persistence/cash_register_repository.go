package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCashRegisterRepository implements CashRegisterRepository using GORM
type GormCashRegisterRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterRepository creates a new GormCashRegisterRepository
func NewGormCashRegisterRepository(db *gorm.DB) *GormCashRegisterRepository {
	return &GormCashRegisterRepository{db: db}
}

// FindByID finds a cash register by its ID
func (r *GormCashRegisterRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.CashRegister, error) {
	var register refdata.CashRegister
	if err := r.db.WithContext(ctx).First(&register, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &register, nil
}

// FindAll finds all cash registers matching the query
func (r *GormCashRegisterRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.CashRegister, error) {
	var registers []refdata.CashRegister
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.CashRegister{}), query)
	if err := q.Find(&registers).Error; err != nil {
		return nil, err
	}
	return registers, nil
}

// Count counts cash registers matching the query, ignoring pagination
func (r *GormCashRegisterRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.CashRegister{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a cash register
func (r *GormCashRegisterRepository) Save(ctx context.Context, register *refdata.CashRegister) error {
	return r.db.WithContext(ctx).Save(register).Error
}

// Delete deletes a cash register
func (r *GormCashRegisterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&refdata.CashRegister{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCashRegisterRepository implements CashRegisterRepository
var _ refdata.CashRegisterRepository = (*GormCashRegisterRepository)(nil)
