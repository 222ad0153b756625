package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRelationRepository implements RelationRepository using GORM
type GormRelationRepository struct {
	db *gorm.DB
}

// NewGormRelationRepository creates a new GormRelationRepository
func NewGormRelationRepository(db *gorm.DB) *GormRelationRepository {
	return &GormRelationRepository{db: db}
}

// FindByID finds a relation by its ID
func (r *GormRelationRepository) FindByID(ctx context.Context, id uuid.UUID) (*refdata.EntityCompanyRelation, error) {
	var relation refdata.EntityCompanyRelation
	if err := r.db.WithContext(ctx).First(&relation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

// FindAll finds all relations matching the query
func (r *GormRelationRepository) FindAll(ctx context.Context, query shared.ListQuery) ([]refdata.EntityCompanyRelation, error) {
	var relations []refdata.EntityCompanyRelation
	q := applyListQuery(r.db.WithContext(ctx).Model(&refdata.EntityCompanyRelation{}), query)
	if err := q.Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// Count counts relations matching the query, ignoring pagination
func (r *GormRelationRepository) Count(ctx context.Context, query shared.ListQuery) (int64, error) {
	var count int64
	q := applyListFilters(r.db.WithContext(ctx).Model(&refdata.EntityCompanyRelation{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a relation
func (r *GormRelationRepository) Save(ctx context.Context, relation *refdata.EntityCompanyRelation) error {
	return r.db.WithContext(ctx).Save(relation).Error
}

// Delete deletes a relation
func (r *GormRelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&refdata.EntityCompanyRelation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// EntityIDsForCompany lists the legal entities visible to a company
func (r *GormRelationRepository) EntityIDsForCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&refdata.EntityCompanyRelation{}).
		Where("company_id = ?", companyID).
		Distinct().
		Pluck("legal_entity_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// EntityIDsByType lists entities related with the given type, narrowed
// to a company when companyID is non-nil
func (r *GormRelationRepository) EntityIDsByType(ctx context.Context, companyID *uuid.UUID, relationType string) ([]uuid.UUID, error) {
	query := r.db.WithContext(ctx).
		Model(&refdata.EntityCompanyRelation{}).
		Where("relation_type = ?", relationType)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	var ids []uuid.UUID
	if err := query.Distinct().Pluck("legal_entity_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CompanyIDsForEntity lists the companies an entity is related to
func (r *GormRelationRepository) CompanyIDsForEntity(ctx context.Context, legalEntityID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&refdata.EntityCompanyRelation{}).
		Where("legal_entity_id = ?", legalEntityID).
		Distinct().
		Pluck("company_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsForEntityAndCompany reports whether the entity is visible to the company
func (r *GormRelationRepository) ExistsForEntityAndCompany(ctx context.Context, legalEntityID, companyID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&refdata.EntityCompanyRelation{}).
		Where("legal_entity_id = ? AND company_id = ?", legalEntityID, companyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormRelationRepository implements RelationRepository
var _ refdata.RelationRepository = (*GormRelationRepository)(nil)
