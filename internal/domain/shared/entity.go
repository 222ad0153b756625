package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
}

// BaseEntity provides the identifier common to all entities
type BaseEntity struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: uuid.New()}
}

// AuditedEntity provides common fields for entities that track who
// created and last modified them
type AuditedEntity struct {
	BaseEntity
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	ModifiedAt time.Time `gorm:"not null;autoUpdateTime"`
	ModifiedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// NewAuditedEntity creates a new audited entity stamped with the acting user
func NewAuditedEntity(actor uuid.UUID) AuditedEntity {
	now := time.Now()
	return AuditedEntity{
		BaseEntity: NewBaseEntity(),
		CreatedAt:  now,
		CreatedBy:  actor,
		ModifiedAt: now,
		ModifiedBy: actor,
	}
}

// Touch updates the modification audit fields
func (e *AuditedEntity) Touch(actor uuid.UUID) {
	e.ModifiedAt = time.Now()
	e.ModifiedBy = actor
}
