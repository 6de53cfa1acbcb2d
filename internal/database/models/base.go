package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides common fields for all models with UUID primary keys
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets the UUID if not already set
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return nil
}

// TenantModel provides the fields shared by every organization-scoped
// resource: the tenant foreign key and the audit references. Audit
// references point at profiles and are nulled when the profile goes away;
// the organization foreign key cascades.
type TenantModel struct {
	BaseModel
	OrganizationID uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	CreatedByID    *uuid.UUID `json:"created_by_id,omitempty" gorm:"type:uuid;index"`
	UpdatedByID    *uuid.UUID `json:"updated_by_id,omitempty" gorm:"type:uuid"`
}

// GetOrganizationID reports the owning tenant
func (m *TenantModel) GetOrganizationID() uuid.UUID {
	return m.OrganizationID
}

// GetCreatedByID reports the creating profile, nil when the audit
// reference has been cleared
func (m *TenantModel) GetCreatedByID() *uuid.UUID {
	return m.CreatedByID
}
