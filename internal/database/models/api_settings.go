package models

import (
	"github.com/google/uuid"
)

// APISettings represents an external integration endpoint registered by
// an organization
type APISettings struct {
	TenantModel
	Title   string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Website string `json:"website" gorm:"size:255" validate:"omitempty,url,max=255"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	AssignedTo   []Profile    `json:"assigned_to,omitempty" gorm:"many2many:api_settings_assigned_profiles;"`
}

// TableName returns the table name for APISettings
func (APISettings) TableName() string {
	return "api_settings"
}

// GetAssignedProfileIDs reports the directly assigned profiles
func (s *APISettings) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(s.AssignedTo)
}

// GetAssignedTeamIDs reports the assigned teams; API settings are never
// team-scoped
func (s *APISettings) GetAssignedTeamIDs() []uuid.UUID {
	return nil
}
