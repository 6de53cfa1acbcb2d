package models

import (
	"github.com/google/uuid"
)

// Contact represents a person record belonging to one organization
type Contact struct {
	TenantModel
	FirstName   string `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName    string `json:"last_name" gorm:"size:100" validate:"max=100"`
	Email       string `json:"email" gorm:"size:255;index" validate:"omitempty,email,max=255"`
	Mobile      string `json:"mobile" gorm:"size:20"`
	City        string `json:"city" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	AssignedTo   []Profile    `json:"assigned_to,omitempty" gorm:"many2many:contact_assigned_profiles;"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:contact_teams;"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// GetAssignedProfileIDs reports the directly assigned profiles
func (c *Contact) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(c.AssignedTo)
}

// GetAssignedTeamIDs reports the assigned teams
func (c *Contact) GetAssignedTeamIDs() []uuid.UUID {
	return teamIDs(c.Teams)
}
