package models

import (
	"github.com/google/uuid"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "open"
	AccountStatusClosed AccountStatus = "close"
)

// Account represents a customer account belonging to one organization
type Account struct {
	TenantModel
	Name        string        `json:"name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Email       string        `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	Phone       string        `json:"phone" gorm:"size:20"`
	Industry    string        `json:"industry" gorm:"size:100"`
	Website     string        `json:"website" gorm:"size:255"`
	Status      AccountStatus `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	BillingCity string        `json:"billing_city" gorm:"size:100"`
	Description string        `json:"description" gorm:"type:text"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	AssignedTo   []Profile    `json:"assigned_to,omitempty" gorm:"many2many:account_assigned_profiles;"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:account_teams;"`
	Contacts     []Contact    `json:"contacts,omitempty" gorm:"many2many:account_contacts;"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// GetAssignedProfileIDs reports the directly assigned profiles.
// Requires the AssignedTo association to be preloaded.
func (a *Account) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(a.AssignedTo)
}

// GetAssignedTeamIDs reports the assigned teams. Requires the Teams
// association to be preloaded.
func (a *Account) GetAssignedTeamIDs() []uuid.UUID {
	return teamIDs(a.Teams)
}

func profileIDs(profiles []Profile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func teamIDs(teams []Team) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}
