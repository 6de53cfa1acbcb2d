package models

import (
	"github.com/google/uuid"
)

// ProfileRole represents the role of a profile within its organization
type ProfileRole string

const (
	ProfileRoleAdmin   ProfileRole = "ADMIN"
	ProfileRoleManager ProfileRole = "MANAGER"
	ProfileRoleUser    ProfileRole = "USER"
)

// Profile represents a user's membership in one organization. It is the
// unit of authorization: every permission check asks what the acting
// profile may do inside its own organization. At most one profile exists
// per (user, organization) pair.
type Profile struct {
	BaseModel
	UserID              uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_org" validate:"required"`
	OrganizationID      uuid.UUID   `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_org;index" validate:"required"`
	Role                ProfileRole `json:"role" gorm:"type:varchar(50);not null;default:'USER'" validate:"required"`
	Phone               string      `json:"phone" gorm:"size:20"`
	HasSalesAccess      bool        `json:"has_sales_access" gorm:"default:false"`
	HasMarketingAccess  bool        `json:"has_marketing_access" gorm:"default:false"`
	IsActive            bool        `json:"is_active" gorm:"default:true"`
	IsOrganizationAdmin bool        `json:"is_organization_admin" gorm:"default:false"`

	// Relationships
	User         User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:team_profiles;"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile has organization-wide elevated
// rights, either through the ADMIN role or the org-admin flag.
func (p *Profile) IsAdmin() bool {
	return p.IsOrganizationAdmin || p.Role == ProfileRoleAdmin
}

// TeamIDs returns the ids of the teams the profile belongs to. Requires
// the Teams association to be preloaded.
func (p *Profile) TeamIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Teams))
	for _, t := range p.Teams {
		ids = append(ids, t.ID)
	}
	return ids
}
