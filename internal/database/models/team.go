package models

// Team represents a named group of profiles within an organization.
// Resources assigned to a team are visible to all of its members.
type Team struct {
	TenantModel
	Name        string `json:"name" gorm:"not null;size:100;index" validate:"required,min=1,max=100"`
	Description string `json:"description" gorm:"size:255" validate:"max=255"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Users        []Profile    `json:"users,omitempty" gorm:"many2many:team_profiles;"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
