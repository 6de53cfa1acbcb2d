package models

// Organization represents the root entity for multi-tenancy. Every
// business resource carries a foreign key to exactly one organization.
type Organization struct {
	BaseModel
	Name     string `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	APIKey   string `json:"-" gorm:"uniqueIndex;not null;size:64"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Relationships
	Profiles []Profile `json:"profiles,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Teams    []Team    `json:"teams,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Accounts []Account `json:"accounts,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
