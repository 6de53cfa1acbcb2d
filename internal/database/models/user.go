package models

// User represents a global identity. Users are never organization-scoped;
// membership in an organization is expressed through a Profile.
type User struct {
	BaseModel
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"not null;size:100"`
	FirstName    string `json:"first_name" gorm:"size:100" validate:"max=100"`
	LastName     string `json:"last_name" gorm:"size:100" validate:"max=100"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	IsSuperuser  bool   `json:"is_superuser" gorm:"default:false"`

	// Relationships
	Profiles []Profile `json:"profiles,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
