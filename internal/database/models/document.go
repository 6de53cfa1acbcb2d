package models

import (
	"github.com/google/uuid"
)

// DocumentStatus represents the visibility state of a document
type DocumentStatus string

const (
	DocumentStatusActive   DocumentStatus = "active"
	DocumentStatusInactive DocumentStatus = "inactive"
)

// Document represents an uploaded file reference belonging to one
// organization. The file itself lives in external storage; only the
// path is recorded here.
type Document struct {
	TenantModel
	Title        string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	DocumentFile string         `json:"document_file" gorm:"not null;size:500" validate:"required,max=500"`
	Status       DocumentStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	SharedTo     []Profile    `json:"shared_to,omitempty" gorm:"many2many:document_shared_profiles;"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:document_teams;"`
}

// TableName returns the table name for Document
func (Document) TableName() string {
	return "documents"
}

// GetAssignedProfileIDs reports the profiles the document is shared with
func (d *Document) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(d.SharedTo)
}

// GetAssignedTeamIDs reports the teams the document is shared with
func (d *Document) GetAssignedTeamIDs() []uuid.UUID {
	return teamIDs(d.Teams)
}
