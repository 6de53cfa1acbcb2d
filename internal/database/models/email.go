package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery state of an email record
type EmailStatus string

const (
	EmailStatusDraft EmailStatus = "draft"
	EmailStatusSent  EmailStatus = "sent"
)

// Email represents an outbound email recorded by an organization.
// Delivery is handled by the asynchronous notification collaborator;
// this row is only the tenant-scoped audit record.
type Email struct {
	TenantModel
	FromEmail   string      `json:"from_email" gorm:"not null;size:255" validate:"required,email,max=255"`
	Recipients  string      `json:"recipients" gorm:"not null;type:text" validate:"required"` // comma-separated
	Subject     string      `json:"subject" gorm:"not null;size:255" validate:"required,max=255"`
	MessageBody string      `json:"message_body" gorm:"type:text"`
	Status      EmailStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	SentAt      *time.Time  `json:"sent_at,omitempty"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Email
func (Email) TableName() string {
	return "emails"
}

// GetAssignedProfileIDs reports no assignees; emails are visible to
// their creator and admins only
func (e *Email) GetAssignedProfileIDs() []uuid.UUID {
	return nil
}

// GetAssignedTeamIDs reports no team assignments
func (e *Email) GetAssignedTeamIDs() []uuid.UUID {
	return nil
}
