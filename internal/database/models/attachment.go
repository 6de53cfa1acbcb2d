package models

import (
	"github.com/google/uuid"
)

// Attachment represents a file attached to a parent resource
type Attachment struct {
	TenantModel
	FileName string `json:"file_name" gorm:"not null;size:255" validate:"required,max=255"`
	FilePath string `json:"file_path" gorm:"not null;size:500" validate:"required,max=500"`

	TaskID    *uuid.UUID `json:"task_id,omitempty" gorm:"type:uuid;index"`
	AccountID *uuid.UUID `json:"account_id,omitempty" gorm:"type:uuid;index"`
	InvoiceID *uuid.UUID `json:"invoice_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Task    *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Account *Account `json:"account,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Invoice *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
