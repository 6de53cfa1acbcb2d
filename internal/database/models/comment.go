package models

import (
	"github.com/google/uuid"
)

// Comment represents a remark left on a parent resource. Exactly one of
// the parent references is expected to be set; the comment inherits the
// parent's organization through its own tenant foreign key.
type Comment struct {
	TenantModel
	Comment       string     `json:"comment" gorm:"not null;type:text" validate:"required"`
	CommentedByID *uuid.UUID `json:"commented_by_id,omitempty" gorm:"type:uuid;index"`

	TaskID    *uuid.UUID `json:"task_id,omitempty" gorm:"type:uuid;index"`
	AccountID *uuid.UUID `json:"account_id,omitempty" gorm:"type:uuid;index"`
	InvoiceID *uuid.UUID `json:"invoice_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	CommentedBy *Profile `json:"commented_by,omitempty" gorm:"foreignKey:CommentedByID;constraint:OnDelete:SET NULL"`
	Task        *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Account     *Account `json:"account,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Invoice     *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
