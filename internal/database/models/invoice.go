package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusSent      InvoiceStatus = "Sent"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusPending   InvoiceStatus = "Pending"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

// Invoice represents a billing document belonging to one organization
type Invoice struct {
	TenantModel
	InvoiceTitle  string        `json:"invoice_title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	InvoiceNumber string        `json:"invoice_number" gorm:"not null;size:50;index" validate:"required,max=50"`
	Currency      string        `json:"currency" gorm:"size:3;default:'USD'" validate:"omitempty,len=3"`
	Email         string        `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	TotalAmount   int64         `json:"total_amount" gorm:"not null;default:0"` // minor units
	Status        InvoiceStatus `json:"status" gorm:"type:varchar(20);not null;default:'Draft'"`
	DueDate       *time.Time    `json:"due_date,omitempty"`

	AccountID *uuid.UUID `json:"account_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Account      *Account     `json:"account,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL"`
	AssignedTo   []Profile    `json:"assigned_to,omitempty" gorm:"many2many:invoice_assigned_profiles;"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:invoice_teams;"`
}

// TableName returns the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// GetAssignedProfileIDs reports the directly assigned profiles
func (i *Invoice) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(i.AssignedTo)
}

// GetAssignedTeamIDs reports the assigned teams
func (i *Invoice) GetAssignedTeamIDs() []uuid.UUID {
	return teamIDs(i.Teams)
}
