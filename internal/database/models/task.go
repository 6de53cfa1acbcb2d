package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "New"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Task represents a unit of work belonging to one organization,
// optionally attached to an account
type Task struct {
	TenantModel
	Title    string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Status   TaskStatus   `json:"status" gorm:"type:varchar(50);not null;default:'New'"`
	Priority TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'Medium'"`
	DueDate  *time.Time   `json:"due_date,omitempty"`

	AccountID *uuid.UUID `json:"account_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Account      *Account     `json:"account,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL"`
	AssignedTo   []Profile    `json:"assigned_to,omitempty" gorm:"many2many:task_assigned_profiles;"`
	Teams        []Team       `json:"teams,omitempty" gorm:"many2many:task_teams;"`
	Comments     []Comment    `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// GetAssignedProfileIDs reports the directly assigned profiles
func (t *Task) GetAssignedProfileIDs() []uuid.UUID {
	return profileIDs(t.AssignedTo)
}

// GetAssignedTeamIDs reports the assigned teams
func (t *Task) GetAssignedTeamIDs() []uuid.UUID {
	return teamIDs(t.Teams)
}
