package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID retrieves a task by ID within an organization
func (r *TaskRepository) GetByID(orgID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("AssignedTo").Preload("Teams").Preload("Account").
		First(&task, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the tasks visible to the acting profile
func (r *TaskRepository) List(p *models.Profile, filter TaskFilter, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := Scoped(r.db.Model(&models.Task{}), TaskScope, p)

	if filter.Title != "" {
		query = query.Where("tasks.title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.AccountID != nil {
		query = query.Where("tasks.account_id = ?", *filter.AccountID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTo").Preload("Teams").
		Limit(limit).Offset(offset).Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ReplaceAssignedTo replaces the task's direct assignees
func (r *TaskRepository) ReplaceAssignedTo(task *models.Task, profiles []models.Profile) error {
	return r.db.Model(task).Association("AssignedTo").Replace(profiles)
}

// ReplaceTeams replaces the task's team assignments
func (r *TaskRepository) ReplaceTeams(task *models.Task, teams []models.Team) error {
	return r.db.Model(task).Association("Teams").Replace(teams)
}

// Delete deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}
