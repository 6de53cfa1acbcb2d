package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create creates a new comment
func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by ID within an organization
func (r *CommentRepository) GetByID(orgID, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("CommentedBy").First(&comment, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByTask retrieves all comments on a task within an organization
func (r *CommentRepository) GetByTask(orgID, taskID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("CommentedBy").
		Where("organization_id = ? AND task_id = ?", orgID, taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates a comment
func (r *CommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete deletes a comment
func (r *CommentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
