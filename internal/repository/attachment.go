package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentRepository handles database operations for attachments
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create creates a new attachment
func (r *AttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// GetByID retrieves an attachment by ID within an organization
func (r *AttachmentRepository) GetByID(orgID, id uuid.UUID) (*models.Attachment, error) {
	var attachment models.Attachment
	err := r.db.First(&attachment, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// GetByTask retrieves all attachments on a task within an organization
func (r *AttachmentRepository) GetByTask(orgID, taskID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.Where("organization_id = ? AND task_id = ?", orgID, taskID).
		Order("created_at ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete deletes an attachment
func (r *AttachmentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Attachment{}, "id = ?", id).Error
}
