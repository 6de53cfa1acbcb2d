package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailRepository handles database operations for email records
type EmailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new email repository
func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

// Create creates a new email record
func (r *EmailRepository) Create(email *models.Email) error {
	return r.db.Create(email).Error
}

// GetByID retrieves an email record by ID within an organization
func (r *EmailRepository) GetByID(orgID, id uuid.UUID) (*models.Email, error) {
	var email models.Email
	err := r.db.First(&email, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &email, nil
}

// List retrieves the email records visible to the acting profile
func (r *EmailRepository) List(p *models.Profile, limit, offset int) ([]models.Email, int64, error) {
	var emails []models.Email
	var total int64

	query := Scoped(r.db.Model(&models.Email{}), EmailScope, p)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("emails.created_at DESC").Find(&emails).Error
	if err != nil {
		return nil, 0, err
	}

	return emails, total, nil
}

// Update updates an email record
func (r *EmailRepository) Update(email *models.Email) error {
	return r.db.Save(email).Error
}
