package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APISettingsRepository handles database operations for API settings
type APISettingsRepository struct {
	db *gorm.DB
}

// NewAPISettingsRepository creates a new API settings repository
func NewAPISettingsRepository(db *gorm.DB) *APISettingsRepository {
	return &APISettingsRepository{db: db}
}

// Create creates new API settings
func (r *APISettingsRepository) Create(settings *models.APISettings) error {
	return r.db.Create(settings).Error
}

// GetByID retrieves API settings by ID within an organization
func (r *APISettingsRepository) GetByID(orgID, id uuid.UUID) (*models.APISettings, error) {
	var settings models.APISettings
	err := r.db.Preload("AssignedTo").
		First(&settings, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// List retrieves the API settings visible to the acting profile
func (r *APISettingsRepository) List(p *models.Profile, limit, offset int) ([]models.APISettings, int64, error) {
	var settings []models.APISettings
	var total int64

	query := Scoped(r.db.Model(&models.APISettings{}), APISettingsScope, p)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTo").
		Limit(limit).Offset(offset).Order("api_settings.created_at DESC").
		Find(&settings).Error
	if err != nil {
		return nil, 0, err
	}

	return settings, total, nil
}

// Update updates API settings
func (r *APISettingsRepository) Update(settings *models.APISettings) error {
	return r.db.Save(settings).Error
}

// Delete deletes API settings
func (r *APISettingsRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.APISettings{}, "id = ?", id).Error
}
