package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// CreateWithAdmin creates an organization together with its first user
// and admin profile in one transaction. A failed signup leaves no rows
// behind, so the same email can retry.
func (r *OrganizationRepository) CreateWithAdmin(user *models.User, org *models.Organization, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		profile.OrganizationID = org.ID
		return tx.Create(profile).Error
	})
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByName retrieves an organization by name
func (r *OrganizationRepository) GetByName(name string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByAPIKey retrieves an active organization by its API key. The key
// lookup is exact; inactive organizations never match.
func (r *OrganizationRepository) GetByAPIKey(apiKey string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "api_key = ? AND is_active = ?", apiKey, true).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// RotateAPIKey replaces the organization's API key. The old key stops
// matching for the very next request; nothing caches it.
func (r *OrganizationRepository) RotateAPIKey(id uuid.UUID, apiKey string) error {
	return r.db.Model(&models.Organization{}).Where("id = ?", id).Update("api_key", apiKey).Error
}
