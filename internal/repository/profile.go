package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetByID retrieves a profile by ID with its user and teams
func (r *ProfileRepository) GetByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Preload("Teams").First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetActiveByUserAndOrg retrieves the active profile binding a user to an
// organization. Profiles are read fresh on every request: role and
// active-flag changes must be visible to the very next tenant resolution.
func (r *ProfileRepository) GetActiveByUserAndOrg(userID, orgID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Preload("Organization").Preload("Teams").
		First(&profile, "user_id = ? AND organization_id = ? AND is_active = ?", userID, orgID, true).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserAndOrg retrieves the profile binding a user to an
// organization regardless of its active flag. The (user, org) pair is
// unique, so a deactivated membership is found here even though the
// tenant resolver never sees it.
func (r *ProfileRepository) GetByUserAndOrg(userID, orgID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").
		First(&profile, "user_id = ? AND organization_id = ?", userID, orgID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAdminForOrg retrieves the designated admin profile of an
// organization, used when a request authenticates with an API key
func (r *ProfileRepository) GetAdminForOrg(orgID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Preload("Organization").Preload("Teams").
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Where("is_organization_admin = ? OR role = ?", true, models.ProfileRoleAdmin).
		Order("created_at ASC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByOrganizationID retrieves all profiles of an organization with pagination
func (r *ProfileRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	if err := r.db.Model(&models.Profile{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("User").Where("organization_id = ?", orgID).
		Limit(limit).Offset(offset).Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// GetByIDs retrieves profiles by id restricted to one organization.
// IDs from other tenants silently drop out of the result.
func (r *ProfileRepository) GetByIDs(orgID uuid.UUID, ids []uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := r.db.Where("organization_id = ? AND id IN ?", orgID, ids).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update updates a profile
func (r *ProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Delete deletes a profile. The user record is never touched; a profile
// is only the membership edge.
func (r *ProfileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Profile{}, "id = ?", id).Error
}
