package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamRepository handles database operations for teams
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// GetByID retrieves a team by ID within an organization
func (r *TeamRepository) GetByID(orgID, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.Preload("Users").First(&team, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByOrganizationID retrieves all teams of an organization with pagination
func (r *TeamRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Team, int64, error) {
	var teams []models.Team
	var total int64

	if err := r.db.Model(&models.Team{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).Limit(limit).Offset(offset).Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// GetByIDs retrieves teams by id restricted to one organization.
// IDs from other tenants silently drop out of the result.
func (r *TeamRepository) GetByIDs(orgID uuid.UUID, ids []uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	if len(ids) == 0 {
		return teams, nil
	}
	err := r.db.Where("organization_id = ? AND id IN ?", orgID, ids).Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ReplaceUsers replaces the team's membership
func (r *TeamRepository) ReplaceUsers(team *models.Team, profiles []models.Profile) error {
	return r.db.Model(team).Association("Users").Replace(profiles)
}

// Update updates a team
func (r *TeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team
func (r *TeamRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Team{}, "id = ?", id).Error
}
