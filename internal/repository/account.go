package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByID retrieves an account by ID within an organization. A row
// belonging to another organization behaves exactly like a missing row.
func (r *AccountRepository) GetByID(orgID, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.Preload("AssignedTo").Preload("Teams").Preload("Contacts").
		First(&account, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List retrieves the accounts visible to the acting profile. Tenant and
// role scoping applies before any caller-supplied filter.
func (r *AccountRepository) List(p *models.Profile, filter AccountFilter, limit, offset int) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	query := Scoped(r.db.Model(&models.Account{}), AccountScope, p)

	if filter.Name != "" {
		query = query.Where("accounts.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.City != "" {
		query = query.Where("accounts.billing_city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Industry != "" {
		query = query.Where("accounts.industry ILIKE ?", "%"+filter.Industry+"%")
	}
	if filter.Status != "" {
		query = query.Where("accounts.status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTo").Preload("Teams").
		Limit(limit).Offset(offset).Order("accounts.created_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// Update updates an account
func (r *AccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// ReplaceAssignedTo replaces the account's direct assignees
func (r *AccountRepository) ReplaceAssignedTo(account *models.Account, profiles []models.Profile) error {
	return r.db.Model(account).Association("AssignedTo").Replace(profiles)
}

// ReplaceTeams replaces the account's team assignments
func (r *AccountRepository) ReplaceTeams(account *models.Account, teams []models.Team) error {
	return r.db.Model(account).Association("Teams").Replace(teams)
}

// Delete deletes an account
func (r *AccountRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Account{}, "id = ?", id).Error
}
