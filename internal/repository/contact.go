package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for contacts
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a contact by ID within an organization
func (r *ContactRepository) GetByID(orgID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Preload("AssignedTo").Preload("Teams").
		First(&contact, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// List retrieves the contacts visible to the acting profile
func (r *ContactRepository) List(p *models.Profile, filter ContactFilter, limit, offset int) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64

	query := Scoped(r.db.Model(&models.Contact{}), ContactScope, p)

	if filter.Name != "" {
		query = query.Where("(contacts.first_name ILIKE ? OR contacts.last_name ILIKE ?)",
			"%"+filter.Name+"%", "%"+filter.Name+"%")
	}
	if filter.City != "" {
		query = query.Where("contacts.city ILIKE ?", "%"+filter.City+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTo").Preload("Teams").
		Limit(limit).Offset(offset).Order("contacts.created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// Update updates a contact
func (r *ContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// ReplaceAssignedTo replaces the contact's direct assignees
func (r *ContactRepository) ReplaceAssignedTo(contact *models.Contact, profiles []models.Profile) error {
	return r.db.Model(contact).Association("AssignedTo").Replace(profiles)
}

// ReplaceTeams replaces the contact's team assignments
func (r *ContactRepository) ReplaceTeams(contact *models.Contact, teams []models.Team) error {
	return r.db.Model(contact).Association("Teams").Replace(teams)
}

// Delete deletes a contact
func (r *ContactRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Contact{}, "id = ?", id).Error
}
