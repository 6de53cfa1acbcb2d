package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceRepository handles database operations for invoices
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new invoice
func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// GetByID retrieves an invoice by ID within an organization
func (r *InvoiceRepository) GetByID(orgID, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("AssignedTo").Preload("Teams").Preload("Account").
		First(&invoice, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List retrieves the invoices visible to the acting profile
func (r *InvoiceRepository) List(p *models.Profile, filter InvoiceFilter, limit, offset int) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	query := Scoped(r.db.Model(&models.Invoice{}), InvoiceScope, p)

	if filter.Status != "" {
		query = query.Where("invoices.status = ?", filter.Status)
	}
	if filter.AccountID != nil {
		query = query.Where("invoices.account_id = ?", *filter.AccountID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("AssignedTo").Preload("Teams").
		Limit(limit).Offset(offset).Order("invoices.created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Update updates an invoice
func (r *InvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// ReplaceAssignedTo replaces the invoice's direct assignees
func (r *InvoiceRepository) ReplaceAssignedTo(invoice *models.Invoice, profiles []models.Profile) error {
	return r.db.Model(invoice).Association("AssignedTo").Replace(profiles)
}

// ReplaceTeams replaces the invoice's team assignments
func (r *InvoiceRepository) ReplaceTeams(invoice *models.Invoice, teams []models.Team) error {
	return r.db.Model(invoice).Association("Teams").Replace(teams)
}

// Delete deletes an invoice
func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Invoice{}, "id = ?", id).Error
}
