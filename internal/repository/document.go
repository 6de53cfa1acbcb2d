package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document
func (r *DocumentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

// GetByID retrieves a document by ID within an organization
func (r *DocumentRepository) GetByID(orgID, id uuid.UUID) (*models.Document, error) {
	var document models.Document
	err := r.db.Preload("SharedTo").Preload("Teams").
		First(&document, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

// List retrieves the documents visible to the acting profile
func (r *DocumentRepository) List(p *models.Profile, filter DocumentFilter, limit, offset int) ([]models.Document, int64, error) {
	var documents []models.Document
	var total int64

	query := Scoped(r.db.Model(&models.Document{}), DocumentScope, p)

	if filter.Title != "" {
		query = query.Where("documents.title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.Status != "" {
		query = query.Where("documents.status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("SharedTo").Preload("Teams").
		Limit(limit).Offset(offset).Order("documents.created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// Update updates a document
func (r *DocumentRepository) Update(document *models.Document) error {
	return r.db.Save(document).Error
}

// ReplaceSharedTo replaces the profiles the document is shared with
func (r *DocumentRepository) ReplaceSharedTo(document *models.Document, profiles []models.Profile) error {
	return r.db.Model(document).Association("SharedTo").Replace(profiles)
}

// ReplaceTeams replaces the teams the document is shared with
func (r *DocumentRepository) ReplaceTeams(document *models.Document, teams []models.Team) error {
	return r.db.Model(document).Association("Teams").Replace(teams)
}

// Delete deletes a document
func (r *DocumentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Document{}, "id = ?", id).Error
}
