package service

import (
	"fmt"
	"time"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/notify"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DocumentService handles business logic for documents
type DocumentService struct {
	repo        repository.DocumentRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
	policy      *authz.Policy
	dispatcher  notify.Dispatcher
	validator   *validator.Validate
}

// NewDocumentService creates a new document service
func NewDocumentService(repo repository.DocumentRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, teamRepo repository.TeamRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *DocumentService {
	return &DocumentService{
		repo:        repo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		policy:      policy,
		dispatcher:  dispatcher,
		validator:   validator,
	}
}

// CreateDocumentRequest represents the request to register a document
type CreateDocumentRequest struct {
	Title        string                `json:"title" validate:"required,min=1,max=200"`
	DocumentFile string                `json:"document_file" validate:"required,max=500"`
	Status       models.DocumentStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	SharedTo     []uuid.UUID           `json:"shared_to,omitempty"`
	Teams        []uuid.UUID           `json:"teams,omitempty"`
}

// UpdateDocumentRequest represents the request to update a document.
// Nil fields are left unchanged.
type UpdateDocumentRequest struct {
	Title        *string                `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	DocumentFile *string                `json:"document_file,omitempty" validate:"omitempty,max=500"`
	Status       *models.DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	SharedTo     *[]uuid.UUID           `json:"shared_to,omitempty"`
	Teams        *[]uuid.UUID           `json:"teams,omitempty"`
}

// DocumentListResponse represents a paginated list of documents
type DocumentListResponse struct {
	Documents []models.Document `json:"documents"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// Create registers a new document owned by the acting profile's
// organization
func (s *DocumentService) Create(p *models.Profile, req *CreateDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	shared, err := resolveProfiles(s.profileRepo, p.OrganizationID, req.SharedTo)
	if err != nil {
		return nil, err
	}
	teams, err := resolveTeams(s.teamRepo, p.OrganizationID, req.Teams)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.DocumentStatusActive
	}

	document := &models.Document{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Title:        req.Title,
		DocumentFile: req.DocumentFile,
		Status:       status,
	}
	if err := s.repo.Create(document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if len(shared) > 0 {
		if err := s.repo.ReplaceSharedTo(document, shared); err != nil {
			return nil, fmt.Errorf("failed to share document: %w", err)
		}
		document.SharedTo = shared
		s.notifyShared(document, profileIDList(shared))
	}
	if len(teams) > 0 {
		if err := s.repo.ReplaceTeams(document, teams); err != nil {
			return nil, fmt.Errorf("failed to share document with teams: %w", err)
		}
		document.Teams = teams
	}

	return document, nil
}

// Get retrieves a single document visible to the acting profile
func (s *DocumentService) Get(p *models.Profile, id uuid.UUID) (*models.Document, error) {
	document, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrDocumentNotFound)
	}
	if err := s.policy.Authorize(p, document, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return document, nil
}

// List returns the documents the acting profile is allowed to see
func (s *DocumentService) List(p *models.Profile, filter repository.DocumentFilter, page, pageSize int) (*DocumentListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	documents, total, err := s.repo.List(p, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &DocumentListResponse{
		Documents: documents,
		Total:     total,
		Page:      page,
		PageSize:  limit,
	}, nil
}

// Update updates a document the acting profile may modify
func (s *DocumentService) Update(p *models.Profile, id uuid.UUID, req *UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	document, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrDocumentNotFound)
	}
	if err := s.policy.Authorize(p, document, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}

	if req.Title != nil {
		document.Title = *req.Title
	}
	if req.DocumentFile != nil {
		document.DocumentFile = *req.DocumentFile
	}
	if req.Status != nil {
		document.Status = *req.Status
	}
	document.UpdatedByID = &p.ID

	if err := s.repo.Update(document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if req.SharedTo != nil {
		shared, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.SharedTo)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSharedTo(document, shared); err != nil {
			return nil, fmt.Errorf("failed to replace document shares: %w", err)
		}
		document.SharedTo = shared
		s.notifyShared(document, profileIDList(shared))
	}
	if req.Teams != nil {
		teams, err := resolveTeams(s.teamRepo, p.OrganizationID, *req.Teams)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(document, teams); err != nil {
			return nil, fmt.Errorf("failed to replace document team shares: %w", err)
		}
		document.Teams = teams
	}

	return document, nil
}

// Delete removes a document. Only organization admins and the creator
// may delete.
func (s *DocumentService) Delete(p *models.Profile, id uuid.UUID) error {
	document, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrDocumentNotFound)
	}
	if err := s.policy.Authorize(p, document, authz.ActionDelete, authz.Options{}); err != nil {
		return err
	}
	if err := s.repo.Delete(document.ID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *DocumentService) notifyShared(document *models.Document, recipients []uuid.UUID) {
	if len(recipients) == 0 {
		return
	}
	dispatchEvent(s.dispatcher, notify.Event{
		Kind:                notify.EventAssigned,
		ResourceType:        "document",
		ResourceID:          document.ID,
		OrganizationID:      document.OrganizationID,
		RecipientProfileIDs: recipients,
		OccurredAt:          time.Now().UTC(),
	})
}
