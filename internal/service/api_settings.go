package service

import (
	"fmt"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// APISettingsService handles business logic for external integration
// settings. Mutations are admin only; reads follow the usual scoping.
type APISettingsService struct {
	repo        repository.APISettingsRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	policy      *authz.Policy
	validator   *validator.Validate
}

// NewAPISettingsService creates a new API settings service
func NewAPISettingsService(repo repository.APISettingsRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, policy *authz.Policy, validator *validator.Validate) *APISettingsService {
	return &APISettingsService{
		repo:        repo,
		profileRepo: profileRepo,
		policy:      policy,
		validator:   validator,
	}
}

// CreateAPISettingsRequest represents the request to register an
// integration endpoint
type CreateAPISettingsRequest struct {
	Title      string      `json:"title" validate:"required,min=1,max=200"`
	Website    string      `json:"website" validate:"omitempty,url,max=255"`
	AssignedTo []uuid.UUID `json:"assigned_to,omitempty"`
}

// UpdateAPISettingsRequest represents the request to update an
// integration endpoint. Nil fields are left unchanged.
type UpdateAPISettingsRequest struct {
	Title      *string      `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Website    *string      `json:"website,omitempty" validate:"omitempty,url,max=255"`
	AssignedTo *[]uuid.UUID `json:"assigned_to,omitempty"`
}

// APISettingsListResponse represents a paginated list of API settings
type APISettingsListResponse struct {
	Settings []models.APISettings `json:"settings"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// Create registers an integration endpoint. Admin only.
func (s *APISettingsService) Create(p *models.Profile, req *CreateAPISettingsRequest) (*models.APISettings, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	settings := &models.APISettings{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Title:   req.Title,
		Website: req.Website,
	}
	if len(assigned) > 0 {
		settings.AssignedTo = assigned
	}
	if err := s.repo.Create(settings); err != nil {
		return nil, fmt.Errorf("failed to create API settings: %w", err)
	}
	return settings, nil
}

// Get retrieves a single integration endpoint visible to the acting
// profile
func (s *APISettingsService) Get(p *models.Profile, id uuid.UUID) (*models.APISettings, error) {
	settings, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrAPISettingsNotFound)
	}
	if err := s.policy.Authorize(p, settings, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return settings, nil
}

// List returns the integration endpoints the acting profile is allowed
// to see
func (s *APISettingsService) List(p *models.Profile, page, pageSize int) (*APISettingsListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	settings, total, err := s.repo.List(p, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list API settings: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &APISettingsListResponse{
		Settings: settings,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates an integration endpoint. Admin only.
func (s *APISettingsService) Update(p *models.Profile, id uuid.UUID, req *UpdateAPISettingsRequest) (*models.APISettings, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrAPISettingsNotFound)
	}

	if req.Title != nil {
		settings.Title = *req.Title
	}
	if req.Website != nil {
		settings.Website = *req.Website
	}
	if req.AssignedTo != nil {
		assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		settings.AssignedTo = assigned
	}
	settings.UpdatedByID = &p.ID

	if err := s.repo.Update(settings); err != nil {
		return nil, fmt.Errorf("failed to update API settings: %w", err)
	}
	return settings, nil
}

// Delete removes an integration endpoint. Admin only.
func (s *APISettingsService) Delete(p *models.Profile, id uuid.UUID) error {
	if err := s.policy.CanManageOrg(p); err != nil {
		return err
	}
	settings, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrAPISettingsNotFound)
	}
	if err := s.repo.Delete(settings.ID); err != nil {
		return fmt.Errorf("failed to delete API settings: %w", err)
	}
	return nil
}
