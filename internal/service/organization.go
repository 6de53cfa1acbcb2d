package service

import (
	"errors"
	"fmt"

	"crm-backend/internal/auth"
	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// OrganizationService handles business logic for the acting profile's
// own organization
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	policy    *authz.Policy
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.OrganizationRepositoryInterface, policy *authz.Policy, validator *validator.Validate) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		policy:    policy,
		validator: validator,
	}
}

// UpdateOrganizationRequest represents the request to update the
// organization
type UpdateOrganizationRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// APIKeyResponse carries a freshly rotated organization API key. This
// is the only place the key is ever returned.
type APIKeyResponse struct {
	APIKey string `json:"api_key"`
}

// Get retrieves the acting profile's organization
func (s *OrganizationService) Get(p *models.Profile) (*models.Organization, error) {
	org, err := s.repo.GetByID(p.OrganizationID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrOrganizationNotFound)
	}
	return org, nil
}

// Update updates the organization. Admin only.
func (s *OrganizationService) Update(p *models.Profile, req *UpdateOrganizationRequest) (*models.Organization, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	org, err := s.repo.GetByID(p.OrganizationID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrOrganizationNotFound)
	}

	if req.Name != nil && *req.Name != org.Name {
		existing, err := s.repo.GetByName(*req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check organization name: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrOrganizationExists
		}
		org.Name = *req.Name
	}

	if err := s.repo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// RotateAPIKey replaces the organization's API key. Admin only. The old
// key stops working immediately.
func (s *OrganizationService) RotateAPIKey(p *models.Profile) (*APIKeyResponse, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}

	key, err := auth.GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	if err := s.repo.RotateAPIKey(p.OrganizationID, key); err != nil {
		return nil, fmt.Errorf("failed to rotate API key: %w", err)
	}
	return &APIKeyResponse{APIKey: key}, nil
}
