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

// TeamService handles business logic for teams. Teams are organization
// infrastructure, so all mutations require admin rights.
type TeamService struct {
	repo        repository.TeamRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	policy      *authz.Policy
	validator   *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo repository.TeamRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, policy *authz.Policy, validator *validator.Validate) *TeamService {
	return &TeamService{
		repo:        repo,
		profileRepo: profileRepo,
		policy:      policy,
		validator:   validator,
	}
}

// CreateTeamRequest represents the request to create a team
type CreateTeamRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=100"`
	Description string      `json:"description"`
	Users       []uuid.UUID `json:"users,omitempty"`
}

// UpdateTeamRequest represents the request to update a team. Nil fields
// are left unchanged.
type UpdateTeamRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string      `json:"description,omitempty"`
	Users       *[]uuid.UUID `json:"users,omitempty"`
}

// TeamListResponse represents a paginated list of teams
type TeamListResponse struct {
	Teams    []models.Team `json:"teams"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Create creates a new team in the acting profile's organization
func (s *TeamService) Create(p *models.Profile, req *CreateTeamRequest) (*models.Team, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	members, err := resolveProfiles(s.profileRepo, p.OrganizationID, req.Users)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if len(members) > 0 {
		if err := s.repo.ReplaceUsers(team, members); err != nil {
			return nil, fmt.Errorf("failed to set team members: %w", err)
		}
		team.Users = members
	}

	return team, nil
}

// Get retrieves a team in the acting profile's organization
func (s *TeamService) Get(p *models.Profile, id uuid.UUID) (*models.Team, error) {
	team, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTeamNotFound)
	}
	return team, nil
}

// List returns the teams of the acting profile's organization
func (s *TeamService) List(p *models.Profile, page, pageSize int) (*TeamListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	teams, total, err := s.repo.GetByOrganizationID(p.OrganizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &TeamListResponse{
		Teams:    teams,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates a team. Admin only.
func (s *TeamService) Update(p *models.Profile, id uuid.UUID, req *UpdateTeamRequest) (*models.Team, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTeamNotFound)
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	team.UpdatedByID = &p.ID

	if err := s.repo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	if req.Users != nil {
		members, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.Users)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceUsers(team, members); err != nil {
			return nil, fmt.Errorf("failed to replace team members: %w", err)
		}
		team.Users = members
	}

	return team, nil
}

// Delete removes a team. Admin only.
func (s *TeamService) Delete(p *models.Profile, id uuid.UUID) error {
	if err := s.policy.CanManageOrg(p); err != nil {
		return err
	}
	team, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrTeamNotFound)
	}
	if err := s.repo.Delete(team.ID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}
