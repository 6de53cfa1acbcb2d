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

// AccountService handles business logic for accounts
type AccountService struct {
	repo        repository.AccountRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
	policy      *authz.Policy
	dispatcher  notify.Dispatcher
	validator   *validator.Validate
}

// NewAccountService creates a new account service
func NewAccountService(repo repository.AccountRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, teamRepo repository.TeamRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *AccountService {
	return &AccountService{
		repo:        repo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		policy:      policy,
		dispatcher:  dispatcher,
		validator:   validator,
	}
}

// CreateAccountRequest represents the request to create an account
type CreateAccountRequest struct {
	Name        string               `json:"name" validate:"required,min=1,max=100"`
	Email       string               `json:"email" validate:"omitempty,email,max=255"`
	Phone       string               `json:"phone" validate:"max=20"`
	Industry    string               `json:"industry" validate:"max=100"`
	Website     string               `json:"website" validate:"omitempty,url,max=255"`
	Status      models.AccountStatus `json:"status" validate:"omitempty,oneof=open close"`
	BillingCity string               `json:"billing_city" validate:"max=100"`
	Description string               `json:"description"`
	AssignedTo  []uuid.UUID          `json:"assigned_to,omitempty"`
	Teams       []uuid.UUID          `json:"teams,omitempty"`
}

// UpdateAccountRequest represents the request to update an account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email       *string               `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       *string               `json:"phone,omitempty" validate:"omitempty,max=20"`
	Industry    *string               `json:"industry,omitempty" validate:"omitempty,max=100"`
	Website     *string               `json:"website,omitempty" validate:"omitempty,url,max=255"`
	Status      *models.AccountStatus `json:"status,omitempty" validate:"omitempty,oneof=open close"`
	BillingCity *string               `json:"billing_city,omitempty" validate:"omitempty,max=100"`
	Description *string               `json:"description,omitempty"`
	AssignedTo  *[]uuid.UUID          `json:"assigned_to,omitempty"`
	Teams       *[]uuid.UUID          `json:"teams,omitempty"`
}

// AccountListResponse represents a paginated list of accounts
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new account owned by the acting profile's organization
func (s *AccountService) Create(p *models.Profile, req *CreateAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, req.AssignedTo)
	if err != nil {
		return nil, err
	}
	teams, err := resolveTeams(s.teamRepo, p.OrganizationID, req.Teams)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.AccountStatusOpen
	}

	account := &models.Account{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Industry:    req.Industry,
		Website:     req.Website,
		Status:      status,
		BillingCity: req.BillingCity,
		Description: req.Description,
	}
	if err := s.repo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if len(assigned) > 0 {
		if err := s.repo.ReplaceAssignedTo(account, assigned); err != nil {
			return nil, fmt.Errorf("failed to assign profiles: %w", err)
		}
		account.AssignedTo = assigned
		s.notifyAssigned(account, assigned)
	}
	if len(teams) > 0 {
		if err := s.repo.ReplaceTeams(account, teams); err != nil {
			return nil, fmt.Errorf("failed to assign teams: %w", err)
		}
		account.Teams = teams
	}

	return account, nil
}

// Get retrieves a single account visible to the acting profile
func (s *AccountService) Get(p *models.Profile, id uuid.UUID) (*models.Account, error) {
	account, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
	}
	if err := s.policy.Authorize(p, account, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return account, nil
}

// List returns the accounts the acting profile is allowed to see
func (s *AccountService) List(p *models.Profile, filter repository.AccountFilter, page, pageSize int) (*AccountListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	accounts, total, err := s.repo.List(p, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &AccountListResponse{
		Accounts: accounts,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates an account the acting profile may modify
func (s *AccountService) Update(p *models.Profile, id uuid.UUID, req *UpdateAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	account, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
	}
	if err := s.policy.Authorize(p, account, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Industry != nil {
		account.Industry = *req.Industry
	}
	if req.Website != nil {
		account.Website = *req.Website
	}
	if req.BillingCity != nil {
		account.BillingCity = *req.BillingCity
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	statusChanged := false
	if req.Status != nil && *req.Status != account.Status {
		account.Status = *req.Status
		statusChanged = true
	}
	account.UpdatedByID = &p.ID

	if err := s.repo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if req.AssignedTo != nil {
		assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAssignedTo(account, assigned); err != nil {
			return nil, fmt.Errorf("failed to replace assigned profiles: %w", err)
		}
		account.AssignedTo = assigned
		s.notifyAssigned(account, assigned)
	}
	if req.Teams != nil {
		teams, err := resolveTeams(s.teamRepo, p.OrganizationID, *req.Teams)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(account, teams); err != nil {
			return nil, fmt.Errorf("failed to replace assigned teams: %w", err)
		}
		account.Teams = teams
	}

	if statusChanged {
		dispatchEvent(s.dispatcher, notify.Event{
			Kind:                notify.EventStatusChanged,
			ResourceType:        "account",
			ResourceID:          account.ID,
			OrganizationID:      account.OrganizationID,
			RecipientProfileIDs: account.GetAssignedProfileIDs(),
			OccurredAt:          time.Now().UTC(),
		})
	}

	return account, nil
}

// Delete removes an account. Only organization admins and the creator
// may delete.
func (s *AccountService) Delete(p *models.Profile, id uuid.UUID) error {
	account, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrAccountNotFound)
	}
	if err := s.policy.Authorize(p, account, authz.ActionDelete, authz.Options{}); err != nil {
		return err
	}
	if err := s.repo.Delete(account.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *AccountService) notifyAssigned(account *models.Account, assigned []models.Profile) {
	if len(assigned) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.ID)
	}
	dispatchEvent(s.dispatcher, notify.Event{
		Kind:                notify.EventAssigned,
		ResourceType:        "account",
		ResourceID:          account.ID,
		OrganizationID:      account.OrganizationID,
		RecipientProfileIDs: ids,
		OccurredAt:          time.Now().UTC(),
	})
}
