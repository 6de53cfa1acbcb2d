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

// ContactService handles business logic for contacts
type ContactService struct {
	repo        repository.ContactRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
	policy      *authz.Policy
	dispatcher  notify.Dispatcher
	validator   *validator.Validate
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, teamRepo repository.TeamRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *ContactService {
	return &ContactService{
		repo:        repo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		policy:      policy,
		dispatcher:  dispatcher,
		validator:   validator,
	}
}

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"max=100"`
	Email       string      `json:"email" validate:"omitempty,email,max=255"`
	Mobile      string      `json:"mobile" validate:"max=20"`
	City        string      `json:"city" validate:"max=100"`
	Description string      `json:"description"`
	AssignedTo  []uuid.UUID `json:"assigned_to,omitempty"`
	Teams       []uuid.UUID `json:"teams,omitempty"`
}

// UpdateContactRequest represents the request to update a contact.
// Nil fields are left unchanged.
type UpdateContactRequest struct {
	FirstName   *string      `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    *string      `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email       *string      `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Mobile      *string      `json:"mobile,omitempty" validate:"omitempty,max=20"`
	City        *string      `json:"city,omitempty" validate:"omitempty,max=100"`
	Description *string      `json:"description,omitempty"`
	AssignedTo  *[]uuid.UUID `json:"assigned_to,omitempty"`
	Teams       *[]uuid.UUID `json:"teams,omitempty"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new contact owned by the acting profile's organization
func (s *ContactService) Create(p *models.Profile, req *CreateContactRequest) (*models.Contact, error) {
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

	contact := &models.Contact{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Mobile:      req.Mobile,
		City:        req.City,
		Description: req.Description,
	}
	if err := s.repo.Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	if len(assigned) > 0 {
		if err := s.repo.ReplaceAssignedTo(contact, assigned); err != nil {
			return nil, fmt.Errorf("failed to assign profiles: %w", err)
		}
		contact.AssignedTo = assigned
		s.notifyAssigned(contact, assigned)
	}
	if len(teams) > 0 {
		if err := s.repo.ReplaceTeams(contact, teams); err != nil {
			return nil, fmt.Errorf("failed to assign teams: %w", err)
		}
		contact.Teams = teams
	}

	return contact, nil
}

// Get retrieves a single contact visible to the acting profile
func (s *ContactService) Get(p *models.Profile, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrContactNotFound)
	}
	if err := s.policy.Authorize(p, contact, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns the contacts the acting profile is allowed to see
func (s *ContactService) List(p *models.Profile, filter repository.ContactFilter, page, pageSize int) (*ContactListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	contacts, total, err := s.repo.List(p, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &ContactListResponse{
		Contacts: contacts,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates a contact the acting profile may modify
func (s *ContactService) Update(p *models.Profile, id uuid.UUID, req *UpdateContactRequest) (*models.Contact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	contact, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrContactNotFound)
	}
	if err := s.policy.Authorize(p, contact, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Mobile != nil {
		contact.Mobile = *req.Mobile
	}
	if req.City != nil {
		contact.City = *req.City
	}
	if req.Description != nil {
		contact.Description = *req.Description
	}
	contact.UpdatedByID = &p.ID

	if err := s.repo.Update(contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	if req.AssignedTo != nil {
		assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAssignedTo(contact, assigned); err != nil {
			return nil, fmt.Errorf("failed to replace assigned profiles: %w", err)
		}
		contact.AssignedTo = assigned
		s.notifyAssigned(contact, assigned)
	}
	if req.Teams != nil {
		teams, err := resolveTeams(s.teamRepo, p.OrganizationID, *req.Teams)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(contact, teams); err != nil {
			return nil, fmt.Errorf("failed to replace assigned teams: %w", err)
		}
		contact.Teams = teams
	}

	return contact, nil
}

// Delete removes a contact. Only organization admins and the creator
// may delete.
func (s *ContactService) Delete(p *models.Profile, id uuid.UUID) error {
	contact, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrContactNotFound)
	}
	if err := s.policy.Authorize(p, contact, authz.ActionDelete, authz.Options{}); err != nil {
		return err
	}
	if err := s.repo.Delete(contact.ID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

func (s *ContactService) notifyAssigned(contact *models.Contact, assigned []models.Profile) {
	if len(assigned) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(assigned))
	for _, a := range assigned {
		ids = append(ids, a.ID)
	}
	dispatchEvent(s.dispatcher, notify.Event{
		Kind:                notify.EventAssigned,
		ResourceType:        "contact",
		ResourceID:          contact.ID,
		OrganizationID:      contact.OrganizationID,
		RecipientProfileIDs: ids,
		OccurredAt:          time.Now().UTC(),
	})
}
