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

// InvoiceService handles business logic for invoices
type InvoiceService struct {
	repo        repository.InvoiceRepositoryInterface
	accountRepo repository.AccountRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
	policy      *authz.Policy
	dispatcher  notify.Dispatcher
	validator   *validator.Validate
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo repository.InvoiceRepositoryInterface, accountRepo repository.AccountRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, teamRepo repository.TeamRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *InvoiceService {
	return &InvoiceService{
		repo:        repo,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		policy:      policy,
		dispatcher:  dispatcher,
		validator:   validator,
	}
}

// CreateInvoiceRequest represents the request to create an invoice
type CreateInvoiceRequest struct {
	InvoiceTitle  string               `json:"invoice_title" validate:"required,min=1,max=200"`
	InvoiceNumber string               `json:"invoice_number" validate:"required,max=50"`
	Currency      string               `json:"currency" validate:"omitempty,len=3"`
	Email         string               `json:"email" validate:"omitempty,email,max=255"`
	TotalAmount   int64                `json:"total_amount" validate:"min=0"` // minor units
	Status        models.InvoiceStatus `json:"status" validate:"omitempty,oneof=Draft Sent Paid Pending Cancelled"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	AccountID     *uuid.UUID           `json:"account_id,omitempty"`
	AssignedTo    []uuid.UUID          `json:"assigned_to,omitempty"`
	Teams         []uuid.UUID          `json:"teams,omitempty"`
}

// UpdateInvoiceRequest represents the request to update an invoice. Nil
// fields are left unchanged.
type UpdateInvoiceRequest struct {
	InvoiceTitle *string               `json:"invoice_title,omitempty" validate:"omitempty,min=1,max=200"`
	Currency     *string               `json:"currency,omitempty" validate:"omitempty,len=3"`
	Email        *string               `json:"email,omitempty" validate:"omitempty,email,max=255"`
	TotalAmount  *int64                `json:"total_amount,omitempty" validate:"omitempty,min=0"`
	Status       *models.InvoiceStatus `json:"status,omitempty" validate:"omitempty,oneof=Draft Sent Paid Pending Cancelled"`
	DueDate      *time.Time            `json:"due_date,omitempty"`
	AccountID    *uuid.UUID            `json:"account_id,omitempty"`
	AssignedTo   *[]uuid.UUID          `json:"assigned_to,omitempty"`
	Teams        *[]uuid.UUID          `json:"teams,omitempty"`
}

// InvoiceListResponse represents a paginated list of invoices
type InvoiceListResponse struct {
	Invoices []models.Invoice `json:"invoices"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new invoice owned by the acting profile's organization
func (s *InvoiceService) Create(p *models.Profile, req *CreateInvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(p.OrganizationID, *req.AccountID); err != nil {
			return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
		}
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
		status = models.InvoiceStatusDraft
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	invoice := &models.Invoice{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		InvoiceTitle:  req.InvoiceTitle,
		InvoiceNumber: req.InvoiceNumber,
		Currency:      currency,
		Email:         req.Email,
		TotalAmount:   req.TotalAmount,
		Status:        status,
		DueDate:       req.DueDate,
		AccountID:     req.AccountID,
	}
	if err := s.repo.Create(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	if len(assigned) > 0 {
		if err := s.repo.ReplaceAssignedTo(invoice, assigned); err != nil {
			return nil, fmt.Errorf("failed to assign profiles: %w", err)
		}
		invoice.AssignedTo = assigned
		s.notifyInvoice(notify.EventAssigned, invoice, profileIDList(assigned))
	}
	if len(teams) > 0 {
		if err := s.repo.ReplaceTeams(invoice, teams); err != nil {
			return nil, fmt.Errorf("failed to assign teams: %w", err)
		}
		invoice.Teams = teams
	}

	return invoice, nil
}

// Get retrieves a single invoice visible to the acting profile
func (s *InvoiceService) Get(p *models.Profile, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrInvoiceNotFound)
	}
	if err := s.policy.Authorize(p, invoice, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return invoice, nil
}

// List returns the invoices the acting profile is allowed to see
func (s *InvoiceService) List(p *models.Profile, filter repository.InvoiceFilter, page, pageSize int) (*InvoiceListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	invoices, total, err := s.repo.List(p, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &InvoiceListResponse{
		Invoices: invoices,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates an invoice the acting profile may modify. A status
// change notifies the assigned profiles.
func (s *InvoiceService) Update(p *models.Profile, id uuid.UUID, req *UpdateInvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	invoice, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrInvoiceNotFound)
	}
	if err := s.policy.Authorize(p, invoice, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(p.OrganizationID, *req.AccountID); err != nil {
			return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
		}
		invoice.AccountID = req.AccountID
	}
	if req.InvoiceTitle != nil {
		invoice.InvoiceTitle = *req.InvoiceTitle
	}
	if req.Currency != nil {
		invoice.Currency = *req.Currency
	}
	if req.Email != nil {
		invoice.Email = *req.Email
	}
	if req.TotalAmount != nil {
		invoice.TotalAmount = *req.TotalAmount
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	statusChanged := false
	if req.Status != nil && *req.Status != invoice.Status {
		invoice.Status = *req.Status
		statusChanged = true
	}
	invoice.UpdatedByID = &p.ID

	if err := s.repo.Update(invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if req.AssignedTo != nil {
		assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAssignedTo(invoice, assigned); err != nil {
			return nil, fmt.Errorf("failed to replace assigned profiles: %w", err)
		}
		invoice.AssignedTo = assigned
		s.notifyInvoice(notify.EventAssigned, invoice, profileIDList(assigned))
	}
	if req.Teams != nil {
		teams, err := resolveTeams(s.teamRepo, p.OrganizationID, *req.Teams)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(invoice, teams); err != nil {
			return nil, fmt.Errorf("failed to replace assigned teams: %w", err)
		}
		invoice.Teams = teams
	}

	if statusChanged {
		s.notifyInvoice(notify.EventStatusChanged, invoice, invoice.GetAssignedProfileIDs())
	}

	return invoice, nil
}

// Delete removes an invoice. Only organization admins and the creator
// may delete.
func (s *InvoiceService) Delete(p *models.Profile, id uuid.UUID) error {
	invoice, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrInvoiceNotFound)
	}
	if err := s.policy.Authorize(p, invoice, authz.ActionDelete, authz.Options{}); err != nil {
		return err
	}
	if err := s.repo.Delete(invoice.ID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *InvoiceService) notifyInvoice(kind notify.EventKind, invoice *models.Invoice, recipients []uuid.UUID) {
	if len(recipients) == 0 {
		return
	}
	dispatchEvent(s.dispatcher, notify.Event{
		Kind:                kind,
		ResourceType:        "invoice",
		ResourceID:          invoice.ID,
		OrganizationID:      invoice.OrganizationID,
		RecipientProfileIDs: recipients,
		OccurredAt:          time.Now().UTC(),
	})
}
