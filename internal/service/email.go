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

// EmailService handles business logic for outbound email records.
// Delivery itself happens in the notification workers; sending an email
// here records it and enqueues an event.
type EmailService struct {
	repo       repository.EmailRepositoryInterface
	policy     *authz.Policy
	dispatcher notify.Dispatcher
	validator  *validator.Validate
}

// NewEmailService creates a new email service
func NewEmailService(repo repository.EmailRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *EmailService {
	return &EmailService{
		repo:       repo,
		policy:     policy,
		dispatcher: dispatcher,
		validator:  validator,
	}
}

// CreateEmailRequest represents the request to draft an email
type CreateEmailRequest struct {
	FromEmail   string `json:"from_email" validate:"required,email,max=255"`
	Recipients  string `json:"recipients" validate:"required"` // comma-separated
	Subject     string `json:"subject" validate:"required,max=255"`
	MessageBody string `json:"message_body"`
}

// EmailListResponse represents a paginated list of email records
type EmailListResponse struct {
	Emails   []models.Email `json:"emails"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create records a draft email for the acting profile's organization
func (s *EmailService) Create(p *models.Profile, req *CreateEmailRequest) (*models.Email, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := &models.Email{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		FromEmail:   req.FromEmail,
		Recipients:  req.Recipients,
		Subject:     req.Subject,
		MessageBody: req.MessageBody,
		Status:      models.EmailStatusDraft,
	}
	if err := s.repo.Create(email); err != nil {
		return nil, fmt.Errorf("failed to create email: %w", err)
	}
	return email, nil
}

// Get retrieves a single email record visible to the acting profile
func (s *EmailService) Get(p *models.Profile, id uuid.UUID) (*models.Email, error) {
	email, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrEmailNotFound)
	}
	if err := s.policy.Authorize(p, email, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return email, nil
}

// List returns the email records the acting profile is allowed to see
func (s *EmailService) List(p *models.Profile, page, pageSize int) (*EmailListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	emails, total, err := s.repo.List(p, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &EmailListResponse{
		Emails:   emails,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Send marks a draft email as sent and enqueues it for delivery.
// Sending an already-sent email is rejected.
func (s *EmailService) Send(p *models.Profile, id uuid.UUID) (*models.Email, error) {
	email, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrEmailNotFound)
	}
	if err := s.policy.Authorize(p, email, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}
	if email.Status == models.EmailStatusSent {
		return nil, apperrors.NewValidationError("status", "email has already been sent")
	}

	now := time.Now().UTC()
	email.Status = models.EmailStatusSent
	email.SentAt = &now
	email.UpdatedByID = &p.ID
	if err := s.repo.Update(email); err != nil {
		return nil, fmt.Errorf("failed to mark email as sent: %w", err)
	}

	dispatchEvent(s.dispatcher, notify.Event{
		Kind:           notify.EventEmailQueued,
		ResourceType:   "email",
		ResourceID:     email.ID,
		OrganizationID: email.OrganizationID,
		OccurredAt:     now,
	})

	return email, nil
}
