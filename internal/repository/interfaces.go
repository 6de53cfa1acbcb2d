package repository

import (
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	CreateWithAdmin(user *models.User, org *models.Organization, profile *models.Profile) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByName(name string) (*models.Organization, error)
	GetByAPIKey(apiKey string) (*models.Organization, error)
	Update(org *models.Organization) error
	RotateAPIKey(id uuid.UUID, apiKey string) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// ProfileRepositoryInterface defines the interface for profile repository operations
type ProfileRepositoryInterface interface {
	Create(profile *models.Profile) error
	GetByID(id uuid.UUID) (*models.Profile, error)
	GetActiveByUserAndOrg(userID, orgID uuid.UUID) (*models.Profile, error)
	GetByUserAndOrg(userID, orgID uuid.UUID) (*models.Profile, error)
	GetAdminForOrg(orgID uuid.UUID) (*models.Profile, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Profile, int64, error)
	GetByIDs(orgID uuid.UUID, ids []uuid.UUID) ([]models.Profile, error)
	Update(profile *models.Profile) error
	Delete(id uuid.UUID) error
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(team *models.Team) error
	GetByID(orgID, id uuid.UUID) (*models.Team, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Team, int64, error)
	GetByIDs(orgID uuid.UUID, ids []uuid.UUID) ([]models.Team, error)
	ReplaceUsers(team *models.Team, profiles []models.Profile) error
	Update(team *models.Team) error
	Delete(id uuid.UUID) error
}

// AccountFilter carries caller-supplied listing filters for accounts
type AccountFilter struct {
	Name     string
	City     string
	Industry string
	Status   string
}

// AccountRepositoryInterface defines the interface for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(orgID, id uuid.UUID) (*models.Account, error)
	List(p *models.Profile, filter AccountFilter, limit, offset int) ([]models.Account, int64, error)
	Update(account *models.Account) error
	ReplaceAssignedTo(account *models.Account, profiles []models.Profile) error
	ReplaceTeams(account *models.Account, teams []models.Team) error
	Delete(id uuid.UUID) error
}

// ContactFilter carries caller-supplied listing filters for contacts
type ContactFilter struct {
	Name string
	City string
}

// ContactRepositoryInterface defines the interface for contact repository operations
type ContactRepositoryInterface interface {
	Create(contact *models.Contact) error
	GetByID(orgID, id uuid.UUID) (*models.Contact, error)
	List(p *models.Profile, filter ContactFilter, limit, offset int) ([]models.Contact, int64, error)
	Update(contact *models.Contact) error
	ReplaceAssignedTo(contact *models.Contact, profiles []models.Profile) error
	ReplaceTeams(contact *models.Contact, teams []models.Team) error
	Delete(id uuid.UUID) error
}

// TaskFilter carries caller-supplied listing filters for tasks
type TaskFilter struct {
	Title     string
	Status    string
	Priority  string
	AccountID *uuid.UUID
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByID(orgID, id uuid.UUID) (*models.Task, error)
	List(p *models.Profile, filter TaskFilter, limit, offset int) ([]models.Task, int64, error)
	Update(task *models.Task) error
	ReplaceAssignedTo(task *models.Task, profiles []models.Profile) error
	ReplaceTeams(task *models.Task, teams []models.Team) error
	Delete(id uuid.UUID) error
}

// InvoiceFilter carries caller-supplied listing filters for invoices
type InvoiceFilter struct {
	Status    string
	AccountID *uuid.UUID
}

// InvoiceRepositoryInterface defines the interface for invoice repository operations
type InvoiceRepositoryInterface interface {
	Create(invoice *models.Invoice) error
	GetByID(orgID, id uuid.UUID) (*models.Invoice, error)
	List(p *models.Profile, filter InvoiceFilter, limit, offset int) ([]models.Invoice, int64, error)
	Update(invoice *models.Invoice) error
	ReplaceAssignedTo(invoice *models.Invoice, profiles []models.Profile) error
	ReplaceTeams(invoice *models.Invoice, teams []models.Team) error
	Delete(id uuid.UUID) error
}

// DocumentFilter carries caller-supplied listing filters for documents
type DocumentFilter struct {
	Title  string
	Status string
}

// DocumentRepositoryInterface defines the interface for document repository operations
type DocumentRepositoryInterface interface {
	Create(document *models.Document) error
	GetByID(orgID, id uuid.UUID) (*models.Document, error)
	List(p *models.Profile, filter DocumentFilter, limit, offset int) ([]models.Document, int64, error)
	Update(document *models.Document) error
	ReplaceSharedTo(document *models.Document, profiles []models.Profile) error
	ReplaceTeams(document *models.Document, teams []models.Team) error
	Delete(id uuid.UUID) error
}

// APISettingsRepositoryInterface defines the interface for API settings repository operations
type APISettingsRepositoryInterface interface {
	Create(settings *models.APISettings) error
	GetByID(orgID, id uuid.UUID) (*models.APISettings, error)
	List(p *models.Profile, limit, offset int) ([]models.APISettings, int64, error)
	Update(settings *models.APISettings) error
	Delete(id uuid.UUID) error
}

// EmailRepositoryInterface defines the interface for email repository operations
type EmailRepositoryInterface interface {
	Create(email *models.Email) error
	GetByID(orgID, id uuid.UUID) (*models.Email, error)
	List(p *models.Profile, limit, offset int) ([]models.Email, int64, error)
	Update(email *models.Email) error
}

// CommentRepositoryInterface defines the interface for comment repository operations
type CommentRepositoryInterface interface {
	Create(comment *models.Comment) error
	GetByID(orgID, id uuid.UUID) (*models.Comment, error)
	GetByTask(orgID, taskID uuid.UUID) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uuid.UUID) error
}

// AttachmentRepositoryInterface defines the interface for attachment repository operations
type AttachmentRepositoryInterface interface {
	Create(attachment *models.Attachment) error
	GetByID(orgID, id uuid.UUID) (*models.Attachment, error)
	GetByTask(orgID, taskID uuid.UUID) ([]models.Attachment, error)
	Delete(id uuid.UUID) error
}
