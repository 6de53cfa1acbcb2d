package testutils

import (
	"time"

	"crm-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Test Organization " + id.String()[:8],
		APIKey:   "test-key-" + id.String(),
		IsActive: true,
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		// Unique email per user to satisfy the unique index
		Email:        id.String()[:8] + "@test.example",
		PasswordHash: "$2a$04$notachecked.hash.for.tests000000000000000000000000000",
		FirstName:    "Jane",
		LastName:     "Doe",
		IsActive:     true,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// ProfileFactory provides methods to create test Profile data
type ProfileFactory struct{}

// NewProfileFactory creates a new ProfileFactory
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{}
}

// Create creates a test Profile with default values. Callers must set
// UserID and OrganizationID to persisted rows before saving.
func (f *ProfileFactory) Create() *models.Profile {
	return &models.Profile{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Role:     models.ProfileRoleUser,
		IsActive: true,
	}
}

// WithMembership sets the user and organization for the profile
func (f *ProfileFactory) WithMembership(userID, orgID uuid.UUID) *models.Profile {
	profile := f.Create()
	profile.UserID = userID
	profile.OrganizationID = orgID
	return profile
}

// WithRole sets a custom role for the profile
func (f *ProfileFactory) WithRole(userID, orgID uuid.UUID, role models.ProfileRole) *models.Profile {
	profile := f.WithMembership(userID, orgID)
	profile.Role = role
	if role == models.ProfileRoleAdmin {
		profile.IsOrganizationAdmin = true
	}
	return profile
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team in the given organization
func (f *TeamFactory) Create(orgID uuid.UUID) *models.Team {
	id := uuid.New()
	return &models.Team{
		TenantModel: models.TenantModel{
			BaseModel: models.BaseModel{
				ID:        id,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			OrganizationID: orgID,
		},
		Name:        "Test Team " + id.String()[:8],
		Description: "A test team",
	}
}

// AccountFactory provides methods to create test Account data
type AccountFactory struct{}

// NewAccountFactory creates a new AccountFactory
func NewAccountFactory() *AccountFactory {
	return &AccountFactory{}
}

// Create creates a test Account in the given organization
func (f *AccountFactory) Create(orgID uuid.UUID, createdBy *uuid.UUID) *models.Account {
	id := uuid.New()
	return &models.Account{
		TenantModel: models.TenantModel{
			BaseModel: models.BaseModel{
				ID:        id,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			OrganizationID: orgID,
			CreatedByID:    createdBy,
		},
		Name:   "Test Account " + id.String()[:8],
		Status: models.AccountStatusOpen,
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task in the given organization
func (f *TaskFactory) Create(orgID uuid.UUID, createdBy *uuid.UUID) *models.Task {
	id := uuid.New()
	return &models.Task{
		TenantModel: models.TenantModel{
			BaseModel: models.BaseModel{
				ID:        id,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			OrganizationID: orgID,
			CreatedByID:    createdBy,
		},
		Title:    "Test Task " + id.String()[:8],
		Status:   models.TaskStatusNew,
		Priority: models.TaskPriorityMedium,
	}
}
