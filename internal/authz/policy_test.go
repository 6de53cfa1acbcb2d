package authz_test

import (
	"errors"
	"testing"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProfile(orgID uuid.UUID) *models.Profile {
	return &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         uuid.New(),
		OrganizationID: orgID,
		Role:           models.ProfileRoleUser,
		IsActive:       true,
	}
}

func newAccount(orgID uuid.UUID, createdBy *uuid.UUID) *models.Account {
	return &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: orgID,
			CreatedByID:    createdBy,
		},
		Name: "Acme",
	}
}

func TestAuthorizeCrossTenant(t *testing.T) {
	pol := authz.NewPolicy()
	orgA := uuid.New()
	orgB := uuid.New()

	admin := newProfile(orgA)
	admin.IsOrganizationAdmin = true

	account := newAccount(orgB, nil)

	// The tenant boundary beats every role, including org admin.
	for _, action := range []authz.Action{authz.ActionRead, authz.ActionUpdate, authz.ActionDelete, authz.ActionComment} {
		err := pol.Authorize(admin, account, action, authz.Options{})
		assert.ErrorIs(t, err, apperrors.ErrCrossTenant, "action %s", action)
	}
}

func TestAuthorizeAdminOverride(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	admin := newProfile(orgID)
	admin.IsOrganizationAdmin = true

	other := uuid.New()
	account := newAccount(orgID, &other)

	for _, action := range []authz.Action{authz.ActionRead, authz.ActionUpdate, authz.ActionDelete} {
		assert.NoError(t, pol.Authorize(admin, account, action, authz.Options{}))
	}
}

func TestAuthorizeSuperuser(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	p := newProfile(orgID)
	p.User = models.User{IsSuperuser: true}

	account := newAccount(orgID, nil)
	assert.NoError(t, pol.Authorize(p, account, authz.ActionDelete, authz.Options{}))
}

func TestAuthorizeCreator(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	creator := newProfile(orgID)
	account := newAccount(orgID, &creator.ID)

	assert.NoError(t, pol.Authorize(creator, account, authz.ActionRead, authz.Options{}))
	assert.NoError(t, pol.Authorize(creator, account, authz.ActionUpdate, authz.Options{}))
	assert.NoError(t, pol.Authorize(creator, account, authz.ActionDelete, authz.Options{}))

	t.Run("delete restricted to admins", func(t *testing.T) {
		err := pol.Authorize(creator, account, authz.ActionDelete, authz.Options{DeleteRequiresAdmin: true})
		assert.ErrorIs(t, err, apperrors.ErrAdminRequired)
	})
}

func TestAuthorizeAssignedProfile(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	assignee := newProfile(orgID)
	creator := uuid.New()
	account := newAccount(orgID, &creator)
	account.AssignedTo = []models.Profile{*assignee}

	assert.NoError(t, pol.Authorize(assignee, account, authz.ActionRead, authz.Options{}))
	assert.NoError(t, pol.Authorize(assignee, account, authz.ActionComment, authz.Options{}))

	err := pol.Authorize(assignee, account, authz.ActionUpdate, authz.Options{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	err = pol.Authorize(assignee, account, authz.ActionDelete, authz.Options{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthorizeTeamMembership(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	team := models.Team{TenantModel: models.TenantModel{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID}, Name: "support"}

	member := newProfile(orgID)
	member.Teams = []models.Team{team}

	creator := uuid.New()
	task := &models.Task{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: orgID,
			CreatedByID:    &creator,
		},
		Title: "follow up",
		Teams: []models.Team{team},
	}

	// Team members read and comment but never delete.
	assert.NoError(t, pol.Authorize(member, task, authz.ActionRead, authz.Options{}))
	assert.NoError(t, pol.Authorize(member, task, authz.ActionComment, authz.Options{}))
	assert.ErrorIs(t, pol.Authorize(member, task, authz.ActionDelete, authz.Options{}), apperrors.ErrForbidden)
}

func TestAuthorizeDefaultDeny(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	stranger := newProfile(orgID)
	creator := uuid.New()
	account := newAccount(orgID, &creator)

	for _, action := range []authz.Action{authz.ActionRead, authz.ActionUpdate, authz.ActionDelete, authz.ActionComment} {
		err := pol.Authorize(stranger, account, action, authz.Options{})
		assert.ErrorIs(t, err, apperrors.ErrForbidden, "action %s", action)
	}
}

func TestAuthorizeNilProfile(t *testing.T) {
	pol := authz.NewPolicy()
	account := newAccount(uuid.New(), nil)

	err := pol.Authorize(nil, account, authz.ActionRead, authz.Options{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCanManageOrg(t *testing.T) {
	pol := authz.NewPolicy()
	orgID := uuid.New()

	t.Run("admin allowed", func(t *testing.T) {
		admin := newProfile(orgID)
		admin.Role = models.ProfileRoleAdmin
		assert.NoError(t, pol.CanManageOrg(admin))
	})

	t.Run("regular member denied", func(t *testing.T) {
		member := newProfile(orgID)
		err := pol.CanManageOrg(member)
		assert.ErrorIs(t, err, apperrors.ErrAdminRequired)
		assert.True(t, errors.Is(err, apperrors.ErrAdminRequired))
	})
}
