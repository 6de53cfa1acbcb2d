package service_test

import (
	"testing"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// AccountServiceTestSuite defines the test suite for AccountService
type AccountServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockRepo        *mocks.MockAccountRepositoryInterface
	mockProfileRepo *mocks.MockProfileRepositoryInterface
	mockTeamRepo    *mocks.MockTeamRepositoryInterface
	mockDispatcher  *mocks.MockDispatcher
	accountService  *service.AccountService

	orgID        uuid.UUID
	adminProfile *models.Profile
	userProfile  *models.Profile
}

// SetupTest sets up the test suite
func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockDispatcher = mocks.NewMockDispatcher(suite.ctrl)
	suite.accountService = service.NewAccountService(
		suite.mockRepo,
		suite.mockProfileRepo,
		suite.mockTeamRepo,
		authz.NewPolicy(),
		suite.mockDispatcher,
		validator.New(),
	)

	suite.orgID = uuid.New()
	suite.adminProfile = &models.Profile{
		BaseModel:           models.BaseModel{ID: uuid.New()},
		OrganizationID:      suite.orgID,
		Role:                models.ProfileRoleAdmin,
		IsOrganizationAdmin: true,
		IsActive:            true,
	}
	suite.userProfile = &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: suite.orgID,
		Role:           models.ProfileRoleUser,
		IsActive:       true,
	}
}

// TearDownTest cleans up after each test
func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountServiceTestSuite) TestCreateAccount() {
	req := &service.CreateAccountRequest{
		Name:  "Acme Corp",
		Email: "info@acme.test",
	}

	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(a *models.Account) error {
		a.ID = uuid.New()
		return nil
	})

	account, err := suite.accountService.Create(suite.userProfile, req)

	suite.NoError(err)
	suite.Equal("Acme Corp", account.Name)
	suite.Equal(suite.orgID, account.OrganizationID)
	suite.NotNil(account.CreatedByID)
	suite.Equal(suite.userProfile.ID, *account.CreatedByID)
	suite.Equal(models.AccountStatusOpen, account.Status)
}

func (suite *AccountServiceTestSuite) TestCreateAccountWithAssignees() {
	assignee := models.Profile{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: suite.orgID}
	req := &service.CreateAccountRequest{
		Name:       "Acme Corp",
		AssignedTo: []uuid.UUID{assignee.ID},
	}

	suite.mockProfileRepo.EXPECT().
		GetByIDs(suite.orgID, []uuid.UUID{assignee.ID}).
		Return([]models.Profile{assignee}, nil)
	suite.mockRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockRepo.EXPECT().ReplaceAssignedTo(gomock.Any(), []models.Profile{assignee}).Return(nil)
	suite.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

	account, err := suite.accountService.Create(suite.userProfile, req)

	suite.NoError(err)
	suite.Len(account.AssignedTo, 1)
}

func (suite *AccountServiceTestSuite) TestCreateAccountValidationFails() {
	req := &service.CreateAccountRequest{Name: ""}

	account, err := suite.accountService.Create(suite.userProfile, req)

	suite.Error(err)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestCreateAccountAssigneeOutsideOrg() {
	foreignID := uuid.New()
	req := &service.CreateAccountRequest{
		Name:       "Acme Corp",
		AssignedTo: []uuid.UUID{foreignID},
	}

	// The org-scoped lookup silently drops profiles from other tenants.
	suite.mockProfileRepo.EXPECT().
		GetByIDs(suite.orgID, []uuid.UUID{foreignID}).
		Return([]models.Profile{}, nil)

	account, err := suite.accountService.Create(suite.userProfile, req)

	suite.Error(err)
	suite.Nil(account)
	suite.True(apperrors.IsValidation(err))
}

func (suite *AccountServiceTestSuite) TestGetAccountNotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(suite.orgID, id).Return(nil, gorm.ErrRecordNotFound)

	account, err := suite.accountService.Get(suite.userProfile, id)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountForbiddenForUnrelatedProfile() {
	creator := uuid.New()
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &creator,
		},
		Name: "Acme Corp",
	}
	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)

	got, err := suite.accountService.Get(suite.userProfile, account.ID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestGetAccountAllowedForAssignee() {
	creator := uuid.New()
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &creator,
		},
		Name:       "Acme Corp",
		AssignedTo: []models.Profile{*suite.userProfile},
	}
	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)

	got, err := suite.accountService.Get(suite.userProfile, account.ID)

	suite.NoError(err)
	suite.Equal(account.ID, got.ID)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	filter := repository.AccountFilter{City: "Berlin"}
	suite.mockRepo.EXPECT().
		List(suite.userProfile, filter, 20, 0).
		Return([]models.Account{{Name: "Acme Corp"}}, int64(1), nil)

	resp, err := suite.accountService.List(suite.userProfile, filter, 1, 20)

	suite.NoError(err)
	suite.Equal(int64(1), resp.Total)
	suite.Len(resp.Accounts, 1)
	suite.Equal(1, resp.Page)
	suite.Equal(20, resp.PageSize)
}

func (suite *AccountServiceTestSuite) TestUpdateStatusChangeDispatchesEvent() {
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &suite.userProfile.ID,
		},
		Name:   "Acme Corp",
		Status: models.AccountStatusOpen,
	}
	closed := models.AccountStatusClosed
	req := &service.UpdateAccountRequest{Status: &closed}

	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)
	suite.mockRepo.EXPECT().Update(gomock.Any()).Return(nil)
	suite.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

	updated, err := suite.accountService.Update(suite.userProfile, account.ID, req)

	suite.NoError(err)
	suite.Equal(models.AccountStatusClosed, updated.Status)
	suite.Equal(&suite.userProfile.ID, updated.UpdatedByID)
}

func (suite *AccountServiceTestSuite) TestDeleteByCreator() {
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &suite.userProfile.ID,
		},
	}
	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)
	suite.mockRepo.EXPECT().Delete(account.ID).Return(nil)

	err := suite.accountService.Delete(suite.userProfile, account.ID)

	suite.NoError(err)
}

func (suite *AccountServiceTestSuite) TestDeleteByAssigneeForbidden() {
	creator := uuid.New()
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &creator,
		},
		AssignedTo: []models.Profile{*suite.userProfile},
	}
	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)

	err := suite.accountService.Delete(suite.userProfile, account.ID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestDeleteByAdmin() {
	creator := uuid.New()
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &creator,
		},
	}
	suite.mockRepo.EXPECT().GetByID(suite.orgID, account.ID).Return(account, nil)
	suite.mockRepo.EXPECT().Delete(account.ID).Return(nil)

	err := suite.accountService.Delete(suite.adminProfile, account.ID)

	suite.NoError(err)
}

// TestAccountServiceTestSuite runs the test suite
func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func TestNormalizedPaginationDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockAccountRepositoryInterface(ctrl)
	svc := service.NewAccountService(repo, mocks.NewMockProfileRepositoryInterface(ctrl), mocks.NewMockTeamRepositoryInterface(ctrl), authz.NewPolicy(), mocks.NewMockDispatcher(ctrl), validator.New())

	p := &models.Profile{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: uuid.New(), IsOrganizationAdmin: true}

	// Out-of-range paging collapses to the defaults.
	repo.EXPECT().List(p, repository.AccountFilter{}, 20, 0).Return(nil, int64(0), nil)
	resp, err := svc.List(p, repository.AccountFilter{}, 0, -5)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Page)

	repo.EXPECT().List(p, repository.AccountFilter{}, 100, 100).Return(nil, int64(0), nil)
	_, err = svc.List(p, repository.AccountFilter{}, 2, 500)
	assert.NoError(t, err)
}
