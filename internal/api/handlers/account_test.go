package handlers_test

import (
	"net/http"
	"testing"

	"crm-backend/internal/api/handlers"
	"crm-backend/internal/auth"
	"crm-backend/internal/authz"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	"crm-backend/internal/mocks"
	"crm-backend/internal/notify"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"
	"crm-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const testAPIKey = "handler-test-key"

// AccountHandlerTestSuite drives the account endpoints through the full
// middleware chain, authenticating with an organization API key
type AccountHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockRepo        *mocks.MockAccountRepositoryInterface
	mockProfileRepo *mocks.MockProfileRepositoryInterface
	mockTeamRepo    *mocks.MockTeamRepositoryInterface
	mockOrgRepo     *mocks.MockOrganizationRepositoryInterface
	mockUserRepo    *mocks.MockUserRepositoryInterface
	http            *testutils.HTTPTestSuite

	org   *models.Organization
	admin *models.Profile
}

// SetupTest sets up the test suite
func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)

	suite.org = &models.Organization{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Acme Corp",
		APIKey:    testAPIKey,
		IsActive:  true,
	}
	suite.admin = &models.Profile{
		BaseModel:           models.BaseModel{ID: uuid.New()},
		OrganizationID:      suite.org.ID,
		Role:                models.ProfileRoleAdmin,
		IsOrganizationAdmin: true,
		IsActive:            true,
	}
	suite.mockOrgRepo.EXPECT().GetByAPIKey(testAPIKey).Return(suite.org, nil).AnyTimes()
	suite.mockProfileRepo.EXPECT().GetAdminForOrg(suite.org.ID).Return(suite.admin, nil).AnyTimes()

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMinutes: 60}
	authService := auth.NewService(cfg, suite.mockUserRepo, suite.mockProfileRepo, suite.mockOrgRepo)
	authMiddleware := auth.NewMiddleware(authService)

	accountService := service.NewAccountService(
		suite.mockRepo,
		suite.mockProfileRepo,
		suite.mockTeamRepo,
		authz.NewPolicy(),
		notify.NoopDispatcher{},
		validator.New(),
	)
	handler := handlers.NewAccountHandler(accountService)

	suite.http = testutils.SetupHTTPTest()
	api := suite.http.Router.Group("/api/v1")
	api.Use(authMiddleware.ResolveTenant())
	api.Use(authMiddleware.RequireProfile())
	{
		api.POST("/accounts", handler.CreateAccount)
		api.GET("/accounts", handler.ListAccounts)
		api.GET("/accounts/:id", handler.GetAccount)
		api.DELETE("/accounts/:id", handler.DeleteAccount)
	}
}

// TearDownTest cleans up after each test
func (suite *AccountHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccountHandlerTestSuite) TestCreateAccount() {
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(a *models.Account) error {
		a.ID = uuid.New()
		suite.Equal(suite.org.ID, a.OrganizationID)
		return nil
	})

	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/accounts",
		service.CreateAccountRequest{Name: "Initech"},
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	var created models.Account
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &created)
	suite.Equal("Initech", created.Name)
	suite.Equal(models.AccountStatusOpen, created.Status)
}

func (suite *AccountHandlerTestSuite) TestCreateAccountMissingName() {
	recorder := suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/accounts",
		service.CreateAccountRequest{Email: "x@y.test"},
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountNotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(suite.org.ID, id).Return(nil, gorm.ErrRecordNotFound)

	recorder := suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/accounts/"+id.String(), nil,
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	suite.Equal(http.StatusNotFound, recorder.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBadID() {
	recorder := suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/accounts/not-a-uuid", nil,
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	suite.Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	suite.mockRepo.EXPECT().
		List(gomock.Any(), repository.AccountFilter{City: "Austin"}, 20, 0).
		Return([]models.Account{{Name: "Initech", BillingCity: "Austin"}}, int64(1), nil)

	recorder := suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/accounts?city=Austin", nil,
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	var resp service.AccountListResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Equal(int64(1), resp.Total)
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal("Initech", resp.Accounts[0].Name)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	account := &models.Account{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.org.ID,
			CreatedByID:    &suite.admin.ID,
		},
		Name: "Initech",
	}
	suite.mockRepo.EXPECT().GetByID(suite.org.ID, account.ID).Return(account, nil)
	suite.mockRepo.EXPECT().Delete(account.ID).Return(nil)

	recorder := suite.http.MakeRequestWithHeaders(http.MethodDelete, "/api/v1/accounts/"+account.ID.String(), nil,
		map[string]string{auth.HeaderAPIKey: testAPIKey})

	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *AccountHandlerTestSuite) TestUnauthenticatedRejected() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/v1/accounts", nil)
	suite.Equal(http.StatusUnauthorized, recorder.Code)
}

// TestAccountHandlerTestSuite runs the test suite
func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
