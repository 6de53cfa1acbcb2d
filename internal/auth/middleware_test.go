package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	"crm-backend/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// MiddlewareTestSuite defines the test suite for the tenant resolver
type MiddlewareTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockProfileRepo *mocks.MockProfileRepositoryInterface
	mockOrgRepo     *mocks.MockOrganizationRepositoryInterface
	service         *auth.Service
	router          *gin.Engine

	user    *models.User
	org     *models.Organization
	profile *models.Profile
	token   string
}

// SetupTest sets up the test suite
func (suite *MiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiryMinutes: 60,
	}
	suite.service = auth.NewService(cfg, suite.mockUserRepo, suite.mockProfileRepo, suite.mockOrgRepo)

	suite.user = &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "jane@example.test",
		IsActive:  true,
	}
	suite.org = &models.Organization{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Acme Corp",
		IsActive:  true,
	}
	suite.profile = &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         suite.user.ID,
		OrganizationID: suite.org.ID,
		Role:           models.ProfileRoleUser,
		IsActive:       true,
		User:           *suite.user,
		Organization:   *suite.org,
	}

	token, err := suite.service.GenerateJWT(suite.user)
	suite.Require().NoError(err)
	suite.token = token

	middleware := auth.NewMiddleware(suite.service)
	suite.router = gin.New()
	suite.router.GET("/open", middleware.ResolveTenant(), func(c *gin.Context) {
		if profile, ok := auth.GetRequestProfile(c); ok {
			c.JSON(http.StatusOK, gin.H{"profile_id": profile.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	suite.router.GET("/protected", middleware.ResolveTenant(), middleware.RequireProfile(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	suite.router.GET("/admin", middleware.ResolveTenant(), middleware.RequireProfile(), middleware.RequireOrgAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

// TearDownTest cleans up after each test
func (suite *MiddlewareTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MiddlewareTestSuite) perform(path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MiddlewareTestSuite) TestNoCredentialsPassesThrough() {
	w := suite.perform("/open", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "anonymous")
}

func (suite *MiddlewareTestSuite) TestMalformedAuthorizationHeader() {
	w := suite.perform("/open", map[string]string{"Authorization": suite.token})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MiddlewareTestSuite) TestInvalidToken() {
	w := suite.perform("/open", map[string]string{"Authorization": "Bearer garbage"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MiddlewareTestSuite) TestBearerWithoutOrgHeader() {
	w := suite.perform("/open", map[string]string{"Authorization": "Bearer " + suite.token})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MiddlewareTestSuite) TestBearerWithBadOrgHeader() {
	w := suite.perform("/open", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  "not-a-uuid",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MiddlewareTestSuite) TestBearerWithoutMembership() {
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, suite.org.ID).Return(nil, gorm.ErrRecordNotFound)

	w := suite.perform("/open", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  suite.org.ID.String(),
	})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MiddlewareTestSuite) TestBearerWithInactiveOrganization() {
	suite.profile.Organization.IsActive = false
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, suite.org.ID).Return(suite.profile, nil)

	w := suite.perform("/open", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  suite.org.ID.String(),
	})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MiddlewareTestSuite) TestBearerResolvesProfile() {
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, suite.org.ID).Return(suite.profile, nil)

	w := suite.perform("/open", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  suite.org.ID.String(),
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), suite.profile.ID.String())
}

func (suite *MiddlewareTestSuite) TestInvalidAPIKey() {
	suite.mockOrgRepo.EXPECT().GetByAPIKey("bogus").Return(nil, gorm.ErrRecordNotFound)

	w := suite.perform("/open", map[string]string{auth.HeaderAPIKey: "bogus"})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MiddlewareTestSuite) TestAPIKeyResolvesAdminProfile() {
	suite.mockOrgRepo.EXPECT().GetByAPIKey("valid-key").Return(suite.org, nil)
	adminProfile := &models.Profile{
		BaseModel:           models.BaseModel{ID: uuid.New()},
		OrganizationID:      suite.org.ID,
		Role:                models.ProfileRoleAdmin,
		IsOrganizationAdmin: true,
		IsActive:            true,
	}
	suite.mockProfileRepo.EXPECT().GetAdminForOrg(suite.org.ID).Return(adminProfile, nil)

	w := suite.perform("/open", map[string]string{auth.HeaderAPIKey: "valid-key"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), adminProfile.ID.String())
}

func (suite *MiddlewareTestSuite) TestRequireProfileRejectsAnonymous() {
	w := suite.perform("/protected", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MiddlewareTestSuite) TestRequireOrgAdminRejectsMember() {
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, suite.org.ID).Return(suite.profile, nil)

	w := suite.perform("/admin", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  suite.org.ID.String(),
	})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *MiddlewareTestSuite) TestRequireOrgAdminAllowsAdmin() {
	suite.profile.IsOrganizationAdmin = true
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, suite.org.ID).Return(suite.profile, nil)

	w := suite.perform("/admin", map[string]string{
		"Authorization": "Bearer " + suite.token,
		auth.HeaderOrg:  suite.org.ID.String(),
	})
	suite.Equal(http.StatusOK, w.Code)
}

// TestMiddlewareTestSuite runs the test suite
func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
