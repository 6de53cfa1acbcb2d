package auth_test

import (
	"testing"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for the auth Service
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserRepo    *mocks.MockUserRepositoryInterface
	mockProfileRepo *mocks.MockProfileRepositoryInterface
	mockOrgRepo     *mocks.MockOrganizationRepositoryInterface
	cfg             *config.Config
	service         *auth.Service

	user *models.User
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.cfg = &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiryMinutes: 60,
	}
	suite.service = auth.NewService(suite.cfg, suite.mockUserRepo, suite.mockProfileRepo, suite.mockOrgRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.user = &models.User{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Email:        "jane@example.test",
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) TestGenerateAndValidateJWT() {
	token, err := suite.service.GenerateJWT(suite.user)
	suite.NoError(err)
	suite.NotEmpty(token)

	claims, err := suite.service.ValidateJWT(token)
	suite.NoError(err)
	suite.Equal(suite.user.ID.String(), claims.UserID)
	suite.Equal(suite.user.Email, claims.Email)
	suite.Equal("crm-backend", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestValidateJWTExpired() {
	expiredCfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpiryMinutes: -5,
	}
	expiredService := auth.NewService(expiredCfg, suite.mockUserRepo, suite.mockProfileRepo, suite.mockOrgRepo)

	token, err := expiredService.GenerateJWT(suite.user)
	suite.NoError(err)

	_, err = suite.service.ValidateJWT(token)
	suite.ErrorIs(err, apperrors.ErrTokenExpired)
}

func (suite *AuthServiceTestSuite) TestValidateJWTWrongSecret() {
	otherCfg := &config.Config{
		JWTSecret:        "other-secret",
		JWTExpiryMinutes: 60,
	}
	otherService := auth.NewService(otherCfg, suite.mockUserRepo, suite.mockProfileRepo, suite.mockOrgRepo)

	token, err := otherService.GenerateJWT(suite.user)
	suite.NoError(err)

	_, err = suite.service.ValidateJWT(token)
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (suite *AuthServiceTestSuite) TestValidateJWTGarbage() {
	_, err := suite.service.ValidateJWT("not-a-token")
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	resp, err := suite.service.Login(suite.user.Email, "correct-horse")
	suite.NoError(err)
	suite.Equal("Bearer", resp.TokenType)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(suite.user.Email, resp.User.Email)

	claims, err := suite.service.ValidateJWT(resp.AccessToken)
	suite.NoError(err)
	suite.Equal(suite.user.ID.String(), claims.UserID)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	_, err := suite.service.Login(suite.user.Email, "wrong")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	suite.mockUserRepo.EXPECT().GetByEmail("nobody@example.test").Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.Login("nobody@example.test", "whatever")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginInactiveUser() {
	suite.user.IsActive = false
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)

	_, err := suite.service.Login(suite.user.Email, "correct-horse")
	suite.ErrorIs(err, apperrors.ErrUserInactive)
}

func (suite *AuthServiceTestSuite) TestRefreshRotatesToken() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)
	resp, err := suite.service.Login(suite.user.Email, "correct-horse")
	suite.Require().NoError(err)

	suite.mockUserRepo.EXPECT().GetByID(suite.user.ID).Return(suite.user, nil)
	refreshed, err := suite.service.Refresh(resp.RefreshToken)
	suite.NoError(err)
	suite.NotEmpty(refreshed.AccessToken)
	suite.NotEqual(resp.RefreshToken, refreshed.RefreshToken)

	// The consumed token no longer works
	_, err = suite.service.Refresh(resp.RefreshToken)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestRefreshUnknownToken() {
	_, err := suite.service.Refresh("never-issued")
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestLogoutInvalidatesRefreshToken() {
	suite.mockUserRepo.EXPECT().GetByEmail(suite.user.Email).Return(suite.user, nil)
	resp, err := suite.service.Login(suite.user.Email, "correct-horse")
	suite.Require().NoError(err)

	suite.service.Logout(resp.RefreshToken)

	_, err = suite.service.Refresh(resp.RefreshToken)
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AuthServiceTestSuite) TestResolveProfile() {
	orgID := uuid.New()
	profile := &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         suite.user.ID,
		OrganizationID: orgID,
		IsActive:       true,
		Organization:   models.Organization{IsActive: true},
	}
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, orgID).Return(profile, nil)

	resolved, err := suite.service.ResolveProfile(suite.user.ID, orgID)
	suite.NoError(err)
	suite.Equal(profile.ID, resolved.ID)
}

func (suite *AuthServiceTestSuite) TestResolveProfileInactiveOrganization() {
	orgID := uuid.New()
	profile := &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         suite.user.ID,
		OrganizationID: orgID,
		IsActive:       true,
		Organization:   models.Organization{IsActive: false},
	}
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, orgID).Return(profile, nil)

	// A deactivated organization is unreachable via bearer tokens, same
	// as via API keys.
	_, err := suite.service.ResolveProfile(suite.user.ID, orgID)
	suite.ErrorIs(err, apperrors.ErrProfileNotFound)
}

func (suite *AuthServiceTestSuite) TestResolveProfileNotFound() {
	orgID := uuid.New()
	suite.mockProfileRepo.EXPECT().GetActiveByUserAndOrg(suite.user.ID, orgID).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.service.ResolveProfile(suite.user.ID, orgID)
	suite.ErrorIs(err, apperrors.ErrProfileNotFound)
}

func (suite *AuthServiceTestSuite) TestResolveAPIKey() {
	org := &models.Organization{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Acme Corp",
		APIKey:    "abc123",
		IsActive:  true,
	}
	admin := &models.Profile{
		BaseModel:           models.BaseModel{ID: uuid.New()},
		OrganizationID:      org.ID,
		Role:                models.ProfileRoleAdmin,
		IsOrganizationAdmin: true,
		IsActive:            true,
	}
	suite.mockOrgRepo.EXPECT().GetByAPIKey("abc123").Return(org, nil)
	suite.mockProfileRepo.EXPECT().GetAdminForOrg(org.ID).Return(admin, nil)

	resolvedOrg, resolvedProfile, err := suite.service.ResolveAPIKey("abc123")
	suite.NoError(err)
	suite.Equal(org.ID, resolvedOrg.ID)
	suite.Equal(admin.ID, resolvedProfile.ID)
}

func (suite *AuthServiceTestSuite) TestResolveAPIKeyInvalid() {
	suite.mockOrgRepo.EXPECT().GetByAPIKey("bogus").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := suite.service.ResolveAPIKey("bogus")
	suite.ErrorIs(err, apperrors.ErrInvalidAPIKey)
}

func (suite *AuthServiceTestSuite) TestRegister() {
	req := &auth.RegisterRequest{
		OrganizationName: "Acme Corp",
		Email:            "founder@acme.test",
		Password:         "long-enough-pw",
		FirstName:        "Ada",
	}

	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound)
	suite.mockOrgRepo.EXPECT().GetByName(req.OrganizationName).Return(nil, gorm.ErrRecordNotFound)
	suite.mockOrgRepo.EXPECT().CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(u *models.User, o *models.Organization, p *models.Profile) error {
			u.ID = uuid.New()
			o.ID = uuid.New()
			p.ID = uuid.New()
			suite.Equal(req.Email, u.Email)
			suite.True(u.IsActive)
			suite.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
			suite.Equal(req.OrganizationName, o.Name)
			suite.NotEmpty(o.APIKey)
			suite.Equal(models.ProfileRoleAdmin, p.Role)
			suite.True(p.IsOrganizationAdmin)
			return nil
		})

	tokens, org, err := suite.service.Register(req)
	suite.NoError(err)
	suite.NotNil(org)
	suite.NotEmpty(tokens.AccessToken)
}

func (suite *AuthServiceTestSuite) TestRegisterFailedSignupCanRetry() {
	req := &auth.RegisterRequest{
		OrganizationName: "Acme Corp",
		Email:            "founder@acme.test",
		Password:         "long-enough-pw",
	}

	// The writes happen in one transaction, so a failure must leave no
	// user row behind and the same email retries cleanly.
	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(nil, gorm.ErrRecordNotFound).Times(2)
	suite.mockOrgRepo.EXPECT().GetByName(req.OrganizationName).Return(nil, gorm.ErrRecordNotFound).Times(2)
	failed := suite.mockOrgRepo.EXPECT().CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(gorm.ErrInvalidTransaction)
	suite.mockOrgRepo.EXPECT().CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any()).
		After(failed).
		DoAndReturn(func(u *models.User, o *models.Organization, p *models.Profile) error {
			u.ID = uuid.New()
			o.ID = uuid.New()
			p.ID = uuid.New()
			return nil
		})

	_, _, err := suite.service.Register(req)
	suite.Error(err)

	tokens, org, err := suite.service.Register(req)
	suite.NoError(err)
	suite.NotNil(org)
	suite.NotEmpty(tokens.AccessToken)
}

func (suite *AuthServiceTestSuite) TestRegisterExistingEmail() {
	req := &auth.RegisterRequest{
		OrganizationName: "Acme Corp",
		Email:            suite.user.Email,
		Password:         "long-enough-pw",
	}
	suite.mockUserRepo.EXPECT().GetByEmail(req.Email).Return(suite.user, nil)

	_, _, err := suite.service.Register(req)
	suite.ErrorIs(err, apperrors.ErrUserExists)
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestGenerateAPIKey(t *testing.T) {
	first, err := auth.GenerateAPIKey()
	assert.NoError(t, err)
	assert.Len(t, first, 40)

	second, err := auth.GenerateAPIKey()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
