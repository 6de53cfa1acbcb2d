package service_test

import (
	"testing"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// ProfileServiceTestSuite defines the test suite for ProfileService
type ProfileServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockProfileRepositoryInterface
	mockUserRepo   *mocks.MockUserRepositoryInterface
	profileService *service.ProfileService

	orgID        uuid.UUID
	adminProfile *models.Profile
	userProfile  *models.Profile
	member       *models.User
}

// SetupTest sets up the test suite
func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.profileService = service.NewProfileService(
		suite.mockRepo,
		suite.mockUserRepo,
		authz.NewPolicy(),
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
	suite.member = &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "bob@example.test",
		IsActive:  true,
	}
}

// TearDownTest cleans up after each test
func (suite *ProfileServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ProfileServiceTestSuite) TestInviteExistingUser() {
	req := &service.InviteProfileRequest{
		Email: suite.member.Email,
		Role:  models.ProfileRoleManager,
	}

	suite.mockUserRepo.EXPECT().GetByEmail(suite.member.Email).Return(suite.member, nil)
	suite.mockRepo.EXPECT().GetByUserAndOrg(suite.member.ID, suite.orgID).Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(p *models.Profile) error {
		p.ID = uuid.New()
		return nil
	})

	profile, err := suite.profileService.Invite(suite.adminProfile, req)

	suite.NoError(err)
	suite.Equal(suite.member.ID, profile.UserID)
	suite.Equal(suite.orgID, profile.OrganizationID)
	suite.Equal(models.ProfileRoleManager, profile.Role)
	suite.True(profile.IsActive)
}

func (suite *ProfileServiceTestSuite) TestInviteCreatesUnknownUser() {
	req := &service.InviteProfileRequest{Email: "new@example.test"}

	suite.mockUserRepo.EXPECT().GetByEmail("new@example.test").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.ID = uuid.New()
		suite.Equal("new@example.test", u.Email)
		suite.NotEmpty(u.PasswordHash)
		return nil
	})
	suite.mockRepo.EXPECT().GetByUserAndOrg(gomock.Any(), suite.orgID).Return(nil, gorm.ErrRecordNotFound)
	suite.mockRepo.EXPECT().Create(gomock.Any()).Return(nil)

	profile, err := suite.profileService.Invite(suite.adminProfile, req)

	suite.NoError(err)
	suite.Equal(models.ProfileRoleUser, profile.Role)
}

func (suite *ProfileServiceTestSuite) TestInviteActiveMemberConflicts() {
	req := &service.InviteProfileRequest{Email: suite.member.Email}
	existing := &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         suite.member.ID,
		OrganizationID: suite.orgID,
		IsActive:       true,
	}

	suite.mockUserRepo.EXPECT().GetByEmail(suite.member.Email).Return(suite.member, nil)
	suite.mockRepo.EXPECT().GetByUserAndOrg(suite.member.ID, suite.orgID).Return(existing, nil)

	_, err := suite.profileService.Invite(suite.adminProfile, req)
	suite.ErrorIs(err, apperrors.ErrProfileExists)
}

func (suite *ProfileServiceTestSuite) TestInviteReactivatesDeactivatedMember() {
	req := &service.InviteProfileRequest{
		Email:          suite.member.Email,
		Role:           models.ProfileRoleManager,
		HasSalesAccess: true,
	}
	existing := &models.Profile{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		UserID:         suite.member.ID,
		OrganizationID: suite.orgID,
		Role:           models.ProfileRoleUser,
		IsActive:       false,
	}

	// The deactivated row still occupies the (user, org) uniqueness
	// slot; re-inviting must reactivate it, not insert a duplicate.
	suite.mockUserRepo.EXPECT().GetByEmail(suite.member.Email).Return(suite.member, nil)
	suite.mockRepo.EXPECT().GetByUserAndOrg(suite.member.ID, suite.orgID).Return(existing, nil)
	suite.mockRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(p *models.Profile) error {
		suite.Equal(existing.ID, p.ID)
		suite.True(p.IsActive)
		return nil
	})

	profile, err := suite.profileService.Invite(suite.adminProfile, req)

	suite.NoError(err)
	suite.Equal(existing.ID, profile.ID)
	suite.True(profile.IsActive)
	suite.Equal(models.ProfileRoleManager, profile.Role)
	suite.True(profile.HasSalesAccess)
}

func (suite *ProfileServiceTestSuite) TestInviteRequiresAdmin() {
	req := &service.InviteProfileRequest{Email: suite.member.Email}

	_, err := suite.profileService.Invite(suite.userProfile, req)
	suite.ErrorIs(err, apperrors.ErrAdminRequired)
}

func (suite *ProfileServiceTestSuite) TestDeactivateThenReinvite() {
	suite.mockRepo.EXPECT().GetByID(suite.userProfile.ID).Return(suite.userProfile, nil)
	suite.mockRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(p *models.Profile) error {
		suite.False(p.IsActive)
		return nil
	})

	err := suite.profileService.Deactivate(suite.adminProfile, suite.userProfile.ID)
	suite.Require().NoError(err)

	deactivated := &models.Profile{
		BaseModel:      suite.userProfile.BaseModel,
		UserID:         suite.member.ID,
		OrganizationID: suite.orgID,
		Role:           models.ProfileRoleUser,
		IsActive:       false,
	}
	suite.mockUserRepo.EXPECT().GetByEmail(suite.member.Email).Return(suite.member, nil)
	suite.mockRepo.EXPECT().GetByUserAndOrg(suite.member.ID, suite.orgID).Return(deactivated, nil)
	suite.mockRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(p *models.Profile) error {
		suite.True(p.IsActive)
		return nil
	})

	profile, err := suite.profileService.Invite(suite.adminProfile, &service.InviteProfileRequest{Email: suite.member.Email})
	suite.NoError(err)
	suite.Equal(deactivated.ID, profile.ID)
}

// TestProfileServiceTestSuite runs the test suite
func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
