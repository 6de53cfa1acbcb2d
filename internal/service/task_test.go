package service_test

import (
	"testing"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/mocks"
	"crm-backend/internal/notify"
	"crm-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockRepo           *mocks.MockTaskRepositoryInterface
	mockAccountRepo    *mocks.MockAccountRepositoryInterface
	mockProfileRepo    *mocks.MockProfileRepositoryInterface
	mockTeamRepo       *mocks.MockTeamRepositoryInterface
	mockCommentRepo    *mocks.MockCommentRepositoryInterface
	mockAttachmentRepo *mocks.MockAttachmentRepositoryInterface
	mockDispatcher     *mocks.MockDispatcher
	taskService        *service.TaskService

	orgID        uuid.UUID
	adminProfile *models.Profile
	userProfile  *models.Profile
}

// SetupTest sets up the test suite
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.mockAccountRepo = mocks.NewMockAccountRepositoryInterface(suite.ctrl)
	suite.mockProfileRepo = mocks.NewMockProfileRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockCommentRepo = mocks.NewMockCommentRepositoryInterface(suite.ctrl)
	suite.mockAttachmentRepo = mocks.NewMockAttachmentRepositoryInterface(suite.ctrl)
	suite.mockDispatcher = mocks.NewMockDispatcher(suite.ctrl)
	suite.taskService = service.NewTaskService(
		suite.mockRepo,
		suite.mockAccountRepo,
		suite.mockProfileRepo,
		suite.mockTeamRepo,
		suite.mockCommentRepo,
		suite.mockAttachmentRepo,
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
func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TaskServiceTestSuite) TestCreateTaskDefaults() {
	req := &service.CreateTaskRequest{Title: "Follow up with customer"}

	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(t *models.Task) error {
		t.ID = uuid.New()
		return nil
	})

	task, err := suite.taskService.Create(suite.userProfile, req)

	suite.NoError(err)
	suite.Equal(models.TaskStatusNew, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Equal(suite.orgID, task.OrganizationID)
	suite.Equal(suite.userProfile.ID, *task.CreatedByID)
}

func (suite *TaskServiceTestSuite) TestCreateTaskAccountNotFound() {
	accountID := uuid.New()
	req := &service.CreateTaskRequest{Title: "Follow up", AccountID: &accountID}

	suite.mockAccountRepo.EXPECT().GetByID(suite.orgID, accountID).Return(nil, gorm.ErrRecordNotFound)

	task, err := suite.taskService.Create(suite.userProfile, req)

	suite.Nil(task)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
}

func (suite *TaskServiceTestSuite) TestUpdateStatusDispatchesToAssignees() {
	assignee := models.Profile{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: suite.orgID}
	task := &models.Task{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &suite.userProfile.ID,
		},
		Title:      "Follow up",
		Status:     models.TaskStatusNew,
		AssignedTo: []models.Profile{assignee},
	}
	completed := models.TaskStatusCompleted
	req := &service.UpdateTaskRequest{Status: &completed}

	suite.mockRepo.EXPECT().GetByID(suite.orgID, task.ID).Return(task, nil)
	suite.mockRepo.EXPECT().Update(gomock.Any()).Return(nil)
	suite.mockDispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, event notify.Event) error {
			suite.Equal(notify.EventStatusChanged, event.Kind)
			suite.Equal("task", event.ResourceType)
			suite.Equal([]uuid.UUID{assignee.ID}, event.RecipientProfileIDs)
			return nil
		})

	updated, err := suite.taskService.Update(suite.userProfile, task.ID, req)

	suite.NoError(err)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
}

func (suite *TaskServiceTestSuite) TestAddCommentByAssignee() {
	task := &models.Task{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
		},
		Title:      "Follow up",
		AssignedTo: []models.Profile{*suite.userProfile},
	}
	req := &service.CreateCommentRequest{Comment: "Called the customer"}

	suite.mockRepo.EXPECT().GetByID(suite.orgID, task.ID).Return(task, nil)
	suite.mockCommentRepo.EXPECT().Create(gomock.Any()).Return(nil)
	suite.mockDispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

	comment, err := suite.taskService.AddComment(suite.userProfile, task.ID, req)

	suite.NoError(err)
	suite.Equal("Called the customer", comment.Comment)
	suite.Equal(suite.userProfile.ID, *comment.CommentedByID)
	suite.Equal(task.ID, *comment.TaskID)
}

func (suite *TaskServiceTestSuite) TestAddCommentForbiddenForUnrelatedProfile() {
	creator := uuid.New()
	task := &models.Task{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &creator,
		},
		Title: "Follow up",
	}
	req := &service.CreateCommentRequest{Comment: "drive-by"}

	suite.mockRepo.EXPECT().GetByID(suite.orgID, task.ID).Return(task, nil)

	comment, err := suite.taskService.AddComment(suite.userProfile, task.ID, req)

	suite.Nil(comment)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TaskServiceTestSuite) TestUpdateCommentOnlyByAuthor() {
	author := uuid.New()
	comment := &models.Comment{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
		},
		Comment:       "original",
		CommentedByID: &author,
	}
	req := &service.CreateCommentRequest{Comment: "edited"}

	suite.mockCommentRepo.EXPECT().GetByID(suite.orgID, comment.ID).Return(comment, nil)

	updated, err := suite.taskService.UpdateComment(suite.userProfile, comment.ID, req)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TaskServiceTestSuite) TestDeleteCommentByAdmin() {
	author := uuid.New()
	comment := &models.Comment{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
		},
		Comment:       "to remove",
		CommentedByID: &author,
	}

	suite.mockCommentRepo.EXPECT().GetByID(suite.orgID, comment.ID).Return(comment, nil)
	suite.mockCommentRepo.EXPECT().Delete(comment.ID).Return(nil)

	err := suite.taskService.DeleteComment(suite.adminProfile, comment.ID)

	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestAddAttachmentToTask() {
	task := &models.Task{
		TenantModel: models.TenantModel{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: suite.orgID,
			CreatedByID:    &suite.userProfile.ID,
		},
		Title: "Follow up",
	}
	req := &service.CreateAttachmentRequest{FileName: "quote.pdf", FilePath: "uploads/quote.pdf"}

	suite.mockRepo.EXPECT().GetByID(suite.orgID, task.ID).Return(task, nil)
	suite.mockAttachmentRepo.EXPECT().Create(gomock.Any()).Return(nil)

	attachment, err := suite.taskService.AddAttachment(suite.userProfile, task.ID, req)

	suite.NoError(err)
	suite.Equal("quote.pdf", attachment.FileName)
	suite.Equal(task.ID, *attachment.TaskID)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskNotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(suite.orgID, id).Return(nil, gorm.ErrRecordNotFound)

	err := suite.taskService.Delete(suite.userProfile, id)

	suite.ErrorIs(err, apperrors.ErrTaskNotFound)
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
