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

// TaskService handles business logic for tasks and their comments and
// attachments
type TaskService struct {
	repo           repository.TaskRepositoryInterface
	accountRepo    repository.AccountRepositoryInterface
	profileRepo    repository.ProfileRepositoryInterface
	teamRepo       repository.TeamRepositoryInterface
	commentRepo    repository.CommentRepositoryInterface
	attachmentRepo repository.AttachmentRepositoryInterface
	policy         *authz.Policy
	dispatcher     notify.Dispatcher
	validator      *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, accountRepo repository.AccountRepositoryInterface, profileRepo repository.ProfileRepositoryInterface, teamRepo repository.TeamRepositoryInterface, commentRepo repository.CommentRepositoryInterface, attachmentRepo repository.AttachmentRepositoryInterface, policy *authz.Policy, dispatcher notify.Dispatcher, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:           repo,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		teamRepo:       teamRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		policy:         policy,
		dispatcher:     dispatcher,
		validator:      validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title      string              `json:"title" validate:"required,min=1,max=200"`
	Status     models.TaskStatus   `json:"status" validate:"omitempty,oneof=New 'In Progress' Completed"`
	Priority   models.TaskPriority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	DueDate    *time.Time          `json:"due_date,omitempty"`
	AccountID  *uuid.UUID          `json:"account_id,omitempty"`
	AssignedTo []uuid.UUID         `json:"assigned_to,omitempty"`
	Teams      []uuid.UUID         `json:"teams,omitempty"`
}

// UpdateTaskRequest represents the request to update a task. Nil fields
// are left unchanged.
type UpdateTaskRequest struct {
	Title      *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Status     *models.TaskStatus   `json:"status,omitempty" validate:"omitempty,oneof=New 'In Progress' Completed"`
	Priority   *models.TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	DueDate    *time.Time           `json:"due_date,omitempty"`
	AccountID  *uuid.UUID           `json:"account_id,omitempty"`
	AssignedTo *[]uuid.UUID         `json:"assigned_to,omitempty"`
	Teams      *[]uuid.UUID         `json:"teams,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []models.Task `json:"tasks"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// CreateCommentRequest represents the request to comment on a task
type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// CreateAttachmentRequest represents the request to attach a file to a task
type CreateAttachmentRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FilePath string `json:"file_path" validate:"required,max=500"`
}

// Create creates a new task owned by the acting profile's organization
func (s *TaskService) Create(p *models.Profile, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(p.OrganizationID, *req.AccountID); err != nil {
			return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
		}
	}

	assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, req.AssignedTo)
	if err != nil {
		return nil, err
	}
	teams, err := resolveTeams(s.teamRepo, p.OrganizationID, req.Teams)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusNew
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Title:     req.Title,
		Status:    status,
		Priority:  priority,
		DueDate:   req.DueDate,
		AccountID: req.AccountID,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(assigned) > 0 {
		if err := s.repo.ReplaceAssignedTo(task, assigned); err != nil {
			return nil, fmt.Errorf("failed to assign profiles: %w", err)
		}
		task.AssignedTo = assigned
		s.notifyTask(notify.EventAssigned, task, profileIDList(assigned))
	}
	if len(teams) > 0 {
		if err := s.repo.ReplaceTeams(task, teams); err != nil {
			return nil, fmt.Errorf("failed to assign teams: %w", err)
		}
		task.Teams = teams
	}

	return task, nil
}

// Get retrieves a single task visible to the acting profile
func (s *TaskService) Get(p *models.Profile, id uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the tasks the acting profile is allowed to see
func (s *TaskService) List(p *models.Profile, filter repository.TaskFilter, page, pageSize int) (*TaskListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	tasks, total, err := s.repo.List(p, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &TaskListResponse{
		Tasks:    tasks,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update updates a task the acting profile may modify. A status change
// notifies the assigned profiles.
func (s *TaskService) Update(p *models.Profile, id uuid.UUID, req *UpdateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionUpdate, authz.Options{}); err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(p.OrganizationID, *req.AccountID); err != nil {
			return nil, translateNotFound(err, apperrors.ErrAccountNotFound)
		}
		task.AccountID = req.AccountID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	statusChanged := false
	if req.Status != nil && *req.Status != task.Status {
		task.Status = *req.Status
		statusChanged = true
	}
	task.UpdatedByID = &p.ID

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if req.AssignedTo != nil {
		assigned, err := resolveProfiles(s.profileRepo, p.OrganizationID, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceAssignedTo(task, assigned); err != nil {
			return nil, fmt.Errorf("failed to replace assigned profiles: %w", err)
		}
		task.AssignedTo = assigned
		s.notifyTask(notify.EventAssigned, task, profileIDList(assigned))
	}
	if req.Teams != nil {
		teams, err := resolveTeams(s.teamRepo, p.OrganizationID, *req.Teams)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTeams(task, teams); err != nil {
			return nil, fmt.Errorf("failed to replace assigned teams: %w", err)
		}
		task.Teams = teams
	}

	if statusChanged {
		s.notifyTask(notify.EventStatusChanged, task, task.GetAssignedProfileIDs())
	}

	return task, nil
}

// Delete removes a task. Only organization admins and the creator may
// delete.
func (s *TaskService) Delete(p *models.Profile, id uuid.UUID) error {
	task, err := s.repo.GetByID(p.OrganizationID, id)
	if err != nil {
		return translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionDelete, authz.Options{}); err != nil {
		return err
	}
	if err := s.repo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment leaves a comment on a task. Assigned profiles may comment
// even when they cannot modify the task itself.
func (s *TaskService) AddComment(p *models.Profile, taskID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.repo.GetByID(p.OrganizationID, taskID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionComment, authz.Options{}); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		Comment:       req.Comment,
		CommentedByID: &p.ID,
		TaskID:        &task.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.notifyTask(notify.EventCommented, task, task.GetAssignedProfileIDs())
	return comment, nil
}

// ListComments returns the comments on a task the acting profile may read
func (s *TaskService) ListComments(p *models.Profile, taskID uuid.UUID) ([]models.Comment, error) {
	task, err := s.repo.GetByID(p.OrganizationID, taskID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetByTask(p.OrganizationID, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment edits a comment. Only the comment author and
// organization admins may edit.
func (s *TaskService) UpdateComment(p *models.Profile, commentID uuid.UUID, req *CreateCommentRequest) (*models.Comment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	comment, err := s.commentRepo.GetByID(p.OrganizationID, commentID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrCommentNotFound)
	}
	if !commentOwnedBy(comment, p) && !p.IsAdmin() && !p.User.IsSuperuser {
		return nil, apperrors.ErrForbidden
	}

	comment.Comment = req.Comment
	comment.UpdatedByID = &p.ID
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment author and
// organization admins may delete.
func (s *TaskService) DeleteComment(p *models.Profile, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(p.OrganizationID, commentID)
	if err != nil {
		return translateNotFound(err, apperrors.ErrCommentNotFound)
	}
	if !commentOwnedBy(comment, p) && !p.IsAdmin() && !p.User.IsSuperuser {
		return apperrors.ErrForbidden
	}
	if err := s.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// AddAttachment attaches a file reference to a task
func (s *TaskService) AddAttachment(p *models.Profile, taskID uuid.UUID, req *CreateAttachmentRequest) (*models.Attachment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	task, err := s.repo.GetByID(p.OrganizationID, taskID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionComment, authz.Options{}); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		TenantModel: models.TenantModel{
			OrganizationID: p.OrganizationID,
			CreatedByID:    &p.ID,
		},
		FileName: req.FileName,
		FilePath: req.FilePath,
		TaskID:   &task.ID,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	return attachment, nil
}

// ListAttachments returns the attachments on a task the acting profile
// may read
func (s *TaskService) ListAttachments(p *models.Profile, taskID uuid.UUID) ([]models.Attachment, error) {
	task, err := s.repo.GetByID(p.OrganizationID, taskID)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrTaskNotFound)
	}
	if err := s.policy.Authorize(p, task, authz.ActionRead, authz.Options{}); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.GetByTask(p.OrganizationID, task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment. Only the uploader and
// organization admins may delete.
func (s *TaskService) DeleteAttachment(p *models.Profile, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.GetByID(p.OrganizationID, attachmentID)
	if err != nil {
		return translateNotFound(err, apperrors.ErrAttachmentNotFound)
	}
	ownedBy := attachment.CreatedByID != nil && *attachment.CreatedByID == p.ID
	if !ownedBy && !p.IsAdmin() && !p.User.IsSuperuser {
		return apperrors.ErrForbidden
	}
	if err := s.attachmentRepo.Delete(attachment.ID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func (s *TaskService) notifyTask(kind notify.EventKind, task *models.Task, recipients []uuid.UUID) {
	if len(recipients) == 0 {
		return
	}
	dispatchEvent(s.dispatcher, notify.Event{
		Kind:                kind,
		ResourceType:        "task",
		ResourceID:          task.ID,
		OrganizationID:      task.OrganizationID,
		RecipientProfileIDs: recipients,
		OccurredAt:          time.Now().UTC(),
	})
}

func commentOwnedBy(comment *models.Comment, p *models.Profile) bool {
	return comment.CommentedByID != nil && *comment.CommentedByID == p.ID
}

func profileIDList(profiles []models.Profile) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids
}
