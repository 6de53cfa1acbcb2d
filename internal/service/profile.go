package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"crm-backend/internal/authz"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileService handles organization membership. A profile binds one
// user to one organization; users join an organization by being invited
// here.
type ProfileService struct {
	repo      repository.ProfileRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	policy    *authz.Policy
	validator *validator.Validate
}

// NewProfileService creates a new profile service
func NewProfileService(repo repository.ProfileRepositoryInterface, userRepo repository.UserRepositoryInterface, policy *authz.Policy, validator *validator.Validate) *ProfileService {
	return &ProfileService{
		repo:      repo,
		userRepo:  userRepo,
		policy:    policy,
		validator: validator,
	}
}

// InviteProfileRequest represents the request to add a member to the
// organization. If no user with the email exists one is created with a
// random password; they reset it through the usual flow.
type InviteProfileRequest struct {
	Email              string             `json:"email" validate:"required,email,max=255"`
	FirstName          string             `json:"first_name" validate:"max=100"`
	LastName           string             `json:"last_name" validate:"max=100"`
	Role               models.ProfileRole `json:"role" validate:"omitempty,oneof=ADMIN MANAGER USER"`
	Phone              string             `json:"phone" validate:"max=20"`
	HasSalesAccess     bool               `json:"has_sales_access"`
	HasMarketingAccess bool               `json:"has_marketing_access"`
}

// UpdateProfileRequest represents the request to change a member's role
// or access flags. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Role                *models.ProfileRole `json:"role,omitempty" validate:"omitempty,oneof=ADMIN MANAGER USER"`
	Phone               *string             `json:"phone,omitempty" validate:"omitempty,max=20"`
	HasSalesAccess      *bool               `json:"has_sales_access,omitempty"`
	HasMarketingAccess  *bool               `json:"has_marketing_access,omitempty"`
	IsOrganizationAdmin *bool               `json:"is_organization_admin,omitempty"`
}

// ProfileListResponse represents a paginated list of organization members
type ProfileListResponse struct {
	Profiles []models.Profile `json:"profiles"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Invite adds a member to the acting profile's organization. Admin only.
func (s *ProfileService) Invite(p *models.Profile, req *InviteProfileRequest) (*models.Profile, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		password, err := randomPassword()
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user = &models.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsActive:     true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	role := req.Role
	if role == "" {
		role = models.ProfileRoleUser
	}

	// The (user, org) pair is unique including deactivated memberships,
	// so the lookup must not filter on the active flag: re-inviting a
	// removed member reactivates their profile instead of colliding
	// with the hidden row.
	existing, err := s.repo.GetByUserAndOrg(user.ID, p.OrganizationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		if existing.IsActive {
			return nil, apperrors.ErrProfileExists
		}
		existing.IsActive = true
		existing.Role = role
		existing.Phone = req.Phone
		existing.HasSalesAccess = req.HasSalesAccess
		existing.HasMarketingAccess = req.HasMarketingAccess
		if err := s.repo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate profile: %w", err)
		}
		existing.User = *user
		return existing, nil
	}

	profile := &models.Profile{
		UserID:             user.ID,
		OrganizationID:     p.OrganizationID,
		Role:               role,
		Phone:              req.Phone,
		HasSalesAccess:     req.HasSalesAccess,
		HasMarketingAccess: req.HasMarketingAccess,
		IsActive:           true,
	}
	if err := s.repo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	profile.User = *user
	return profile, nil
}

// Get retrieves a member of the acting profile's organization
func (s *ProfileService) Get(p *models.Profile, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetByID(id)
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrProfileNotFound)
	}
	// Membership lookups never cross the tenant boundary.
	if profile.OrganizationID != p.OrganizationID {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

// List returns the members of the acting profile's organization
func (s *ProfileService) List(p *models.Profile, page, pageSize int) (*ProfileListResponse, error) {
	limit, offset := normalizePagination(page, pageSize)
	profiles, total, err := s.repo.GetByOrganizationID(p.OrganizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &ProfileListResponse{
		Profiles: profiles,
		Total:    total,
		Page:     page,
		PageSize: limit,
	}, nil
}

// Update changes a member's role or access flags. Admin only; admins
// cannot change their own role or admin flag.
func (s *ProfileService) Update(p *models.Profile, id uuid.UUID, req *UpdateProfileRequest) (*models.Profile, error) {
	if err := s.policy.CanManageOrg(p); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.Get(p, id)
	if err != nil {
		return nil, err
	}

	if profile.ID == p.ID && (req.Role != nil || req.IsOrganizationAdmin != nil) {
		return nil, apperrors.NewValidationError("profile", "cannot change your own role")
	}

	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.HasSalesAccess != nil {
		profile.HasSalesAccess = *req.HasSalesAccess
	}
	if req.HasMarketingAccess != nil {
		profile.HasMarketingAccess = *req.HasMarketingAccess
	}
	if req.IsOrganizationAdmin != nil {
		profile.IsOrganizationAdmin = *req.IsOrganizationAdmin
	}

	if err := s.repo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// Deactivate removes a member from the organization by deactivating
// their profile. Admin only; admins cannot deactivate themselves.
func (s *ProfileService) Deactivate(p *models.Profile, id uuid.UUID) error {
	if err := s.policy.CanManageOrg(p); err != nil {
		return err
	}
	if id == p.ID {
		return apperrors.NewValidationError("profile", "cannot deactivate your own profile")
	}

	profile, err := s.Get(p, id)
	if err != nil {
		return err
	}

	profile.IsActive = false
	if err := s.repo.Update(profile); err != nil {
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	return nil
}

func randomPassword() (string, error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
