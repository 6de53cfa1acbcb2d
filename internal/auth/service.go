package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/database/models"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// Claims represents JWT token claims. The token identifies the user
// only; the acting organization arrives per request in the org header,
// because the same user may act in different organizations.
type Claims struct {
	UserID string `json:"user_id" example:"8f14e45f-ea4a-4a3f-9c3b-1b2f51b0a8d4"`
	Email  string `json:"email" example:"jane.doe@example.com"`
	jwt.RegisteredClaims
}

// refreshTokenData stores information about a refresh token
type refreshTokenData struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Service provides credential verification and token issuance. JWT and
// API-key verification are pure checks; failure logging is left to the
// middleware.
type Service struct {
	cfg           *config.Config
	users         repository.UserRepositoryInterface
	profiles      repository.ProfileRepositoryInterface
	orgs          repository.OrganizationRepositoryInterface
	refreshTokens map[string]*refreshTokenData // In-memory store for refresh tokens
	tokenMutex    sync.RWMutex
}

// NewService creates a new authentication service
func NewService(cfg *config.Config, users repository.UserRepositoryInterface, profiles repository.ProfileRepositoryInterface, orgs repository.OrganizationRepositoryInterface) *Service {
	return &Service{
		cfg:           cfg,
		users:         users,
		profiles:      profiles,
		orgs:          orgs,
		refreshTokens: make(map[string]*refreshTokenData),
	}
}

// TokenResponse represents the response for login and refresh operations
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	TokenType    string       `json:"tokenType" example:"Bearer"`
	ExpiresIn    int64        `json:"expiresIn" example:"3600"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         UserResponse `json:"user"`
}

// UserResponse represents the authenticated user in token responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Login verifies email and password and issues a token pair
func (s *Service) Login(email, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh rotates a refresh token and issues a new token pair
func (s *Service) Refresh(refreshToken string) (*TokenResponse, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(tokenData.ExpiresAt) {
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, apperrors.ErrRefreshTokenExpired
	}

	user, err := s.users.GetByID(tokenData.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()

	return s.issueTokens(user)
}

// sweepExpiredLocked drops expired refresh tokens. Expiry is otherwise
// only noticed when a token is presented, so the store would grow
// without bound in a long-running process. Callers hold tokenMutex.
func (s *Service) sweepExpiredLocked(now time.Time) {
	for token, data := range s.refreshTokens {
		if now.After(data.ExpiresAt) {
			delete(s.refreshTokens, token)
		}
	}
}

// Logout invalidates a refresh token. Access tokens stay valid until
// expiry; clients discard them.
func (s *Service) Logout(refreshToken string) {
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()
}

func (s *Service) issueTokens(user *models.User) (*TokenResponse, error) {
	jwtToken, err := s.GenerateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := generateRandomString(64)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.tokenMutex.Lock()
	s.sweepExpiredLocked(time.Now())
	s.refreshTokens[refreshToken] = &refreshTokenData{
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
		CreatedAt: time.Now(),
	}
	s.tokenMutex.Unlock()

	return &TokenResponse{
		AccessToken:  jwtToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.JWTExpiry().Seconds()),
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

// GenerateJWT creates a signed access token for the user
func (s *Service) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "crm-backend",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateJWT validates and parses an access token. Only HMAC signing
// methods are accepted; expired and otherwise-invalid tokens yield
// distinct classified errors.
func (s *Service) ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrTokenInvalid
}

// ResolveProfile looks up the active profile binding a user to an
// organization. Missing profiles, inactive profiles and memberships in
// a deactivated organization are indistinguishable: the API-key path
// already refuses inactive organizations, and the bearer path must not
// keep them reachable.
func (s *Service) ResolveProfile(userID, orgID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetActiveByUserAndOrg(userID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if !profile.Organization.IsActive {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

// ResolveAPIKey resolves an API key to its organization and that
// organization's designated admin profile
func (s *Service) ResolveAPIKey(apiKey string) (*models.Organization, *models.Profile, error) {
	org, err := s.orgs.GetByAPIKey(apiKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidAPIKey
		}
		return nil, nil, fmt.Errorf("failed to resolve API key: %w", err)
	}

	profile, err := s.profiles.GetAdminForOrg(org.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidAPIKey
		}
		return nil, nil, fmt.Errorf("failed to resolve admin profile: %w", err)
	}

	return org, profile, nil
}

// RegisterRequest represents the organization signup request
type RegisterRequest struct {
	OrganizationName string `json:"organization_name" binding:"required" validate:"required,min=1,max=100"`
	Email            string `json:"email" binding:"required,email" validate:"required,email"`
	Password         string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	FirstName        string `json:"first_name" validate:"max=100"`
	LastName         string `json:"last_name" validate:"max=100"`
}

// Register creates an organization together with its first user, who
// becomes the organization admin
func (s *Service) Register(req *RegisterRequest) (*TokenResponse, *models.Organization, error) {
	if existing, err := s.users.GetByEmail(req.Email); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	} else if existing != nil {
		return nil, nil, apperrors.ErrUserExists
	}

	if existing, err := s.orgs.GetByName(req.OrganizationName); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing organization: %w", err)
	} else if existing != nil {
		return nil, nil, apperrors.ErrOrganizationExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	org := &models.Organization{
		Name:     req.OrganizationName,
		APIKey:   apiKey,
		IsActive: true,
	}
	profile := &models.Profile{
		Role:                models.ProfileRoleAdmin,
		IsActive:            true,
		IsOrganizationAdmin: true,
		HasSalesAccess:      true,
		HasMarketingAccess:  true,
	}

	// One transaction: a failed signup must not leave an orphan user
	// row that blocks retrying the same email.
	if err := s.orgs.CreateWithAdmin(user, org, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to create organization: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, org, nil
}

// GenerateAPIKey produces a new opaque organization API key
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// generateRandomString generates a random base64 encoded string
func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
