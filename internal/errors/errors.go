package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found.
// Cross-tenant lookups surface the same NotFoundError as genuinely
// missing rows so that callers cannot probe other organizations' data.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in organization"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors (401)
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors (403)
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrProfileNotFound      = &NotFoundError{Entity: "profile"}
	ErrTeamNotFound         = &NotFoundError{Entity: "team"}
	ErrAccountNotFound      = &NotFoundError{Entity: "account"}
	ErrContactNotFound      = &NotFoundError{Entity: "contact"}
	ErrTaskNotFound         = &NotFoundError{Entity: "task"}
	ErrInvoiceNotFound      = &NotFoundError{Entity: "invoice"}
	ErrDocumentNotFound     = &NotFoundError{Entity: "document"}
	ErrCommentNotFound      = &NotFoundError{Entity: "comment"}
	ErrAttachmentNotFound   = &NotFoundError{Entity: "attachment"}
	ErrAPISettingsNotFound  = &NotFoundError{Entity: "api settings"}
	ErrEmailNotFound        = &NotFoundError{Entity: "email"}
)

// Already Exists Errors
var (
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this name"}
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrProfileExists      = &AlreadyExistsError{Entity: "profile", Context: "for this user in the organization"}
	ErrTeamExists         = &AlreadyExistsError{Entity: "team", Context: "with this name in the organization"}
	ErrAccountExists      = &AlreadyExistsError{Entity: "account", Context: "with this name in the organization"}
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "invalid email or password"}
	ErrTokenInvalid        = &AuthenticationError{Message: "invalid token"}
	ErrTokenExpired        = &AuthenticationError{Message: "token has expired"}
	ErrInvalidAPIKey       = &AuthenticationError{Message: "invalid API key"}
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	ErrUserInactive        = &AuthenticationError{Message: "user account is inactive"}
)

// Authorization Errors
var (
	ErrForbidden     = &AuthorizationError{Message: "you do not have permission to perform this action"}
	ErrCrossTenant   = &AuthorizationError{Message: "resource belongs to a different organization"}
	ErrProfileNoOrg  = &AuthorizationError{Message: "profile is not bound to an organization"}
	ErrAdminRequired = &AuthorizationError{Message: "organization admin privileges required"}
)

// Business Logic Errors
var (
	ErrOrgHeaderMissing        = errors.New("organization header is required")
	ErrOrgHeaderInvalid        = errors.New("organization header is not a valid id")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrProfileInactive         = errors.New("profile is deactivated")
	ErrOrganizationInactive    = errors.New("organization is deactivated")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
