package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "account"}
		assert.Equal(t, "account not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "account"}
		err2 := &NotFoundError{Entity: "account"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "account"}
		err2 := &NotFoundError{Entity: "contact"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrAccountNotFound, ErrAccountNotFound))
		assert.False(t, errors.Is(ErrAccountNotFound, ErrContactNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrProfileNotFound))
		assert.False(t, IsNotFound(ErrInvalidStatus))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "profile", Context: "for this user in the organization"}
		assert.Equal(t, "profile already exists for this user in the organization", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "team"}
		assert.Equal(t, "team already exists", err.Error())
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrProfileExists))
		assert.False(t, IsAlreadyExists(ErrProfileNotFound))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrAccountNotFound))
	})
}

func TestAuthErrors(t *testing.T) {
	t.Run("IsAuthentication helper", func(t *testing.T) {
		assert.True(t, IsAuthentication(ErrTokenExpired))
		assert.True(t, IsAuthentication(ErrInvalidAPIKey))
		assert.False(t, IsAuthentication(ErrForbidden))
	})

	t.Run("IsAuthorization helper", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrForbidden))
		assert.True(t, IsAuthorization(ErrCrossTenant))
		assert.False(t, IsAuthorization(ErrTokenExpired))
	})

	t.Run("custom constructors", func(t *testing.T) {
		err := NewAuthorizationError("nope")
		assert.Equal(t, "nope", err.Error())
		assert.True(t, IsAuthorization(err))
	})
}
