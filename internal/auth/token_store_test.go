package auth

import (
	"testing"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expired refresh tokens are dropped whenever a new pair is issued, not
// only when the dead token itself is presented.
func TestIssueTokensSweepsExpiredEntries(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMinutes: 60}
	service := NewService(cfg, nil, nil, nil)

	service.refreshTokens["stale"] = &refreshTokenData{
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	service.refreshTokens["live"] = &refreshTokenData{
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	user := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Email:     "jane@example.test",
		IsActive:  true,
	}
	resp, err := service.issueTokens(user)
	require.NoError(t, err)

	service.tokenMutex.RLock()
	defer service.tokenMutex.RUnlock()
	assert.NotContains(t, service.refreshTokens, "stale")
	assert.Contains(t, service.refreshTokens, "live")
	assert.Contains(t, service.refreshTokens, resp.RefreshToken)
}
