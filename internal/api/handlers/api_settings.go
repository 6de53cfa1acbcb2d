package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// APISettingsHandler handles HTTP requests for API settings operations
type APISettingsHandler struct {
	apiSettingsService *service.APISettingsService
}

// NewAPISettingsHandler creates a new API settings handler
func NewAPISettingsHandler(apiSettingsService *service.APISettingsService) *APISettingsHandler {
	return &APISettingsHandler{apiSettingsService: apiSettingsService}
}

// CreateAPISettings handles POST /api-settings
// @Summary Create an API settings entry
// @Description Create an API settings entry; organization admins only
// @Tags api-settings
// @Accept json
// @Produce json
// @Param settings body service.CreateAPISettingsRequest true "API settings data"
// @Success 201 {object} models.APISettings "Successfully created entry"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Security BearerAuth
// @Router /api-settings [post]
func (h *APISettingsHandler) CreateAPISettings(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateAPISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.apiSettingsService.Create(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settings)
}

// GetAPISettings handles GET /api-settings/:id
// @Summary Get an API settings entry by ID
// @Tags api-settings
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Success 200 {object} models.APISettings "Successfully retrieved entry"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Security BearerAuth
// @Router /api-settings/{id} [get]
func (h *APISettingsHandler) GetAPISettings(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	settings, err := h.apiSettingsService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListAPISettings handles GET /api-settings
// @Summary List API settings entries
// @Tags api-settings
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.APISettingsListResponse "Paginated entries"
// @Security BearerAuth
// @Router /api-settings [get]
func (h *APISettingsHandler) ListAPISettings(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := parsePagination(c)
	resp, err := h.apiSettingsService.List(profile, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAPISettings handles PUT /api-settings/:id
// @Summary Update an API settings entry
// @Description Update an API settings entry; organization admins only
// @Tags api-settings
// @Accept json
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Param settings body service.UpdateAPISettingsRequest true "Fields to update"
// @Success 200 {object} models.APISettings "Successfully updated entry"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Security BearerAuth
// @Router /api-settings/{id} [put]
func (h *APISettingsHandler) UpdateAPISettings(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAPISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.apiSettingsService.Update(profile, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteAPISettings handles DELETE /api-settings/:id
// @Summary Delete an API settings entry
// @Description Delete an API settings entry; organization admins only
// @Tags api-settings
// @Produce json
// @Param id path string true "Entry ID (UUID)"
// @Success 204 "Successfully deleted entry"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Security BearerAuth
// @Router /api-settings/{id} [delete]
func (h *APISettingsHandler) DeleteAPISettings(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.apiSettingsService.Delete(profile, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
