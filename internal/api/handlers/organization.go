package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for the acting organization
type OrganizationHandler struct {
	organizationService *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(organizationService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// GetOrganization handles GET /organization
// @Summary Get the acting organization
// @Tags organization
// @Produce json
// @Success 200 {object} models.Organization "The acting organization"
// @Security BearerAuth
// @Router /organization [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	org, err := h.organizationService.Get(profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateOrganization handles PUT /organization
// @Summary Update the acting organization
// @Description Update the organization; organization admins only
// @Tags organization
// @Accept json
// @Produce json
// @Param organization body service.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} models.Organization "Successfully updated organization"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 409 {object} map[string]interface{} "Organization name already in use"
// @Security BearerAuth
// @Router /organization [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	org, err := h.organizationService.Update(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// RotateAPIKey handles POST /organization/rotate-api-key
// @Summary Rotate the organization API key
// @Description Replace the organization API key; organization admins only. The previous key stops working immediately.
// @Tags organization
// @Produce json
// @Success 200 {object} service.APIKeyResponse "The new API key"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Security BearerAuth
// @Router /organization/rotate-api-key [post]
func (h *OrganizationHandler) RotateAPIKey(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	resp, err := h.organizationService.RotateAPIKey(profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
