package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles HTTP requests for organization membership
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetCurrentProfile handles GET /profile
// @Summary Get the acting profile
// @Description Return the profile the request is acting as, with its user and organization
// @Tags profiles
// @Produce json
// @Success 200 {object} models.Profile "The acting profile"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// InviteProfile handles POST /profiles
// @Summary Invite a member
// @Description Add a member to the organization; organization admins only
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body service.InviteProfileRequest true "Member data"
// @Success 201 {object} models.Profile "Successfully created profile"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 409 {object} map[string]interface{} "Member already in organization"
// @Security BearerAuth
// @Router /profiles [post]
func (h *ProfileHandler) InviteProfile(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.InviteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invited, err := h.profileService.Invite(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invited)
}

// GetProfile handles GET /profiles/:id
// @Summary Get a member by ID
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID (UUID)"
// @Success 200 {object} models.Profile "Successfully retrieved profile"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.profileService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// ListProfiles handles GET /profiles
// @Summary List organization members
// @Tags profiles
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.ProfileListResponse "Paginated members"
// @Security BearerAuth
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := parsePagination(c)
	resp, err := h.profileService.List(profile, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile handles PUT /profiles/:id
// @Summary Update a member
// @Description Change a member's role or access flags; organization admins only
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID (UUID)"
// @Param profile body service.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.Profile "Successfully updated profile"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.profileService.Update(profile, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeactivateProfile handles DELETE /profiles/:id
// @Summary Deactivate a member
// @Description Remove a member from the organization; organization admins only
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID (UUID)"
// @Success 204 "Successfully deactivated profile"
// @Failure 403 {object} map[string]interface{} "Admin privileges required"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) DeactivateProfile(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.Deactivate(profile, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
