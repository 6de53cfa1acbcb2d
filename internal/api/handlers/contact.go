package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles HTTP requests for contact operations
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContact handles POST /contacts
// @Summary Create a new contact
// @Description Create a contact in the acting profile's organization
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body service.CreateContactRequest true "Contact data"
// @Success 201 {object} models.Contact "Successfully created contact"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactService.Create(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// GetContact handles GET /contacts/:id
// @Summary Get contact by ID
// @Description Get a specific contact by its UUID
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {object} models.Contact "Successfully retrieved contact"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := h.contactService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// ListContacts handles GET /contacts
// @Summary List contacts
// @Description List the contacts visible to the acting profile
// @Tags contacts
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param name query string false "Filter by first or last name"
// @Param city query string false "Filter by city"
// @Success 200 {object} service.ContactListResponse "Paginated contacts"
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	filter := repository.ContactFilter{
		Name: c.Query("name"),
		City: c.Query("city"),
	}
	page, pageSize := parsePagination(c)

	resp, err := h.contactService.List(profile, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateContact handles PUT /contacts/:id
// @Summary Update a contact
// @Description Update a contact the acting profile may modify
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param contact body service.UpdateContactRequest true "Fields to update"
// @Success 200 {object} models.Contact "Successfully updated contact"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.contactService.Update(profile, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles DELETE /contacts/:id
// @Summary Delete a contact
// @Description Delete a contact; admins and the creator only
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 204 "Successfully deleted contact"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(profile, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
