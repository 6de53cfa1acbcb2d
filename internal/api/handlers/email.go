package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// EmailHandler handles HTTP requests for email operations
type EmailHandler struct {
	emailService *service.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(emailService *service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// CreateEmail handles POST /emails
// @Summary Draft an email
// @Description Record a draft email in the acting profile's organization
// @Tags emails
// @Accept json
// @Produce json
// @Param email body service.CreateEmailRequest true "Email data"
// @Success 201 {object} models.Email "Successfully created draft"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /emails [post]
func (h *EmailHandler) CreateEmail(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.emailService.Create(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, email)
}

// GetEmail handles GET /emails/:id
// @Summary Get email by ID
// @Tags emails
// @Produce json
// @Param id path string true "Email ID (UUID)"
// @Success 200 {object} models.Email "Successfully retrieved email"
// @Failure 404 {object} map[string]interface{} "Email not found"
// @Security BearerAuth
// @Router /emails/{id} [get]
func (h *EmailHandler) GetEmail(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	email, err := h.emailService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// ListEmails handles GET /emails
// @Summary List email records
// @Tags emails
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.EmailListResponse "Paginated emails"
// @Security BearerAuth
// @Router /emails [get]
func (h *EmailHandler) ListEmails(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, pageSize := parsePagination(c)
	resp, err := h.emailService.List(profile, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendEmail handles POST /emails/:id/send
// @Summary Send a drafted email
// @Description Mark a draft as sent and enqueue it for delivery
// @Tags emails
// @Produce json
// @Param id path string true "Email ID (UUID)"
// @Success 200 {object} models.Email "Email queued for delivery"
// @Failure 400 {object} map[string]interface{} "Email already sent"
// @Failure 404 {object} map[string]interface{} "Email not found"
// @Security BearerAuth
// @Router /emails/{id}/send [post]
func (h *EmailHandler) SendEmail(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	email, err := h.emailService.Send(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}
