package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount handles POST /accounts
// @Summary Create a new account
// @Description Create an account in the acting profile's organization
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body service.CreateAccountRequest true "Account data"
// @Success 201 {object} models.Account "Successfully created account"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.Create(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccount handles GET /accounts/:id
// @Summary Get account by ID
// @Description Get a specific account by its UUID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} models.Account "Successfully retrieved account"
// @Failure 403 {object} map[string]interface{} "Not allowed to view this account"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// ListAccounts handles GET /accounts
// @Summary List accounts
// @Description List the accounts visible to the acting profile
// @Tags accounts
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param name query string false "Filter by name"
// @Param city query string false "Filter by billing city"
// @Param industry query string false "Filter by industry"
// @Param status query string false "Filter by status"
// @Success 200 {object} service.AccountListResponse "Paginated accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	filter := repository.AccountFilter{
		Name:     c.Query("name"),
		City:     c.Query("city"),
		Industry: c.Query("industry"),
		Status:   c.Query("status"),
	}
	page, pageSize := parsePagination(c)

	resp, err := h.accountService.List(profile, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAccount handles PUT /accounts/:id
// @Summary Update an account
// @Description Update an account the acting profile may modify
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param account body service.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} models.Account "Successfully updated account"
// @Failure 403 {object} map[string]interface{} "Not allowed to modify this account"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.Update(profile, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /accounts/:id
// @Summary Delete an account
// @Description Delete an account; admins and the creator only
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 204 "Successfully deleted account"
// @Failure 403 {object} map[string]interface{} "Not allowed to delete this account"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Delete(profile, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
