package handlers

import (
	"net/http"

	"crm-backend/internal/auth"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateDocument handles POST /documents
// @Summary Register a new document
// @Tags documents
// @Accept json
// @Produce json
// @Param document body service.CreateDocumentRequest true "Document data"
// @Success 201 {object} models.Document "Successfully created document"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.documentService.Create(profile, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

// GetDocument handles GET /documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} models.Document "Successfully retrieved document"
// @Failure 404 {object} map[string]interface{} "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, err := h.documentService.Get(profile, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// ListDocuments handles GET /documents
// @Summary List documents
// @Description List the documents visible to the acting profile
// @Tags documents
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param title query string false "Filter by title"
// @Param status query string false "Filter by status"
// @Success 200 {object} service.DocumentListResponse "Paginated documents"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	filter := repository.DocumentFilter{
		Title:  c.Query("title"),
		Status: c.Query("status"),
	}
	page, pageSize := parsePagination(c)

	resp, err := h.documentService.List(profile, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateDocument handles PUT /documents/:id
// @Summary Update a document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param document body service.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} models.Document "Successfully updated document"
// @Failure 404 {object} map[string]interface{} "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := h.documentService.Update(profile, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// DeleteDocument handles DELETE /documents/:id
// @Summary Delete a document
// @Description Delete a document; admins and the creator only
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 204 "Successfully deleted document"
// @Failure 404 {object} map[string]interface{} "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	profile, ok := auth.GetRequestProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(profile, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
