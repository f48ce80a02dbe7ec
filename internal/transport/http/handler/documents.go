package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"horo-rag/internal/app"
	"horo-rag/internal/repository"
	"horo-rag/internal/transport/http/middleware"
	"horo-rag/internal/transport/http/response"
)

const maxUploadSize = 5 << 20 // 5 MB of plain text

type DocumentHandler struct {
	documents *app.DocumentService
}

type CreateDocumentRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func NewDocumentHandler(documents *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func getTenantFromContext(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ContextTenantIDKey)
	if !exists {
		return "", false
	}
	tenant, ok := raw.(string)
	return tenant, ok && tenant != ""
}

// Create ingests a document supplied as JSON.
func (h *DocumentHandler) Create(c *gin.Context) {
	tenant, ok := getTenantFromContext(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing tenant id")
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), app.UploadInput{
		Tenant:   tenant,
		Filename: req.Filename,
		Content:  req.Content,
	})
	if err != nil {
		writeUploadError(c, err)
		return
	}
	response.OK(c, doc)
}

// Upload ingests a document supplied as a multipart "file" part, with an
// optional "name" field overriding the filename. Only UTF-8 text is
// accepted; parsing binary formats is out of scope.
func (h *DocumentHandler) Upload(c *gin.Context) {
	tenant, ok := getTenantFromContext(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing tenant id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 5MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	if !utf8.Valid(raw) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "unable to read file, please upload text-based documents")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
	}

	doc, err := h.documents.Upload(c.Request.Context(), app.UploadInput{
		Tenant:   tenant,
		Filename: name,
		Content:  string(raw),
	})
	if err != nil {
		writeUploadError(c, err)
		return
	}
	response.OK(c, doc)
}

// List returns the tenant's documents in upload order.
func (h *DocumentHandler) List(c *gin.Context) {
	tenant, ok := getTenantFromContext(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing tenant id")
		return
	}

	docs, err := h.documents.List(tenant)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, docs)
}

// Get returns one document by id.
func (h *DocumentHandler) Get(c *gin.Context) {
	tenant, ok := getTenantFromContext(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing tenant id")
		return
	}

	doc, err := h.documents.Get(tenant, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, "document not found")
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get document failed")
		}
		return
	}
	response.OK(c, doc)
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrUpstream):
		response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, "model backend unavailable, please retry")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
	}
}
