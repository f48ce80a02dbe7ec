package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"horo-rag/internal/app"
	"horo-rag/internal/transport/http/response"
)

type QueryHandler struct {
	queries *app.QueryService
}

type QueryRequest struct {
	Question string `json:"question" binding:"required"`
	// TenantID is optional in the body; when present it must match the
	// X-Tenant-ID header.
	TenantID string `json:"tenant_id"`
}

func NewQueryHandler(queries *app.QueryService) *QueryHandler {
	return &QueryHandler{queries: queries}
}

// Ask answers one question against the tenant's documents.
func (h *QueryHandler) Ask(c *gin.Context) {
	tenant, ok := getTenantFromContext(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing tenant id")
		return
	}

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if req.TenantID != "" && req.TenantID != tenant {
		response.Error(c, http.StatusForbidden, response.CodeTenantMismatch, "tenant id mismatch")
		return
	}

	result, err := h.queries.Answer(c.Request.Context(), tenant, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUpstream):
			response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, "model backend unavailable, please retry")
		default:
			log.Printf("query failed for tenant %s: %v", tenant, err)
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "query failed")
		}
		return
	}
	response.OK(c, result)
}
