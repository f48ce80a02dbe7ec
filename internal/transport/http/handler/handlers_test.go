package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"hash/fnv"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horo-rag/internal/ai"
	"horo-rag/internal/app"
	"horo-rag/internal/model"
	"horo-rag/internal/repository"
	"horo-rag/internal/transport/http/middleware"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return wordVector(text), nil
}

func (stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = wordVector(t)
	}
	return out, nil
}

func wordVector(text string) []float32 {
	vec := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(w, ".,!?:;\"'()$")))
		vec[h.Sum32()%64]++
	}
	return vec
}

type stubGenerator struct {
	answer string
}

func (g stubGenerator) Complete(_ context.Context, _ []ai.ChatMessage) (string, error) {
	return g.answer, nil
}

func newTestRouter(answer string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := repository.NewTenantStore()
	index := app.NewVectorIndexManager(store, stubEmbedder{}, app.IndexConfig{})
	retrieval := app.NewRetrievalService(index, 3, 0)
	citations := app.NewCitationBuilder(store)
	documentHandler := NewDocumentHandler(app.NewDocumentService(store, index))
	queryHandler := NewQueryHandler(app.NewQueryService(retrieval, citations, stubGenerator{answer: answer}))

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.TenantID())
	v1.POST("/documents", documentHandler.Create)
	v1.POST("/documents/upload", documentHandler.Upload)
	v1.GET("/documents", documentHandler.List)
	v1.GET("/documents/:id", documentHandler.Get)
	v1.POST("/query", queryHandler.Ask)
	return router
}

type apiEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, 0, env.Code)
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
}

const testContent = "Lending rules for all borrowers: the maximum loan size is $50,000. " +
	"First-time borrowers must complete a credit review before approval."

func postJSON(router *gin.Engine, tenant, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set(middleware.HeaderTenantID, tenant)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMissingTenantHeader(t *testing.T) {
	router := newTestRouter("unused")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-Tenant-ID")
}

func TestCreateThenListDocuments(t *testing.T) {
	router := newTestRouter("unused")

	rec := postJSON(router, "acme", "/api/v1/documents", gin.H{
		"filename": "Loan Policy.txt",
		"content":  testContent,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.DocumentInfo
	decodeEnvelope(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.DocTypePolicy, created.Type)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set(middleware.HeaderTenantID, "acme")
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)

	var docs []model.DocumentInfo
	decodeEnvelope(t, listRec, &docs)
	require.Len(t, docs, 1)
	assert.Equal(t, created.ID, docs[0].ID)
	assert.Equal(t, "Loan Policy.txt", docs[0].Filename)
	assert.Equal(t, created.Type, docs[0].Type)
}

func TestUploadMultipart(t *testing.T) {
	router := newTestRouter("unused")

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "handbook.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Employee onboarding and training: every new hire completes orientation in week one."))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(middleware.HeaderTenantID, "acme")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc model.DocumentInfo
	decodeEnvelope(t, rec, &doc)
	assert.Equal(t, "handbook.txt", doc.Filename)
	assert.Equal(t, model.DocTypeHandbook, doc.Type)
}

func TestUploadTooShort(t *testing.T) {
	router := newTestRouter("unused")

	rec := postJSON(router, "acme", "/api/v1/documents", gin.H{
		"filename": "tiny.txt",
		"content":  "too short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDocumentNotFound(t *testing.T) {
	router := newTestRouter("unused")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/deadbeef", nil)
	req.Header.Set(middleware.HeaderTenantID, "acme")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueryEmptyTenant(t *testing.T) {
	router := newTestRouter("unused")

	rec := postJSON(router, "empty-tenant", "/api/v1/query", gin.H{
		"question": "What's the maximum loan size?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.QueryResult
	decodeEnvelope(t, rec, &result)
	assert.True(t, result.HasKnowledgeGap)
	assert.Empty(t, result.Citations)
	assert.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Answer, "don't have any documents")
}

func TestQueryEndToEnd(t *testing.T) {
	router := newTestRouter("According to the loan policy, the maximum loan size for first-time borrowers is $50,000.")

	rec := postJSON(router, "acme", "/api/v1/documents", gin.H{
		"filename": "Loan Policy.txt",
		"content":  testContent,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	queryRec := postJSON(router, "acme", "/api/v1/query", gin.H{
		"question": "What's the maximum loan size for first-time borrowers?",
	})
	require.Equal(t, http.StatusOK, queryRec.Code)

	var result model.QueryResult
	decodeEnvelope(t, queryRec, &result)
	assert.False(t, result.HasKnowledgeGap)
	require.NotEmpty(t, result.Citations)
	assert.Equal(t, "Loan Policy.txt", result.Citations[0].Document)
	assert.GreaterOrEqual(t, result.Citations[0].Page, 1)
}

func TestQueryTenantMismatch(t *testing.T) {
	router := newTestRouter("unused")

	rec := postJSON(router, "acme", "/api/v1/query", gin.H{
		"question":  "anything at all",
		"tenant_id": "globex",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestQueryTenantIsolation(t *testing.T) {
	router := newTestRouter("The maximum loan size is $50,000 per the policy document.")

	rec := postJSON(router, "tenant-a", "/api/v1/documents", gin.H{
		"filename": "Loan Policy.txt",
		"content":  testContent,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	queryRec := postJSON(router, "tenant-b", "/api/v1/query", gin.H{
		"question": "What's the maximum loan size?",
	})
	require.Equal(t, http.StatusOK, queryRec.Code)

	var result model.QueryResult
	decodeEnvelope(t, queryRec, &result)
	assert.True(t, result.HasKnowledgeGap)
	assert.Empty(t, result.Citations)
}
