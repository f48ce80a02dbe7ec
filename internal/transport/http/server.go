package http

import (
	"github.com/gin-gonic/gin"

	appsvc "horo-rag/internal/app"
	"horo-rag/internal/bootstrap"
	"horo-rag/internal/transport/http/handler"
	"horo-rag/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	index := appsvc.NewVectorIndexManager(app.Store, app.AI, appsvc.IndexConfig{
		ChunkSize:      app.Config.RAG.ChunkSize,
		ChunkOverlap:   app.Config.RAG.ChunkOverlap,
		EmbedBatchSize: app.Config.RAG.EmbedBatchSize,
	})
	retrieval := appsvc.NewRetrievalService(index, app.Config.RAG.TopK, app.Config.RAG.MinScore)
	citations := appsvc.NewCitationBuilder(app.Store)
	documentService := appsvc.NewDocumentService(app.Store, index)
	queryService := appsvc.NewQueryService(retrieval, citations, app.AI)

	documentHandler := handler.NewDocumentHandler(documentService)
	queryHandler := handler.NewQueryHandler(queryService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.TenantID())
	v1.POST("/documents", documentHandler.Create)
	v1.POST("/documents/upload", documentHandler.Upload)
	v1.GET("/documents", documentHandler.List)
	v1.GET("/documents/:id", documentHandler.Get)
	v1.POST("/query", queryHandler.Ask)

	return router
}
