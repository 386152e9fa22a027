package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional collaborators left nil in cfg disable their routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	maxUpload := cfg.MaxUploadBytes
	if maxUpload > 0 {
		router.MaxMultipartMemory = maxUpload
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Sessions, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Normalizer endpoints
	normalizeController := NewNormalizeController()
	router.GET("/api/normalize/:catalog", normalizeController.Normalize)
	router.GET("/api/normalize/:catalog/labels", normalizeController.Labels)

	// Candidate review and the public application form
	if cfg.Candidates != nil {
		candidatesController := NewCandidatesController(cfg.Candidates, cfg.Auditor)
		applyHandlers := []gin.HandlerFunc{candidatesController.Apply}
		if cfg.ApplicationLimiter != nil {
			applyHandlers = append([]gin.HandlerFunc{cfg.ApplicationLimiter.Middleware()}, applyHandlers...)
		}
		router.POST("/api/applications", applyHandlers...)
		router.GET("/api/candidates", candidatesController.List)
		router.GET("/api/candidates/:id", candidatesController.Get)
		router.PATCH("/api/candidates/:id", candidatesController.Update)
		router.DELETE("/api/candidates/:id", candidatesController.Delete)
	}

	// Import wizard endpoints
	if cfg.Sessions != nil && cfg.ImportCommitter != nil {
		importsController := NewImportsController(cfg)
		router.POST("/api/imports", importsController.Upload)
		router.GET("/api/imports/sessions/:id", importsController.Get)
		router.PUT("/api/imports/:id/mapping", importsController.UpdateMapping)
		router.POST("/api/imports/:id/configure", importsController.Configure)
		router.POST("/api/imports/:id/commit", importsController.Commit)
		router.DELETE("/api/imports/:id", importsController.Abandon)
		router.GET("/api/imports/template", importsController.Template)
		if cfg.ImportHistory != nil {
			router.GET("/api/imports/history", importsController.History)
			router.GET("/api/imports/history/:id", importsController.Batch)
		}
	}

	// Task status endpoint
	if cfg.TaskStatus != nil {
		tasksController := NewTasksController(cfg.TaskStatus)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	// Audit log endpoint
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		router.GET("/api/audit", auditController.ListEvents)
	}

	return router
}
