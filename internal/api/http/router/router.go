package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fieldscope/field-inspector/internal/api/http/handler"
	"github.com/fieldscope/field-inspector/internal/api/http/middleware"
	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/service"
)

// Router wires HTTP handlers and middleware into a gin engine.
type Router struct {
	authService    *service.Auth
	ingestService  *service.Ingest
	recordService  *service.Records
	contextManager model.ContextManager
	maxBodyBytes   int64
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	ingestService *service.Ingest,
	recordService *service.Records,
	contextManager model.ContextManager,
	maxBodyBytes int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		ingestService:  ingestService,
		recordService:  recordService,
		contextManager: contextManager,
		maxBodyBytes:   maxBodyBytes,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware. Auth
// endpoints and the health probe are open; records and stats require a
// bearer token.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.NewLogging(r.logger).Handle,
		middleware.CORS(nil),
		middleware.BodyLimit(r.maxBodyBytes),
	)

	authHandler := handler.NewAuth(r.authService, r.logger)
	recordHandler := handler.NewRecord(r.ingestService, r.recordService, r.contextManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)

	engine.GET("/health", recordHandler.Health)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", authenticate.Handle)
	protected.POST("/records", recordHandler.Create)
	protected.GET("/records", recordHandler.List)
	protected.GET("/records/:id", recordHandler.Get)
	protected.PUT("/records/:id", recordHandler.Update)
	protected.DELETE("/records/:id", recordHandler.Delete)
	protected.GET("/stats", recordHandler.Stats)

	return engine
}
