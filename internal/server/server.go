// Package server assembles the HTTP surface of the guardrails API.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "guardrails/internal/docs" // Import swagger docs
	apperrors "guardrails/internal/errors"
	"guardrails/internal/handlers"
	"guardrails/internal/metrics"
	"guardrails/internal/middleware"
	"guardrails/internal/services"
)

// ServiceName identifies this process in health checks and traces.
const ServiceName = "api-server"

const engineServiceName = "agent-engine"

// EngineChecker reports whether the agent engine is reachable.
type EngineChecker interface {
	Health(ctx context.Context) error
}

// Services groups the application services the router dispatches to.
type Services struct {
	Guardrails services.GuardrailServicer
	Audit      services.AuditServicer
	Users      services.UserServicer
	Stats      services.StatsServicer
	Chat       services.ChatServicer
	// Engine is optional. When nil, /health/agent is not registered.
	Engine EngineChecker
}

// NewRouter builds the Gin engine with middleware and every route.
func NewRouter(svc Services, m *metrics.Metrics) *gin.Engine {
	guardrailHandler := handlers.NewGuardrailHandler(svc.Guardrails)
	auditHandler := handlers.NewAuditHandler(svc.Audit)
	userHandler := handlers.NewUserHandler(svc.Users)
	statsHandler := handlers.NewStatsHandler(svc.Stats)
	chatHandler := handlers.NewChatHandler(svc.Chat)

	router := gin.New()
	router.HandleMethodNotAllowed = false
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	if m != nil {
		router.Use(middleware.Metrics(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	router.Use(middleware.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, handlers.HealthResponse{Status: "healthy", Service: ServiceName})
	})
	if svc.Engine != nil {
		router.GET("/health/agent", engineHealth(svc.Engine))
	}

	api := router.Group("/api")

	guardrails := api.Group("/guardrails")
	guardrails.GET("", guardrailHandler.ListGuardrails)
	guardrails.GET("/:id", guardrailHandler.GetGuardrail)
	guardrails.POST("", guardrailHandler.CreateGuardrail)
	guardrails.PUT("/:id", guardrailHandler.UpdateGuardrail)
	guardrails.DELETE("/:id", guardrailHandler.DeleteGuardrail)

	api.POST("/chat/query", chatHandler.Query)
	api.GET("/users", userHandler.ListUsers)

	auditLogs := api.Group("/audit-logs")
	auditLogs.GET("", auditHandler.ListAuditLogs)
	auditLogs.GET("/:id", auditHandler.GetAuditLog)

	api.GET("/stats/dashboard", statsHandler.Dashboard)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(apperrors.ErrEndpointNotFound.StatusCode, gin.H{
			"success": false,
			"error":   apperrors.ErrEndpointNotFound.Message,
		})
	})

	return router
}

func engineHealth(engine EngineChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := engine.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, handlers.HealthResponse{
				Status:  "unavailable",
				Service: engineServiceName,
				Error:   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, handlers.HealthResponse{Status: "healthy", Service: engineServiceName})
	}
}

// NewHandler wraps the router with CORS and, when tracing is on, an
// OpenTelemetry server span per request.
func NewHandler(router http.Handler, allowedOrigins []string, tracing bool) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	handler := c.Handler(router)
	if tracing {
		handler = otelhttp.NewHandler(handler, ServiceName)
	}
	return handler
}
