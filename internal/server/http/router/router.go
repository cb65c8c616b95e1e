package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cripslk/dispatch/internal/server/http/handlers"
	"github.com/cripslk/dispatch/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DispatchFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	scheduleHandler := handlers.NewScheduleHandler(facade)
	shipmentHandler := handlers.NewShipmentHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	guarded := api.Group("")
	guarded.Use(middleware.AuthRequired(facade))

	guarded.POST("/orders", orderHandler.Create)
	guarded.GET("/orders", orderHandler.List)
	guarded.GET("/orders/:id", orderHandler.Get)
	guarded.PUT("/orders/:id", orderHandler.Update)

	guarded.POST("/schedules", scheduleHandler.Create)
	guarded.GET("/schedules", scheduleHandler.List)
	guarded.PUT("/schedules/:id", scheduleHandler.Update)
	guarded.DELETE("/schedules/:id", scheduleHandler.Delete)
	guarded.POST("/schedules/:id/complete", scheduleHandler.Complete)
	// Legacy path kept for clients that predate the /schedules rename.
	guarded.POST("/scheduler/:id/complete", scheduleHandler.Complete)

	guarded.POST("/shipments", shipmentHandler.Create)
	guarded.GET("/shipments", shipmentHandler.List)
	guarded.GET("/shipments/:id", shipmentHandler.Get)
	guarded.PUT("/shipments/:id/status", shipmentHandler.UpdateStatus)
	guarded.DELETE("/shipments/:id", shipmentHandler.Delete)

	return engine
}
