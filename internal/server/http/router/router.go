package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/slt-fleet/tireflow/internal/server/http/handlers"
	"github.com/slt-fleet/tireflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.WorkflowFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	requestHandler := handlers.NewRequestHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	authRequired := middleware.AuthRequired(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authRequired, authHandler.Me)

	requests := api.Group("/tire-requests")
	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.List)
	requests.POST("/validate", requestHandler.Validate)
	requests.POST("/validate-images", requestHandler.ValidateImages)
	requests.GET("/manager/requests", requestHandler.ManagerQueue)
	requests.GET("/tto/requests", requestHandler.TTOQueue)
	requests.GET("/engineer/requests", requestHandler.EngineerQueue)
	requests.GET("/summary/counts", requestHandler.SummaryCounts)
	requests.GET("/:id", requestHandler.Get)
	requests.PUT("/:id", requestHandler.Update)
	requests.DELETE("/:id", authRequired, requestHandler.Delete)
	requests.POST("/:id/approve", requestHandler.ManagerApprove)
	requests.POST("/:id/reject", requestHandler.ManagerReject)
	requests.POST("/:id/tto-approve", requestHandler.TTOApprove)
	requests.POST("/:id/tto-reject", requestHandler.TTOReject)
	requests.POST("/:id/engineer-approve", requestHandler.EngineerApprove)
	requests.POST("/:id/engineer-reject", requestHandler.EngineerReject)
	requests.GET("/:id/photos", requestHandler.Photos)
	requests.GET("/:id/pdf", requestHandler.PDF)
	requests.PUT("/:id/status", requestHandler.PatchStatus)

	orders := api.Group("/tire-orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/vendor/:email", orderHandler.ListByVendor)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.DELETE("/:id", authRequired, orderHandler.Delete)
	orders.PUT("/:id/confirm", orderHandler.Confirm)
	orders.PUT("/:id/reject", orderHandler.Reject)

	return engine
}
