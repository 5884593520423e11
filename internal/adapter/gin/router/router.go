package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-table-service/internal/adapter/gin/docs"
	"user-table-service/internal/adapter/gin/handler"
	"user-table-service/internal/adapter/gin/middleware"
	"user-table-service/internal/adapter/web"
)

// APIBase is the path prefix of the users API
const APIBase = "/api"

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	ui *web.UI,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	// Swagger UI and OpenAPI document
	router.GET("/swagger/*any", gin.WrapH(docs.Handler()))

	// Table UI
	router.GET("/", ui.Index)

	users := router.Group(APIBase)
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", userHandler.PatchUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return router
}
