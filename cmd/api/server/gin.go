package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-table-service/internal/adapter/gin/handler"
	ginrouter "user-table-service/internal/adapter/gin/router"
	"user-table-service/internal/adapter/web"
)

// SetupGinServer creates and configures the Gin REST API and UI server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	ui *web.UI,
	serviceName string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, ui, serviceName, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
