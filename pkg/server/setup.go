package server

import (
	"context"
	"net/http"

	"github.com/covlens/covlens/config"
	"github.com/covlens/covlens/pkg/api"
	"github.com/covlens/covlens/pkg/global"
	"github.com/covlens/covlens/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// ListenAndServe initializes a server to respond to HTTP network requests.
func ListenAndServe(ctx context.Context, router api.Router, config *config.Config, logger lumber.Logger) error {
	// set gin to release mode
	gin.SetMode(gin.ReleaseMode)

	logger.Infof("Setting up http handler")

	errChan := make(chan error)

	// HTTP server instance
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router.Handler(),
		ReadTimeout:  global.DefaultHTTPTimeout,
		WriteTimeout: global.DefaultHTTPTimeout,
	}

	go func() {
		logger.Infof("Starting server on port %s", config.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("listen: %#v", err)
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Caller has requested graceful shutdown. shutting down the server")
		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("Server Shutdown: %v", err)
		}
		return nil
	case err := <-errChan:
		return err
	}
}
