package app

import (
	"context"
	"net/http"

	"presignup-linker/internal/config"
	"presignup-linker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	hookHandler, err := NewHookHandler(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	hookHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, nil
}
