package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tulsagolf/teetimes/api"
	"github.com/tulsagolf/teetimes/config"
	"github.com/tulsagolf/teetimes/internal/service/alerts"
	"github.com/tulsagolf/teetimes/internal/service/teetimes"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, search teetimes.SearchUseCase, alertSvc alerts.AlertUseCase, logger *slog.Logger) error {
	router := NewRouter(cfg, search, alertSvc, logger)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, search teetimes.SearchUseCase, alertSvc alerts.AlertUseCase, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}))

	apiGroup := router.Group("/api")
	api.NewTeeTimeHandler(search).Register(apiGroup)
	api.NewAlertHandler(alertSvc).Register(apiGroup)

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger/openapi.json", filepath.Join(cfg.HTTP.SwaggerDir, "openapi.json"))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/openapi.json"))))
	}

	return router
}
