package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/CageChen/entryhub/internal/handler"
	"github.com/CageChen/entryhub/internal/middleware"
	"github.com/CageChen/entryhub/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the entry API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
	a.serveFlags(cmd.Flags())
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("entryhub starting",
		zap.String("addr", a.cfg.Addr()),
		zap.String("config", a.cfg.GetConfigFilePath()),
		zap.Int("concurrency", a.cfg.Concurrency),
		zap.Int("folders", len(a.cfg.Folders)),
	)
	for i, f := range a.cfg.Folders {
		a.logger.Debug("favourite folder", zap.Int("index", i), zap.String("alias", f.Alias), zap.String("path", f.Path))
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Open browser if requested
	if a.cfg.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d", a.cfg.Port))
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter assembles the middleware chain and mounts every route.
func (a *app) newRouter() *gin.Engine {
	if a.cfg.Log.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(a.logger.Named("http")))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = a.cfg.CORS.AllowOrigins
	r.Use(middleware.CORS(corsCfg))

	if a.cfg.RateLimit.Enabled {
		r.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: a.cfg.RateLimit.RequestsPerSecond,
			Burst:             a.cfg.RateLimit.Burst,
		}))
	}
	r.Use(monitoring.Middleware(a.metrics))

	// API routes
	api := r.Group("/api")
	handler.NewEntryHandler(a.resolver).Register(api)
	handler.NewFolderHandler(a.cfg, a.resolver, a.logger.Named("folders")).Register(api)

	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default: // linux, etc.
		cmd = "xdg-open"
		args = []string{url}
	}

	_ = exec.Command(cmd, args...).Start()
}
