// Command server runs the tombola HTTP dispatcher.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tombola-server/audit"
	"github.com/bellapacxx/tombola-server/config"
	"github.com/bellapacxx/tombola-server/controllers"
	"github.com/bellapacxx/tombola-server/routes"
	"github.com/bellapacxx/tombola-server/utils/logger"
)

func main() {
	cfgPath := "tombola.conf"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging, cfg.LogPath); err != nil {
		logger.Errorf("failed to initialize logger: %v", err)
		os.Exit(1)
	}

	sink := audit.NewSink(cfg.DatabaseURL)
	app := controllers.New(sink)

	r := gin.New()
	r.Use(gin.Recovery())
	routes.Setup(r, app)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Infof("tombola server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
