package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matrukan/tricog/internal/app"
	"github.com/matrukan/tricog/internal/app/config"
	"github.com/matrukan/tricog/internal/app/pkg/logger"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	if err := application.Run(ctx); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
