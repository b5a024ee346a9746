package main

import (
	"context"
	"fmt"

	"github.com/matrukan/tricog/internal/app"
	"github.com/matrukan/tricog/internal/app/config"
	"github.com/matrukan/tricog/internal/app/database"
	"github.com/matrukan/tricog/internal/app/pkg/logger"
	"github.com/matrukan/tricog/internal/app/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	defer database.Close(db)

	inserted, err := app.Bootstrap(context.Background(), repository.New(db), cfg.Seed)
	if err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	fmt.Printf("Seeding finished: %d new symptom rules\n", inserted)
}
