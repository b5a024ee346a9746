package main

import (
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

	// Migrate the schema
	if err := repository.New(db).Migrate(); err != nil {
		log.WithError(err).Fatal("cant migrate db")
	}
	log.Info("schema migrated")
}
