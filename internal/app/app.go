// Package app assembles the service: storage, seeding, intake and HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/matrukan/tricog/internal/app/config"
	"github.com/matrukan/tricog/internal/app/database"
	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/handler"
	"github.com/matrukan/tricog/internal/app/intake"
	"github.com/matrukan/tricog/internal/app/matcher"
	"github.com/matrukan/tricog/internal/app/pkg/storage"
	"github.com/matrukan/tricog/internal/app/repository"
	"github.com/matrukan/tricog/internal/app/seed"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	cfg    *config.Config
	db     *gorm.DB
	Repo   *repository.Repository
	Router *gin.Engine
}

// Bootstrap migrates the schema and seeds the rule store. It must finish
// before the service accepts traffic.
func Bootstrap(ctx context.Context, repo *repository.Repository, cfg config.SeedConfig) (int, error) {
	if err := repo.Migrate(); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	var rules []ds.SymptomRule
	if cfg.Defaults {
		rules = append(rules, seed.Defaults()...)
	}
	if cfg.RulesFile != "" {
		extra, err := seed.LoadFile(cfg.RulesFile)
		if err != nil {
			return 0, err
		}
		rules = append(rules, extra...)
	}

	inserted, err := repo.Seed(ctx, rules)
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{"inserted": inserted, "candidates": len(rules)}).Info("symptom rules seeded")
	return inserted, nil
}

// New opens the database, runs Bootstrap and builds the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	repo := repository.New(db)

	if _, err := Bootstrap(ctx, repo, cfg.Seed); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	var handoff *intake.Handoff
	if cfg.MinIO.Enabled() {
		mc := cfg.MinIO
		objects, err := storage.NewMinIO(ctx, net.JoinHostPort(mc.Host, mc.Port), mc.AccessKey, mc.SecretKey, mc.Bucket, mc.UseSSL, mc.PublicBase)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("minio: %w", err)
		}
		handoff = intake.NewHandoff(objects)
		log.WithField("bucket", mc.Bucket).Info("intake hand-off enabled")
	}

	m := matcher.New()
	h := handler.NewHandler(repo, m, intake.NewService(repo, m, handoff))

	return &App{
		cfg:    cfg,
		db:     db,
		Repo:   repo,
		Router: handler.NewRouter(h, cfg.FrontendOrigin),
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := database.Close(a.db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	srv := &http.Server{
		Addr:              net.JoinHostPort(a.cfg.ServiceHost, strconv.Itoa(a.cfg.ServicePort)),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
