package handler

import (
	"context"

	"github.com/matrukan/tricog/internal/app/ds"
	"github.com/matrukan/tricog/internal/app/intake"
	"github.com/matrukan/tricog/internal/app/matcher"
	"github.com/matrukan/tricog/internal/app/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RuleStore is the read side of the rule repository.
type RuleStore interface {
	ListRules(ctx context.Context) ([]ds.SymptomRule, error)
	GetRule(ctx context.Context, symptom string) (ds.SymptomRule, error)
	Symptoms(ctx context.Context) ([]string, error)
}

type Handler struct {
	Rules   RuleStore
	Matcher *matcher.Matcher
	Intake  *intake.Service
}

func NewHandler(rules RuleStore, m *matcher.Matcher, intakeSvc *intake.Service) *Handler {
	return &Handler{
		Rules:   rules,
		Matcher: m,
		Intake:  intakeSvc,
	}
}

// NewRouter builds the engine with logging, recovery and CORS for the
// given frontend origins, and registers all routes.
func NewRouter(h *Handler, origins ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	h.RegisterHandler(router)
	return router
}

// RegisterHandler registers the routes.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	router.GET("/health", h.Health)

	router.GET("/symptoms", h.ListSymptoms)
	router.GET("/followups/:symptom", h.GetFollowUps)
	router.POST("/map", h.MapText)

	if h.Intake != nil {
		router.POST("/intake", h.StartIntake)
		router.GET("/intake/:id", h.GetIntake)
		router.POST("/intake/:id/messages", h.PostIntakeMessage)
		router.GET("/api/patients", h.ListPatients)
	}
}

// errorHandler logs err and writes the error body.
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.WithField("path", ctx.FullPath()).Error(err.Error())
	_ = ctx.Error(err)
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}
