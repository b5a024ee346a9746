package handler

import (
	"errors"
	"net/http"

	"github.com/matrukan/tricog/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// GET /health
func (h *Handler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /symptoms
func (h *Handler) ListSymptoms(ctx *gin.Context) {
	rules, err := h.Rules.ListRules(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.JSON(http.StatusOK, rules)
}

// GET /followups/:symptom
func (h *Handler) GetFollowUps(ctx *gin.Context) {
	rule, err := h.Rules.GetRule(ctx.Request.Context(), ctx.Param("symptom"))
	if errors.Is(err, repository.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "Unknown symptom"})
		return
	}
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.JSON(http.StatusOK, rule)
}

type mapRequest struct {
	Text *string `json:"text" binding:"required"`
}

type mapResponse struct {
	Symptoms []string `json:"symptoms"`
}

// POST /map
func (h *Handler) MapText(ctx *gin.Context) {
	var req mapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	known, err := h.Rules.Symptoms(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.JSON(http.StatusOK, mapResponse{Symptoms: h.Matcher.Match(*req.Text, known)})
}
