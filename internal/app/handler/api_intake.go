package handler

import (
	"errors"
	"net/http"

	"github.com/matrukan/tricog/internal/app/intake"

	"github.com/gin-gonic/gin"
)

// POST /intake
func (h *Handler) StartIntake(ctx *gin.Context) {
	turn, err := h.Intake.Start(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.JSON(http.StatusCreated, turn)
}

// GET /intake/:id
func (h *Handler) GetIntake(ctx *gin.Context) {
	p, err := h.Intake.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.intakeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

type intakeMessage struct {
	Message string `json:"message" binding:"required"`
}

// POST /intake/:id/messages
func (h *Handler) PostIntakeMessage(ctx *gin.Context) {
	var body intakeMessage
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	turn, err := h.Intake.Reply(ctx.Request.Context(), ctx.Param("id"), body.Message)
	if err != nil {
		h.intakeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, turn)
}

// GET /api/patients
func (h *Handler) ListPatients(ctx *gin.Context) {
	list, err := h.Intake.List(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

func (h *Handler) intakeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrNotFound):
		h.errorHandler(ctx, http.StatusNotFound, err)
	case errors.Is(err, intake.ErrConflict):
		h.errorHandler(ctx, http.StatusConflict, err)
	default:
		h.errorHandler(ctx, http.StatusInternalServerError, err)
	}
}
