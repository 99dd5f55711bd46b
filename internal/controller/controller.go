package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ParseIDParam reads a numeric path parameter, answering 400 when it is invalid.
func ParseIDParam(ctx *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s ID format", label)})
		return 0, false
	}
	return uint(id), true
}

// WriteServiceError maps service errors onto HTTP responses.
func WriteServiceError(ctx *gin.Context, err error, action string) {
	var (
		noQuestions *service.NoQuestionsError
		genFailed   *service.GenerationFailedError
	)
	switch {
	case errors.As(err, &noQuestions):
		ctx.JSON(http.StatusNotFound, dto.NoQuestionsResponse{
			Error:      "No questions available for this exam",
			Suggestion: fmt.Sprintf("Generate questions first using /api/v1/admin/exams/%d/generate-questions", noQuestions.ExamID),
			ExamID:     noQuestions.ExamID,
			ExamName:   noQuestions.ExamName,
		})
	case errors.Is(err, service.ErrExamNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidExam), errors.Is(err, service.ErrInvalidReview):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: action, Details: []string{err.Error()}})
	case errors.Is(err, service.ErrNotConfigured):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &genFailed):
		details := make([]string, 0, len(genFailed.Errs))
		for _, e := range genFailed.Errs {
			details = append(details, e.Error())
		}
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Failed to generate questions", Details: details})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(action)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: action, Details: []string{err.Error()}})
	}
}

type HealthController struct {
	db      *gorm.DB
	idCache cache.QuestionIDCache
}

func NewHealthController(db *gorm.DB, idCache cache.QuestionIDCache) *HealthController {
	return &HealthController{db: db, idCache: idCache}
}

// Health godoc
// @Summary Service health
// @Description Reports database reachability and the active question id cache backend.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "ok", Cache: c.idCache.Backend()}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Health check: database ping failed")
		resp.Status = "degraded"
		resp.Database = "unreachable"
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
