package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/certpool/internal/controller"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/service"
	"github.com/rs/zerolog/log"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(rs service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: rs}
}

// ListReviews godoc
// @Summary (User) List approved reviews
// @Description Featured reviews first, then newest first. Optionally filtered by exam.
// @Tags User - Reviews
// @Produce json
// @Param exam query int false "Exam ID"
// @Success 200 {array} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Exam ID format"
// @Router /reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	var examID uint
	if raw := ctx.Query("exam"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Exam ID format in query"})
			return
		}
		examID = uint(id)
	}
	reviews, err := c.reviewService.ListReviews(ctx.Request.Context(), examID)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve reviews")
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}

// SubmitReview godoc
// @Summary (User) Submit or update a review
// @Description One review per user and exam; a second submission replaces the first.
// @Tags User - Reviews
// @Accept json
// @Produce json
// @Param review body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse "Review created"
// @Success 200 {object} dto.ReviewResponse "Existing review updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /reviews [post]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitReview: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, created, err := c.reviewService.SubmitReview(ctx.Request.Context(), req)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to save review")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, resp)
}
