package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/certpool/internal/controller"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/lshigami/certpool/internal/service"
)

type QuestionController struct {
	poolService service.QuestionPoolService
}

func NewQuestionController(ps service.QuestionPoolService) *QuestionController {
	return &QuestionController{poolService: ps}
}

// ListQuestions godoc
// @Summary (User) Filter questions
// @Tags User - Questions
// @Produce json
// @Param exam query int false "Exam ID"
// @Param domain query string false "Domain, e.g. S3"
// @Param difficulty query string false "easy, medium or hard"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var filter repository.QuestionFilter
	if raw := ctx.Query("exam"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Exam ID format in query"})
			return
		}
		filter.ExamID = uint(id)
	}
	filter.Domain = ctx.Query("domain")
	if d := ctx.Query("difficulty"); d != "" {
		switch d {
		case "easy", "medium", "hard":
			filter.Difficulty = d
		default:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "difficulty must be easy, medium or hard"})
			return
		}
	}

	resp, err := c.poolService.ListQuestions(ctx.Request.Context(), filter)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
