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

type ExamController struct {
	examService service.ExamService
	poolService service.QuestionPoolService
}

func NewExamController(es service.ExamService, ps service.QuestionPoolService) *ExamController {
	return &ExamController{examService: es, poolService: ps}
}

// parseLimit reads ?limit=; absent means 0 (service default).
func parseLimit(ctx *gin.Context) (int, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}

// GetAllExams godoc
// @Summary (User) List active exams
// @Description Lists every active exam with the number of questions it currently holds.
// @Tags User - Exams
// @Produce json
// @Success 200 {array} dto.ExamResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) GetAllExams(ctx *gin.Context) {
	exams, err := c.examService.ListExams(ctx.Request.Context())
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve exams")
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExam godoc
// @Summary (User) Get exam details
// @Tags User - Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Exam ID format"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, ok := controller.ParseIDParam(ctx, "exam_id", "Exam")
	if !ok {
		return
	}
	exam, err := c.examService.GetExam(ctx.Request.Context(), examID)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve exam")
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// GetExamsByType godoc
// @Summary (User) List active exams of a type
// @Tags User - Exams
// @Produce json
// @Param exam_type path string true "Exam type, e.g. solutions_architect"
// @Success 200 {array} dto.ExamResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/by-type/{exam_type} [get]
func (c *ExamController) GetExamsByType(ctx *gin.Context) {
	exams, err := c.examService.ListByType(ctx.Request.Context(), ctx.Param("exam_type"))
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve exams")
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetRandomQuestions godoc
// @Summary (User) Serve a random question set
// @Description Draws a pool of up to 100 questions from the exam, then serves up to `limit` of them in random order.
// @Tags User - Questions
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param limit query int false "Number of questions to serve (default 50)"
// @Success 200 {object} dto.RandomQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Exam ID or limit"
// @Failure 404 {object} dto.NoQuestionsResponse "Exam not found or has no questions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{exam_id}/random-questions [get]
func (c *ExamController) GetRandomQuestions(ctx *gin.Context) {
	examID, ok := controller.ParseIDParam(ctx, "exam_id", "Exam")
	if !ok {
		return
	}
	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}

	resp, err := c.poolService.RandomQuestions(ctx.Request.Context(), examID, limit)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve questions")
		return
	}
	log.Debug().Uint("examID", examID).Int("count", resp.Count).Int("pool", resp.PoolSize).Msg("Served random questions")
	ctx.JSON(http.StatusOK, resp)
}

// GetExamQuestions godoc
// @Summary (User) List questions of an exam
// @Description With random=true (default) behaves like random-questions; with random=false returns every question.
// @Tags User - Questions
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param random query bool false "Random selection (default true)"
// @Param limit query int false "Number of questions when random (default 50)"
// @Success 200 {object} dto.RandomQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.NoQuestionsResponse "Exam not found or has no questions"
// @Router /exams/{exam_id}/questions [get]
func (c *ExamController) GetExamQuestions(ctx *gin.Context) {
	examID, ok := controller.ParseIDParam(ctx, "exam_id", "Exam")
	if !ok {
		return
	}
	random, err := strconv.ParseBool(ctx.DefaultQuery("random", "true"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "random must be true or false"})
		return
	}

	if !random {
		resp, err := c.poolService.AllQuestions(ctx.Request.Context(), examID)
		if err != nil {
			controller.WriteServiceError(ctx, err, "Failed to retrieve questions")
			return
		}
		ctx.JSON(http.StatusOK, resp)
		return
	}

	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}
	resp, err := c.poolService.RandomQuestions(ctx.Request.Context(), examID, limit)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
