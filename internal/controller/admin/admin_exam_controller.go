package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/certpool/internal/controller"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminExamController struct {
	adminExamService service.AdminExamService
}

func NewAdminExamController(adminExamService service.AdminExamService) *AdminExamController {
	return &AdminExamController{adminExamService: adminExamService}
}

// bindOptionalJSON treats an empty body as the zero request.
func bindOptionalJSON(ctx *gin.Context, req any) bool {
	if ctx.Request.ContentLength == 0 {
		return true
	}
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Admin: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return false
	}
	return true
}

// CreateExam godoc
// @Summary (Admin) Create an exam
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam body dto.CreateExamRequest true "Exam definition"
// @Success 201 {object} dto.ExamResponse "Exam created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data or duplicate name"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exams [post]
func (c *AdminExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateExam: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminExamService.CreateExam(ctx.Request.Context(), req)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to create exam")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GenerateQuestions godoc
// @Summary (Admin) Generate questions with AI
// @Description Calls the configured providers in order (preferred first, then manus, openai, gemini) until one succeeds, then stores the new questions. Existing questions are skipped.
// @Tags Admin - Generation
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param options body dto.GenerateQuestionsRequest false "Generation options"
// @Success 201 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or no provider configured"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 429 {object} dto.ErrorResponse "Too many generation requests"
// @Failure 502 {object} dto.ErrorResponse "Every provider failed"
// @Router /admin/exams/{exam_id}/generate-questions [post]
func (c *AdminExamController) GenerateQuestions(ctx *gin.Context) {
	examID, ok := controller.ParseIDParam(ctx, "exam_id", "Exam")
	if !ok {
		return
	}
	var req dto.GenerateQuestionsRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	resp, err := c.adminExamService.GenerateQuestions(ctx.Request.Context(), examID, req)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to generate questions")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// PreGenerate godoc
// @Summary (Admin) Pre-generate questions for an exam type
// @Description Tops up the first active exam of the type to num_questions. Answers from the store without calling providers when enough questions exist, unless force_generate is set.
// @Tags Admin - Generation
// @Accept json
// @Produce json
// @Param options body dto.PreGenerateRequest true "Pre-generation options"
// @Success 200 {object} dto.PreGenerateResponse "Enough questions already stored"
// @Success 201 {object} dto.PreGenerateResponse "Questions generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or no provider configured"
// @Failure 404 {object} dto.ErrorResponse "No active exam of that type"
// @Failure 502 {object} dto.ErrorResponse "Every provider failed"
// @Router /admin/exams/pre-generate [post]
func (c *AdminExamController) PreGenerate(ctx *gin.Context) {
	var req dto.PreGenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin PreGenerate: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminExamService.PreGenerate(ctx.Request.Context(), req)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to pre-generate questions")
		return
	}
	status := http.StatusCreated
	if resp.Source == service.SourceStore {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}

// ImportQuestions godoc
// @Summary (Admin) Import questions
// @Description Accepts a JSON array of question records (or {"questions": [...]}) in the same shape providers return. Duplicates are skipped.
// @Tags Admin - Generation
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param questions body []llm.RawRecord true "Question records"
// @Success 201 {object} dto.ImportQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Body is not a question list"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/import [post]
func (c *AdminExamController) ImportQuestions(ctx *gin.Context) {
	examID, ok := controller.ParseIDParam(ctx, "exam_id", "Exam")
	if !ok {
		return
	}
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	raws, err := llm.DecodeRecords(string(body))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Body must be a JSON array of questions", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminExamService.ImportQuestions(ctx.Request.Context(), examID, raws)
	if err != nil {
		controller.WriteServiceError(ctx, err, "Failed to import questions")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
