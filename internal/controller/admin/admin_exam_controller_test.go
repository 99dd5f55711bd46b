package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminService struct {
	generateErr error
	existing    int64
	lastGen     dto.GenerateQuestionsRequest
	imported    []llm.RawRecord
}

func (f *fakeAdminService) CreateExam(_ context.Context, req dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if req.ExamType != "developer" {
		return nil, fmt.Errorf("%w: unknown exam_type %q", service.ErrInvalidExam, req.ExamType)
	}
	return &dto.ExamResponse{ID: 7, Name: req.Name, ExamType: req.ExamType, IsActive: true}, nil
}

func (f *fakeAdminService) GenerateQuestions(_ context.Context, examID uint, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	f.lastGen = req
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &dto.GenerateQuestionsResponse{Success: true, CreatedCount: 3, Provider: "openai"}, nil
}

func (f *fakeAdminService) PreGenerate(_ context.Context, req dto.PreGenerateRequest) (*dto.PreGenerateResponse, error) {
	if !req.ForceGenerate && f.existing >= int64(req.NumQuestions) {
		return &dto.PreGenerateResponse{Success: true, Source: service.SourceStore, ExistingCount: f.existing}, nil
	}
	return &dto.PreGenerateResponse{Success: true, Source: service.SourceGenerated, CreatedCount: 5}, nil
}

func (f *fakeAdminService) ImportQuestions(_ context.Context, examID uint, raws []llm.RawRecord) (*dto.ImportQuestionsResponse, error) {
	f.imported = raws
	return &dto.ImportQuestionsResponse{Success: true, ImportedCount: len(raws)}, nil
}

func newRouter(svc *fakeAdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewAdminExamController(svc)
	r := gin.New()
	g := r.Group("/api/v1/admin/exams")
	g.POST("", c.CreateExam)
	g.POST("/pre-generate", c.PreGenerate)
	g.POST("/:exam_id/generate-questions", c.GenerateQuestions)
	g.POST("/:exam_id/import", c.ImportQuestions)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateExam(t *testing.T) {
	r := newRouter(&fakeAdminService{})

	w := post(r, "/api/v1/admin/exams", `{"name":"Developer","exam_type":"developer"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(r, "/api/v1/admin/exams", `{"name":"Odd","exam_type":"astrology"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/v1/admin/exams", `{"exam_type":"developer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateQuestionsEmptyBody(t *testing.T) {
	svc := &fakeAdminService{}
	w := post(newRouter(svc), "/api/v1/admin/exams/1/generate-questions", "")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, dto.GenerateQuestionsRequest{}, svc.lastGen)
	assert.Contains(t, w.Body.String(), `"provider":"openai"`)
}

func TestGenerateQuestionsOptions(t *testing.T) {
	svc := &fakeAdminService{}
	r := newRouter(svc)

	w := post(r, "/api/v1/admin/exams/1/generate-questions", `{"num_questions":20,"provider_preference":"gemini","use_manus":false}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 20, svc.lastGen.NumQuestions)
	assert.Equal(t, "gemini", svc.lastGen.ProviderPreference)
	require.NotNil(t, svc.lastGen.UseManus)
	assert.False(t, *svc.lastGen.UseManus)

	w = post(r, "/api/v1/admin/exams/1/generate-questions", `{"provider_preference":"claude"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateQuestionsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not configured", fmt.Errorf("%w: no provider has an API key", service.ErrNotConfigured), http.StatusBadRequest},
		{"all failed", &service.GenerationFailedError{Errs: []error{errors.New("manus: timeout"), errors.New("openai: 500")}}, http.StatusBadGateway},
		{"missing exam", fmt.Errorf("%w: id 1", service.ErrExamNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(newRouter(&fakeAdminService{generateErr: tc.err}), "/api/v1/admin/exams/1/generate-questions", "")
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestGenerateQuestionsFailureDetails(t *testing.T) {
	svc := &fakeAdminService{generateErr: &service.GenerationFailedError{Errs: []error{errors.New("manus: timeout")}}}
	w := post(newRouter(svc), "/api/v1/admin/exams/1/generate-questions", "")

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"manus: timeout"}, body.Details)
}

func TestPreGenerateStatus(t *testing.T) {
	r := newRouter(&fakeAdminService{existing: 120})

	w := post(r, "/api/v1/admin/exams/pre-generate", `{"exam_type":"developer","num_questions":100}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"store"`)

	w = post(r, "/api/v1/admin/exams/pre-generate", `{"exam_type":"developer","num_questions":100,"force_generate":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"generated"`)

	w = post(r, "/api/v1/admin/exams/pre-generate", `{"num_questions":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportQuestions(t *testing.T) {
	svc := &fakeAdminService{}
	r := newRouter(svc)

	body := `{"questions":[{"question_text":"Which service stores objects?","options":["A) S3","B) EBS"],"correct_answer_letter":"A"}]}`
	w := post(r, "/api/v1/admin/exams/2/import", body)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.imported, 1)
	assert.Equal(t, "Which service stores objects?", svc.imported[0].QuestionText)

	w = post(r, "/api/v1/admin/exams/2/import", `not json at all`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
