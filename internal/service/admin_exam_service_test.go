package service

import (
	"context"
	"testing"

	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc       AdminExamService
	exams     *fakeExamRepo
	questions *fakeQuestionRepo
	provider  *fakeProvider
}

func newAdminFixture() adminFixture {
	exams := newFakeExamRepo(
		model.Exam{ID: 1, Name: "AWS Certified Solutions Architect - Associate", ExamType: model.ExamTypeSolutionsArchitect, IsActive: true},
	)
	questions := newFakeQuestionRepo()
	provider := &fakeProvider{name: llm.ProviderManus, configured: true}
	gen := NewGenerationService([]llm.Provider{provider}, questions, cache.NewMemoryQuestionIDCache(10), testConfig())
	return adminFixture{
		svc:       NewAdminExamService(exams, questions, gen),
		exams:     exams,
		questions: questions,
		provider:  provider,
	}
}

func TestCreateExam(t *testing.T) {
	f := newAdminFixture()
	inactive := false

	resp, err := f.svc.CreateExam(context.Background(), dto.CreateExamRequest{
		Name:     "AWS Certified Developer - Associate",
		ExamType: model.ExamTypeDeveloper,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.False(t, resp.IsActive)

	_, err = f.svc.CreateExam(context.Background(), dto.CreateExamRequest{Name: "x", ExamType: "knitting"})
	assert.ErrorIs(t, err, ErrInvalidExam)

	_, err = f.svc.CreateExam(context.Background(), dto.CreateExamRequest{Name: "AWS Certified Developer - Associate", ExamType: model.ExamTypeDeveloper})
	assert.ErrorIs(t, err, ErrInvalidExam)
}

func TestGenerateQuestions(t *testing.T) {
	f := newAdminFixture()

	resp, err := f.svc.GenerateQuestions(context.Background(), 1, dto.GenerateQuestionsRequest{NumQuestions: 5, Domain: "VPC"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.CreatedCount)
	assert.Equal(t, 5, resp.RequestedCount)
	assert.EqualValues(t, 5, resp.TotalQuestions)
	assert.Equal(t, llm.ProviderManus, resp.Provider)
	assert.Equal(t, "VPC", f.provider.lastReq.Domain)
	assert.Equal(t, "AWS Certified Solutions Architect - Associate", f.provider.lastReq.ExamName)

	again, err := f.svc.GenerateQuestions(context.Background(), 1, dto.GenerateQuestionsRequest{NumQuestions: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, again.CreatedCount)
	assert.Equal(t, 5, again.SkippedCount)
	assert.EqualValues(t, 5, again.TotalQuestions)
}

func TestGenerateQuestionsReportsInterruptedBatch(t *testing.T) {
	f := newAdminFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.questions.cancelAfter, f.questions.cancel = 2, cancel

	resp, err := f.svc.GenerateQuestions(ctx, 1, dto.GenerateQuestionsRequest{NumQuestions: 5})
	require.NoError(t, err)
	assert.True(t, resp.Interrupted)
	assert.False(t, resp.Success)
	assert.Equal(t, 2, resp.CreatedCount)
	assert.EqualValues(t, 2, resp.TotalQuestions)
}

func TestImportQuestionsReportsInterruptedBatch(t *testing.T) {
	f := newAdminFixture()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.questions.cancelAfter, f.questions.cancel = 1, cancel

	resp, err := f.svc.ImportQuestions(ctx, 1, wellFormed("import", 3))
	require.NoError(t, err)
	assert.True(t, resp.Interrupted)
	assert.Equal(t, 1, resp.ImportedCount)
	assert.EqualValues(t, 1, resp.TotalQuestions)
}

func TestGenerateQuestionsDefaultsAndErrors(t *testing.T) {
	f := newAdminFixture()

	resp, err := f.svc.GenerateQuestions(context.Background(), 1, dto.GenerateQuestionsRequest{})
	require.NoError(t, err)
	assert.Equal(t, DefaultGenerateCount, resp.RequestedCount)

	_, err = f.svc.GenerateQuestions(context.Background(), 99, dto.GenerateQuestionsRequest{})
	assert.ErrorIs(t, err, ErrExamNotFound)

	f.provider.configured = false
	_, err = f.svc.GenerateQuestions(context.Background(), 1, dto.GenerateQuestionsRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPreGenerateShortCircuitsWhenStoreIsFull(t *testing.T) {
	f := newAdminFixture()
	f.questions.seed(1, 20)

	resp, err := f.svc.PreGenerate(context.Background(), dto.PreGenerateRequest{ExamType: model.ExamTypeSolutionsArchitect, NumQuestions: 20})
	require.NoError(t, err)
	assert.Equal(t, SourceStore, resp.Source)
	assert.EqualValues(t, 20, resp.ExistingCount)
	assert.Zero(t, f.provider.calls)
}

func TestPreGenerateFillsShortfall(t *testing.T) {
	f := newAdminFixture()
	f.questions.seed(1, 7)

	resp, err := f.svc.PreGenerate(context.Background(), dto.PreGenerateRequest{ExamType: model.ExamTypeSolutionsArchitect, NumQuestions: 10})
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, resp.Source)
	assert.Equal(t, 3, f.provider.lastReq.Count)
	assert.Equal(t, 3, resp.CreatedCount)
	assert.EqualValues(t, 10, resp.TotalQuestions)
	assert.Equal(t, model.ExamTypeSolutionsArchitect, f.provider.lastReq.ExamType)
}

func TestPreGenerateForcedCapsAtRequest(t *testing.T) {
	f := newAdminFixture()
	f.questions.seed(1, 10)
	f.provider.records = func(req llm.Request) []llm.RawRecord {
		// providers may overshoot
		return wellFormed("forced", req.Count+5)
	}

	resp, err := f.svc.PreGenerate(context.Background(), dto.PreGenerateRequest{ExamType: model.ExamTypeSolutionsArchitect, NumQuestions: 4, ForceGenerate: true})
	require.NoError(t, err)
	assert.Equal(t, SourceGenerated, resp.Source)
	assert.Equal(t, 4, f.provider.lastReq.Count)
	assert.Equal(t, 4, resp.CreatedCount)
	assert.EqualValues(t, 14, resp.TotalQuestions)
}

func TestPreGenerateUnknownType(t *testing.T) {
	f := newAdminFixture()
	_, err := f.svc.PreGenerate(context.Background(), dto.PreGenerateRequest{ExamType: model.ExamTypeDatabase})
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestImportQuestions(t *testing.T) {
	f := newAdminFixture()
	raws := wellFormed("import", 2)
	raws = append(raws, llm.RawRecord{QuestionText: "nothing to choose"})

	resp, err := f.svc.ImportQuestions(context.Background(), 1, raws)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ImportedCount)
	assert.Equal(t, 1, resp.RejectedCount)
	assert.EqualValues(t, 2, resp.TotalQuestions)
}
