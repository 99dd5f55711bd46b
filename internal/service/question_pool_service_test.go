package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/pool"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poolFixture struct {
	svc       QuestionPoolService
	questions *fakeQuestionRepo
	idCache   cache.QuestionIDCache
}

func newPoolFixture(t *testing.T, idCache cache.QuestionIDCache) poolFixture {
	t.Helper()
	exams := newFakeExamRepo(
		model.Exam{ID: 1, Name: "AWS Solutions Architect", ExamType: model.ExamTypeSolutionsArchitect, IsActive: true},
		model.Exam{ID: 2, Name: "Retired", ExamType: model.ExamTypeDeveloper, IsActive: false},
	)
	questions := newFakeQuestionRepo()
	if idCache == nil {
		idCache = cache.NewMemoryQuestionIDCache(10)
	}
	return poolFixture{
		svc:       NewQuestionPoolService(exams, questions, idCache, testConfig()),
		questions: questions,
		idCache:   idCache,
	}
}

func responseIDs(resp *dto.RandomQuestionsResponse) []uint {
	ids := make([]uint, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestRandomQuestionsEmptyExam(t *testing.T) {
	f := newPoolFixture(t, nil)

	_, err := f.svc.RandomQuestions(context.Background(), 1, 0)
	var noQuestions *NoQuestionsError
	require.ErrorAs(t, err, &noQuestions)
	assert.ErrorIs(t, err, pool.ErrNoQuestionsAvailable)
	assert.Equal(t, uint(1), noQuestions.ExamID)
	assert.Equal(t, "AWS Solutions Architect", noQuestions.ExamName)
}

func TestRandomQuestionsEmptyExamIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := newPoolFixture(t, nil)

	_, err := f.svc.RandomQuestions(ctx, 1, 0)
	require.ErrorIs(t, err, pool.ErrNoQuestionsAvailable)
	_, ok, _ := f.idCache.Get(ctx, 1)
	assert.False(t, ok)

	// written behind the service's back, with no invalidation
	f.questions.seed(1, 2)
	resp, err := f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
}

func TestRandomQuestionsSmallExam(t *testing.T) {
	f := newPoolFixture(t, nil)
	seeded := f.questions.seed(1, 30)

	resp, err := f.svc.RandomQuestions(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Count)
	assert.Equal(t, 30, resp.PoolSize)
	assert.Equal(t, 30, resp.TotalAvailable)
	assert.ElementsMatch(t, seeded, responseIDs(resp))
}

func TestRandomQuestionsLargeExamDefaults(t *testing.T) {
	f := newPoolFixture(t, nil)
	seeded := f.questions.seed(1, 200)
	f.questions.seed(3, 10)

	resp, err := f.svc.RandomQuestions(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Count)
	assert.Equal(t, 100, resp.PoolSize)
	assert.Equal(t, 200, resp.TotalAvailable)

	valid := map[uint]bool{}
	for _, id := range seeded {
		valid[id] = true
	}
	seen := map[uint]bool{}
	for _, q := range resp.Questions {
		assert.True(t, valid[q.ID], "question %d is not from this exam", q.ID)
		assert.False(t, seen[q.ID], "question %d served twice", q.ID)
		seen[q.ID] = true
		assert.Equal(t, q.QuestionText, q.Question)
		require.NotNil(t, q.CorrectAnswerLetter)
		assert.Equal(t, "A", *q.CorrectAnswerLetter)
		assert.Len(t, q.Options, 2)
	}
}

func TestRandomQuestionsCustomLimit(t *testing.T) {
	f := newPoolFixture(t, nil)
	f.questions.seed(1, 200)

	resp, err := f.svc.RandomQuestions(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Count)
	assert.Equal(t, 100, resp.PoolSize)
}

func TestRandomQuestionsReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	f := newPoolFixture(t, nil)
	f.questions.seed(1, 5)

	_, err := f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	_, err = f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.questions.listIDsCalls, "second read must be served from cache")

	cached, ok, _ := f.idCache.Get(ctx, 1)
	require.True(t, ok)
	assert.Len(t, cached, 5)
}

func TestRandomQuestionsSeesGeneratedQuestionsAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	f := newPoolFixture(t, nil)
	f.questions.seed(1, 3)
	gen := NewGenerationService(nil, f.questions, f.idCache, testConfig())

	resp, err := f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalAvailable)

	res, err := gen.Persist(ctx, 1, normalized(t, wellFormed("new", 4)), 0)
	require.NoError(t, err)
	require.Equal(t, 4, res.Created)

	resp, err = f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TotalAvailable)
	assert.Equal(t, 2, f.questions.listIDsCalls)
}

func TestRandomQuestionsFallsBackOnCacheError(t *testing.T) {
	fc := &failingCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	f := newPoolFixture(t, fc)
	f.questions.seed(1, 4)

	resp, err := f.svc.RandomQuestions(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Count)
}

func TestRandomQuestionsSkipsStaleIDs(t *testing.T) {
	ctx := context.Background()
	f := newPoolFixture(t, nil)
	seeded := f.questions.seed(1, 3)
	require.NoError(t, f.idCache.Set(ctx, 1, append(seeded, 9999), 0))

	resp, err := f.svc.RandomQuestions(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 4, resp.TotalAvailable)
}

func TestRandomQuestionsUnknownOrInactiveExam(t *testing.T) {
	f := newPoolFixture(t, nil)

	_, err := f.svc.RandomQuestions(context.Background(), 42, 0)
	assert.ErrorIs(t, err, ErrExamNotFound)

	f.questions.seed(2, 5)
	_, err = f.svc.RandomQuestions(context.Background(), 2, 0)
	assert.ErrorIs(t, err, ErrExamNotFound)
}

func TestAllQuestions(t *testing.T) {
	f := newPoolFixture(t, nil)

	_, err := f.svc.AllQuestions(context.Background(), 1)
	assert.ErrorIs(t, err, pool.ErrNoQuestionsAvailable)

	seeded := f.questions.seed(1, 3)
	resp, err := f.svc.AllQuestions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, seeded[0], resp.Questions[0].ID)
}

func TestListQuestionsFilters(t *testing.T) {
	ctx := context.Background()
	f := newPoolFixture(t, nil)
	gen := NewGenerationService(nil, f.questions, f.idCache, testConfig())

	recs := normalized(t, wellFormed("f", 3))
	recs[0].Domain, recs[0].Difficulty = "S3", model.DifficultyEasy
	recs[1].Domain, recs[1].Difficulty = "S3", model.DifficultyHard
	recs[2].Domain = "EC2"
	_, err := gen.Persist(ctx, 1, recs, 0)
	require.NoError(t, err)

	resp, err := f.svc.ListQuestions(ctx, repository.QuestionFilter{ExamID: 1, Domain: "S3"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	resp, err = f.svc.ListQuestions(ctx, repository.QuestionFilter{Difficulty: model.DifficultyHard})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
}

func TestOrderByIDs(t *testing.T) {
	qs := []model.Question{{ID: 1}, {ID: 2}, {ID: 3}}
	got := orderByIDs(qs, []uint{3, 9, 1})
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}
