package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/certpool/config"
	"github.com/lshigami/certpool/internal/cache"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/pool"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionPoolService interface {
	// RandomQuestions serves up to limit questions (0 means the configured
	// serving size) drawn from a random pool of the exam's questions.
	RandomQuestions(ctx context.Context, examID uint, limit int) (*dto.RandomQuestionsResponse, error)
	// AllQuestions lists every question of an active exam in store order.
	AllQuestions(ctx context.Context, examID uint) (*dto.QuestionListResponse, error)
	ListQuestions(ctx context.Context, filter repository.QuestionFilter) (*dto.QuestionListResponse, error)
}

type questionPoolService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	idCache      cache.QuestionIDCache
	ttl          time.Duration
	poolSize     int
	servingSize  int
}

func NewQuestionPoolService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	idCache cache.QuestionIDCache,
	cfg *config.Config,
) QuestionPoolService {
	return &questionPoolService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		idCache:      idCache,
		ttl:          cfg.Cache.TTL,
		poolSize:     cfg.Pool.PoolSize,
		servingSize:  cfg.Pool.ServingSize,
	}
}

func (s *questionPoolService) activeExam(ctx context.Context, examID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindActiveByID(ctx, examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrExamNotFound, examID)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching exam %d: %w", examID, err)
	}
	return exam, nil
}

// questionIDs reads through the identifier cache. Cache failures fall back to
// the store and are never surfaced.
func (s *questionPoolService) questionIDs(ctx context.Context, examID uint) ([]uint, error) {
	ids, ok, err := s.idCache.Get(ctx, examID)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("Question id cache read failed, using database")
	} else if ok {
		return ids, nil
	}

	ids, err = s.questionRepo.ListQuestionIDs(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error listing question ids for exam %d: %w", examID, err)
	}
	// An empty exam is not cached: a writer in another process (the importer)
	// cannot invalidate this server's in-memory entry.
	if len(ids) == 0 {
		return ids, nil
	}
	if err := s.idCache.Set(ctx, examID, ids, s.ttl); err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("Failed to populate question id cache")
	}
	return ids, nil
}

func (s *questionPoolService) RandomQuestions(ctx context.Context, examID uint, limit int) (*dto.RandomQuestionsResponse, error) {
	exam, err := s.activeExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	ids, err := s.questionIDs(ctx, examID)
	if err != nil {
		return nil, err
	}

	servingCap := s.servingSize
	if limit > 0 {
		servingCap = limit
	}
	sel, err := pool.Sample(ids, s.poolSize, servingCap)
	if errors.Is(err, pool.ErrNoQuestionsAvailable) {
		return nil, &NoQuestionsError{ExamID: exam.ID, ExamName: exam.Name}
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindWithAnswersByIDs(ctx, sel.Serving)
	if err != nil {
		return nil, fmt.Errorf("error loading questions for exam %d: %w", examID, err)
	}

	ordered := orderByIDs(questions, sel.Serving)
	resp := &dto.RandomQuestionsResponse{
		Questions:      make([]dto.QuestionResponse, 0, len(ordered)),
		PoolSize:       len(sel.Pool),
		TotalAvailable: sel.TotalAvailable,
	}
	for _, q := range ordered {
		resp.Questions = append(resp.Questions, toQuestionResponse(q))
	}
	resp.Count = len(resp.Questions)
	if resp.Count < len(sel.Serving) {
		log.Warn().Uint("examID", examID).Int("expected", len(sel.Serving)).Int("found", resp.Count).Msg("Cached question ids refer to missing questions")
	}
	return resp, nil
}

func (s *questionPoolService) AllQuestions(ctx context.Context, examID uint) (*dto.QuestionListResponse, error) {
	exam, err := s.activeExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	resp, err := s.ListQuestions(ctx, repository.QuestionFilter{ExamID: exam.ID})
	if err != nil {
		return nil, err
	}
	if resp.Count == 0 {
		return nil, &NoQuestionsError{ExamID: exam.ID, ExamName: exam.Name}
	}
	return resp, nil
}

func (s *questionPoolService) ListQuestions(ctx context.Context, filter repository.QuestionFilter) (*dto.QuestionListResponse, error) {
	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Interface("filter", filter).Msg("Failed to list questions")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	resp := &dto.QuestionListResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(q))
	}
	resp.Count = len(resp.Questions)
	return resp, nil
}

// orderByIDs arranges questions in the order of ids, dropping ids with no row.
func orderByIDs(questions []model.Question, ids []uint) []model.Question {
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	out := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out
}

func toQuestionResponse(q model.Question) dto.QuestionResponse {
	opts := make([]dto.OptionResponse, 0, len(q.Answers))
	for _, a := range q.Answers {
		opts = append(opts, dto.OptionResponse{Letter: a.Letter, Text: a.Text})
	}
	return dto.QuestionResponse{
		ID:                  q.ID,
		ExamID:              q.ExamID,
		QuestionText:        q.QuestionText,
		Question:            q.QuestionText,
		Domain:              q.Domain,
		Difficulty:          q.Difficulty,
		Explanation:         q.Explanation,
		Options:             opts,
		CorrectAnswerLetter: q.CorrectLetter(),
	}
}
