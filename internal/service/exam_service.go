package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ExamService interface {
	ListExams(ctx context.Context) ([]dto.ExamResponse, error)
	GetExam(ctx context.Context, examID uint) (*dto.ExamResponse, error)
	ListByType(ctx context.Context, examType string) ([]dto.ExamResponse, error)
}

type examService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
}

func NewExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository) ExamService {
	return &examService{examRepo: examRepo, questionRepo: questionRepo}
}

func toExamResponses(rows []repository.ExamWithCount) ([]dto.ExamResponse, error) {
	out := make([]dto.ExamResponse, 0, len(rows))
	for _, row := range rows {
		var resp dto.ExamResponse
		if err := copier.Copy(&resp, &row.Exam); err != nil {
			return nil, fmt.Errorf("error preparing exam response: %w", err)
		}
		resp.QuestionsCount = row.QuestionsCount
		out = append(out, resp)
	}
	return out, nil
}

func (s *examService) ListExams(ctx context.Context) ([]dto.ExamResponse, error) {
	rows, err := s.examRepo.FindAllActiveWithQuestionCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get exams with question count from repository")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}
	return toExamResponses(rows)
}

func (s *examService) ListByType(ctx context.Context, examType string) ([]dto.ExamResponse, error) {
	rows, err := s.examRepo.FindActiveByType(ctx, examType)
	if err != nil {
		log.Error().Err(err).Str("examType", examType).Msg("Failed to get exams by type")
		return nil, fmt.Errorf("error fetching exams of type %s: %w", examType, err)
	}
	return toExamResponses(rows)
}

func (s *examService) GetExam(ctx context.Context, examID uint) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindActiveByID(ctx, examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrExamNotFound, examID)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching exam %d: %w", examID, err)
	}

	count, err := s.questionRepo.CountByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions for exam %d: %w", examID, err)
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		log.Error().Err(err).Msg("Failed to copy Exam model to ExamResponse")
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	resp.QuestionsCount = int(count)
	return &resp, nil
}
