package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/llm"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	SourceStore     = "store"
	SourceGenerated = "generated"
)

type AdminExamService interface {
	CreateExam(ctx context.Context, req dto.CreateExamRequest) (*dto.ExamResponse, error)
	GenerateQuestions(ctx context.Context, examID uint, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	PreGenerate(ctx context.Context, req dto.PreGenerateRequest) (*dto.PreGenerateResponse, error)
	ImportQuestions(ctx context.Context, examID uint, raws []llm.RawRecord) (*dto.ImportQuestionsResponse, error)
}

type adminExamService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	generation   GenerationService
}

func NewAdminExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	generation GenerationService,
) AdminExamService {
	return &adminExamService{examRepo: examRepo, questionRepo: questionRepo, generation: generation}
}

func (s *adminExamService) CreateExam(ctx context.Context, req dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if !model.ValidExamType(req.ExamType) {
		return nil, fmt.Errorf("%w: unknown exam_type %q", ErrInvalidExam, req.ExamType)
	}

	exam := model.Exam{
		Name:             req.Name,
		ExamType:         req.ExamType,
		Description:      req.Description,
		TotalQuestions:   req.TotalQuestions,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     req.PassingScore,
		IsActive:         true,
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := s.examRepo.Create(ctx, &exam); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: an exam named %q already exists", ErrInvalidExam, req.Name)
		}
		log.Error().Err(err).Msg("Failed to create exam in database")
		return nil, fmt.Errorf("database error creating exam: %w", err)
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, &exam); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminExamService) findExam(ctx context.Context, examID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrExamNotFound, examID)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching exam %d: %w", examID, err)
	}
	return exam, nil
}

func (s *adminExamService) GenerateQuestions(ctx context.Context, examID uint, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	exam, err := s.findExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	count := req.NumQuestions
	if count <= 0 {
		count = DefaultGenerateCount
	}

	batch, err := s.generation.Generate(ctx, GenerateParams{
		ExamName:   exam.Name,
		ExamType:   exam.ExamType,
		Count:      count,
		Domain:     req.Domain,
		Preference: req.ProviderPreference,
		ManusLast:  req.UseManus != nil && !*req.UseManus,
		Prompt:     req.Prompt,
	})
	if err != nil {
		return nil, err
	}

	res, persistErr := s.generation.Persist(ctx, exam.ID, batch.Records, 0)
	interrupted := interruptedWrite(persistErr, exam.ID, res)
	total := s.countAfterWrite(ctx, exam.ID)

	msg := fmt.Sprintf("Successfully generated %d questions", res.Created)
	if interrupted {
		msg = fmt.Sprintf("Interrupted after saving %d questions", res.Created)
	}
	return &dto.GenerateQuestionsResponse{
		Success:        !interrupted,
		Message:        msg,
		Interrupted:    interrupted,
		CreatedCount:   res.Created,
		RequestedCount: count,
		TotalQuestions: total,
		SkippedCount:   res.Skipped,
		RejectedCount:  batch.Rejected + res.Rejected,
		DroppedCount:   batch.Dropped + res.Dropped,
		FailedCount:    res.Failed,
		Provider:       batch.Provider,
	}, nil
}

// PreGenerate tops up the first active exam of a type. It calls providers
// only for the shortfall, or for the full amount when forced.
func (s *adminExamService) PreGenerate(ctx context.Context, req dto.PreGenerateRequest) (*dto.PreGenerateResponse, error) {
	exam, err := s.examRepo.FindFirstActiveByType(ctx, req.ExamType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no active exam of type %q", ErrExamNotFound, req.ExamType)
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching exam of type %s: %w", req.ExamType, err)
	}

	requested := req.NumQuestions
	if requested <= 0 {
		requested = DefaultGenerateCount
	}

	existing, err := s.questionRepo.CountByExam(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting questions for exam %d: %w", exam.ID, err)
	}

	resp := &dto.PreGenerateResponse{
		Success:        true,
		ExamID:         exam.ID,
		ExamName:       exam.Name,
		ExamType:       exam.ExamType,
		ExistingCount:  existing,
		RequestedCount: requested,
		TotalQuestions: existing,
	}

	if !req.ForceGenerate && existing >= int64(requested) {
		resp.Source = SourceStore
		resp.Message = fmt.Sprintf("Exam already has %d questions, nothing generated", existing)
		return resp, nil
	}

	target := requested
	if !req.ForceGenerate {
		target = requested - int(existing)
	}

	batch, err := s.generation.Generate(ctx, GenerateParams{
		ExamName:   exam.Name,
		ExamType:   exam.ExamType,
		Count:      target,
		Preference: req.ProviderPreference,
		ManusLast:  req.UseManus != nil && !*req.UseManus,
		Prompt:     req.Prompt,
	})
	if err != nil {
		return nil, err
	}

	res, persistErr := s.generation.Persist(ctx, exam.ID, batch.Records, target)
	interrupted := interruptedWrite(persistErr, exam.ID, res)
	total := s.countAfterWrite(ctx, exam.ID)
	if total < existing+int64(res.Created) {
		total = existing + int64(res.Created)
	}

	resp.Source = SourceGenerated
	resp.Provider = batch.Provider
	resp.CreatedCount = res.Created
	resp.SkippedCount = res.Skipped
	resp.RejectedCount = batch.Rejected + res.Rejected
	resp.FailedCount = res.Failed
	resp.TotalQuestions = total
	resp.Message = fmt.Sprintf("Generated %d questions for %s", res.Created, exam.Name)
	if interrupted {
		resp.Success = false
		resp.Interrupted = true
		resp.Message = fmt.Sprintf("Interrupted after saving %d questions for %s", res.Created, exam.Name)
	}
	return resp, nil
}

func (s *adminExamService) ImportQuestions(ctx context.Context, examID uint, raws []llm.RawRecord) (*dto.ImportQuestionsResponse, error) {
	exam, err := s.findExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	res, importErr := s.generation.Import(ctx, exam.ID, raws)
	interrupted := interruptedWrite(importErr, exam.ID, res)
	total := s.countAfterWrite(ctx, exam.ID)

	log.Info().Uint("examID", exam.ID).Int("imported", res.Created).Int("skipped", res.Skipped).Bool("interrupted", interrupted).Msg("Questions imported")
	return &dto.ImportQuestionsResponse{
		Success:        !interrupted,
		Interrupted:    interrupted,
		ImportedCount:  res.Created,
		SkippedCount:   res.Skipped,
		RejectedCount:  res.Rejected,
		DroppedCount:   res.Dropped,
		FailedCount:    res.Failed,
		TotalQuestions: total,
	}, nil
}

// interruptedWrite logs a batch cut short by its context. The counts in res
// are still reported to the caller.
func interruptedWrite(err error, examID uint, res GenerationResult) bool {
	if err == nil {
		return false
	}
	log.Warn().Err(err).Uint("examID", examID).Int("created", res.Created).Int("skipped", res.Skipped).Msg("Saving questions interrupted")
	return true
}

// countAfterWrite counts even when ctx was cancelled mid-batch, so the
// response reflects rows that were written.
func (s *adminExamService) countAfterWrite(ctx context.Context, examID uint) int64 {
	total, err := s.questionRepo.CountByExam(context.WithoutCancel(ctx), examID)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("Failed to count questions after write")
	}
	return total
}
