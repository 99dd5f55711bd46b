package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/certpool/internal/dto"
	"github.com/lshigami/certpool/internal/model"
	"github.com/lshigami/certpool/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReviewService interface {
	ListReviews(ctx context.Context, examID uint) ([]dto.ReviewResponse, error)
	// SubmitReview creates a review, or updates the user's existing review of the same exam.
	SubmitReview(ctx context.Context, req dto.CreateReviewRequest) (resp *dto.ReviewResponse, created bool, err error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	examRepo   repository.ExamRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, examRepo repository.ExamRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, examRepo: examRepo}
}

func toReviewResponse(r *model.Review) (dto.ReviewResponse, error) {
	var resp dto.ReviewResponse
	if err := copier.Copy(&resp, r); err != nil {
		return resp, fmt.Errorf("error preparing review response: %w", err)
	}
	resp.ExamName = r.Exam.Name
	return resp, nil
}

func (s *reviewService) ListReviews(ctx context.Context, examID uint) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListApproved(ctx, examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to list reviews")
		return nil, fmt.Errorf("error fetching reviews: %w", err)
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp, err := toReviewResponse(&reviews[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *reviewService) SubmitReview(ctx context.Context, req dto.CreateReviewRequest) (*dto.ReviewResponse, bool, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, false, fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidReview, req.Rating)
	}

	exam, err := s.examRepo.FindByID(ctx, req.Exam)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("%w: id %d", ErrExamNotFound, req.Exam)
	}
	if err != nil {
		return nil, false, fmt.Errorf("error fetching exam %d: %w", req.Exam, err)
	}

	review := model.Review{
		ExamID:       exam.ID,
		UserUID:      req.UserUID,
		UserName:     req.UserName,
		UserPhotoURL: req.UserPhotoURL,
		UserEmail:    req.UserEmail,
		Rating:       req.Rating,
		Comment:      req.Comment,
		ExamScore:    req.ExamScore,
		Passed:       req.Passed,
		IsApproved:   true,
	}
	created, err := s.reviewRepo.Upsert(ctx, &review)
	if err != nil {
		log.Error().Err(err).Str("userUID", req.UserUID).Uint("examID", exam.ID).Msg("Failed to save review")
		return nil, false, fmt.Errorf("database error saving review: %w", err)
	}
	review.Exam = *exam

	resp, err := toReviewResponse(&review)
	if err != nil {
		return nil, false, err
	}
	return &resp, created, nil
}
