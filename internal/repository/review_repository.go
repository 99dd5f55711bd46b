package repository

import (
	"context"
	"errors"

	"github.com/lshigami/certpool/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Upsert keys on (user_uid, exam_id); created reports whether a new row was inserted.
	Upsert(ctx context.Context, review *model.Review) (created bool, err error)
	ListApproved(ctx context.Context, examID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *model.Review) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Review
		err := tx.Where("user_uid = ? AND exam_id = ?", review.UserUID, review.ExamID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(review).Error
		}
		if err != nil {
			return err
		}
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		review.IsApproved = existing.IsApproved
		review.IsFeatured = existing.IsFeatured
		return tx.Model(&existing).Updates(map[string]interface{}{
			"user_name":      review.UserName,
			"user_photo_url": review.UserPhotoURL,
			"user_email":     review.UserEmail,
			"rating":         review.Rating,
			"comment":        review.Comment,
			"exam_score":     review.ExamScore,
			"passed":         review.Passed,
		}).Error
	})
	return created, err
}

func (r *reviewRepository) ListApproved(ctx context.Context, examID uint) ([]model.Review, error) {
	q := r.db.WithContext(ctx).Preload("Exam").Where("is_approved = ?", true)
	if examID != 0 {
		q = q.Where("exam_id = ?", examID)
	}
	var reviews []model.Review
	err := q.Order("is_featured DESC, created_at DESC").Find(&reviews).Error
	return reviews, err
}
