package repository

import (
	"context"

	"github.com/lshigami/certpool/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamWithCount struct {
	model.Exam
	QuestionsCount int
}

type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Exam, error)
	FindFirstActiveByType(ctx context.Context, examType string) (*model.Exam, error)
	FindActiveByType(ctx context.Context, examType string) ([]ExamWithCount, error)
	FindAllActiveWithQuestionCount(ctx context.Context) ([]ExamWithCount, error)
	// UpsertByName creates the exam or updates the one with the same name.
	UpsertByName(ctx context.Context, exam *model.Exam) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindActiveByID(ctx context.Context, id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindFirstActiveByType(ctx context.Context, examType string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Where("exam_type = ? AND is_active = ?", examType, true).
		Order("id ASC").
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) withQuestionCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Exam{}).
		Select("exams.*, (SELECT COUNT(*) FROM questions WHERE questions.exam_id = exams.id) as questions_count").
		Where("exams.is_active = ?", true).
		Order("exams.name ASC")
}

func (r *examRepository) FindActiveByType(ctx context.Context, examType string) ([]ExamWithCount, error) {
	var results []ExamWithCount
	err := r.withQuestionCount(ctx).Where("exams.exam_type = ?", examType).Scan(&results).Error
	return results, err
}

func (r *examRepository) FindAllActiveWithQuestionCount(ctx context.Context) ([]ExamWithCount, error) {
	var results []ExamWithCount
	err := r.withQuestionCount(ctx).Scan(&results).Error
	return results, err
}

func (r *examRepository) UpsertByName(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"exam_type", "description", "total_questions", "time_limit_minutes",
			"passing_score", "is_active", "updated_at",
		}),
	}).Create(exam).Error
}
