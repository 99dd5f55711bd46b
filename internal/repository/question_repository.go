package repository

import (
	"context"

	"github.com/lshigami/certpool/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows List; zero values are ignored.
type QuestionFilter struct {
	ExamID     uint
	Domain     string
	Difficulty string
}

type QuestionRepository interface {
	ListQuestionIDs(ctx context.Context, examID uint) ([]uint, error)
	FindDuplicate(ctx context.Context, examID uint, text string) (bool, error)
	// CreateWithAnswers inserts the question and its answers in one transaction.
	CreateWithAnswers(ctx context.Context, question *model.Question) error
	// FindWithAnswersByIDs returns rows in database order, not in ids order.
	FindWithAnswersByIDs(ctx context.Context, ids []uint) ([]model.Question, error)
	CountByExam(ctx context.Context, examID uint) (int64, error)
	List(ctx context.Context, filter QuestionFilter) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) ListQuestionIDs(ctx context.Context, examID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("exam_id = ?", examID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) FindDuplicate(ctx context.Context, examID uint, text string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("exam_id = ? AND text_hash = ?", examID, model.HashQuestionText(text)).
		Count(&count).Error
	return count > 0, err
}

func (r *questionRepository) CreateWithAnswers(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answers := question.Answers
		question.Answers = nil
		if question.TextHash == "" {
			question.TextHash = model.HashQuestionText(question.QuestionText)
		}
		if err := tx.Create(question).Error; err != nil {
			question.Answers = answers
			return err
		}
		for i := range answers {
			answers[i].QuestionID = question.ID
		}
		question.Answers = answers
		if len(answers) == 0 {
			return nil
		}
		return tx.Create(&question.Answers).Error
	})
}

func (r *questionRepository) FindWithAnswersByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.letter ASC")
		}).
		Where("id IN ?", ids).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountByExam(ctx context.Context, examID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

func (r *questionRepository) List(ctx context.Context, filter QuestionFilter) ([]model.Question, error) {
	q := r.db.WithContext(ctx).Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.letter ASC")
	})
	if filter.ExamID != 0 {
		q = q.Where("exam_id = ?", filter.ExamID)
	}
	if filter.Domain != "" {
		q = q.Where("domain = ?", filter.Domain)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	var questions []model.Question
	err := q.Order("exam_id ASC, domain ASC, id ASC").Find(&questions).Error
	return questions, err
}
