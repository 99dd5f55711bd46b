package repository

import (
	"context"
	"testing"

	"github.com/lshigami/certpool/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestExamRepositoryQuestionCounts(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewExamRepository(db)
	questions := NewQuestionRepository(db)

	sa := createExam(t, db, "B Solutions Architect", model.ExamTypeSolutionsArchitect, true)
	dev := createExam(t, db, "A Developer", model.ExamTypeDeveloper, true)
	retired := createExam(t, db, "C Retired", model.ExamTypeSolutionsArchitect, false)
	for _, text := range []string{"q1", "q2"} {
		require.NoError(t, questions.CreateWithAnswers(ctx, newQuestion(sa.ID, text, "A", "B")))
	}
	require.NoError(t, questions.CreateWithAnswers(ctx, newQuestion(retired.ID, "q1", "A", "B")))

	all, err := repo.FindAllActiveWithQuestionCount(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, dev.ID, all[0].ID, "ordered by name")
	assert.Equal(t, 0, all[0].QuestionsCount)
	assert.Equal(t, sa.ID, all[1].ID)
	assert.Equal(t, "B Solutions Architect", all[1].Name)
	assert.Equal(t, 2, all[1].QuestionsCount)

	byType, err := repo.FindActiveByType(ctx, model.ExamTypeSolutionsArchitect)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, sa.ID, byType[0].ID)
	assert.Equal(t, 2, byType[0].QuestionsCount)
}

func TestExamRepositoryActiveLookups(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewExamRepository(db)

	retired := createExam(t, db, "Retired Developer", model.ExamTypeDeveloper, false)
	first := createExam(t, db, "Developer One", model.ExamTypeDeveloper, true)
	createExam(t, db, "Developer Two", model.ExamTypeDeveloper, true)

	got, err := repo.FindFirstActiveByType(ctx, model.ExamTypeDeveloper)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.FindActiveByID(ctx, retired.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	found, err := repo.FindByID(ctx, retired.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	_, err = repo.FindFirstActiveByType(ctx, model.ExamTypeSecurity)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExamRepositoryUniqueName(t *testing.T) {
	db := openTestDB(t)
	createExam(t, db, "AWS Developer Associate", model.ExamTypeDeveloper, true)

	err := NewExamRepository(db).Create(context.Background(), &model.Exam{Name: "AWS Developer Associate", ExamType: model.ExamTypeDeveloper})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpsertByName(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewExamRepository(db)

	require.NoError(t, repo.UpsertByName(ctx, &model.Exam{
		Name: "AWS Cloud Practitioner", ExamType: model.ExamTypeCloudPractitioner,
		Description: "v1", TotalQuestions: 50, TimeLimitMinutes: 90, PassingScore: 70, IsActive: true,
	}))
	require.NoError(t, repo.UpsertByName(ctx, &model.Exam{
		Name: "AWS Cloud Practitioner", ExamType: model.ExamTypeCloudPractitioner,
		Description: "v2", TotalQuestions: 65, TimeLimitMinutes: 90, PassingScore: 70, IsActive: true,
	}))

	var exams []model.Exam
	require.NoError(t, db.Find(&exams).Error)
	require.Len(t, exams, 1)
	assert.Equal(t, "v2", exams[0].Description)
	assert.Equal(t, 65, exams[0].TotalQuestions)
}

func TestDeletingExamCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	exam := createExam(t, db, "AWS Solutions Architect", model.ExamTypeSolutionsArchitect, true)
	require.NoError(t, NewQuestionRepository(db).CreateWithAnswers(ctx, newQuestion(exam.ID, "Which service stores objects?", "A", "B", "C")))
	_, err := NewReviewRepository(db).Upsert(ctx, &model.Review{ExamID: exam.ID, UserUID: "u1", UserName: "Sam", Rating: 5})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&model.Exam{}, exam.ID).Error)

	for _, m := range []any{&model.Question{}, &model.Answer{}, &model.Review{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T rows left after deleting their exam", m)
	}
}
