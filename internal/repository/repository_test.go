package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/certpool/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB returns a migrated, empty store. It runs against Postgres when
// TEST_DATABASE_DSN is set and against a file-backed SQLite database otherwise.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var dialector gorm.Dialector
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(filepath.Join(t.TempDir(), "certpool.db") + "?_pragma=foreign_keys(1)")
	}
	db, err := gorm.Open(dialector, cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Exam{}, &model.Question{}, &model.Answer{}, &model.Review{}))

	if dsn != "" {
		require.NoError(t, db.Exec("TRUNCATE exams, questions, answers, reviews RESTART IDENTITY CASCADE").Error)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createExam(t *testing.T, db *gorm.DB, name, examType string, active bool) *model.Exam {
	t.Helper()
	exam := &model.Exam{Name: name, ExamType: examType, IsActive: active}
	require.NoError(t, NewExamRepository(db).Create(context.Background(), exam))
	return exam
}

func newQuestion(examID uint, text string, letters ...string) *model.Question {
	q := &model.Question{ExamID: examID, QuestionText: text, Difficulty: model.DifficultyMedium}
	for i, l := range letters {
		q.Answers = append(q.Answers, model.Answer{Letter: l, Text: "option " + l, IsCorrect: i == 0})
	}
	return q
}
