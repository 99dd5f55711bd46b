package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/certpool/internal/pool"
)

var (
	// ErrNotConfigured is returned before any network call when no provider has credentials.
	ErrNotConfigured = errors.New("no question generation provider is configured, set MANUS_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")
	ErrExamNotFound  = errors.New("exam not found")
	ErrInvalidExam   = errors.New("invalid exam")
	ErrInvalidReview = errors.New("invalid review")
)

// GenerationFailedError is returned when every configured provider failed.
type GenerationFailedError struct {
	Errs []error
}

func (e *GenerationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "all question generation providers failed: " + strings.Join(msgs, "; ")
}

func (e *GenerationFailedError) Unwrap() []error { return e.Errs }

// NoQuestionsError carries the exam so callers can suggest generating questions.
type NoQuestionsError struct {
	ExamID   uint
	ExamName string
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("exam %d (%s): %v", e.ExamID, e.ExamName, pool.ErrNoQuestionsAvailable)
}

func (e *NoQuestionsError) Unwrap() error { return pool.ErrNoQuestionsAvailable }
