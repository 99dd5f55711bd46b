package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NormalizeDifficulty maps anything outside the known levels to medium.
func NormalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ExamID       uint      `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_question_exam_text"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	TextHash     string    `json:"-" gorm:"size:64;not null;uniqueIndex:idx_question_exam_text"`
	Domain       string    `json:"domain" gorm:"size:100;index"`
	Difficulty   string    `json:"difficulty" gorm:"size:10;not null;default:'medium';index"`
	Explanation  string    `json:"explanation" gorm:"type:text"`
	Answers      []Answer  `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HashQuestionText is the duplicate key for a question within an exam.
func HashQuestionText(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// CorrectLetter returns nil when no answer is marked correct.
func (q *Question) CorrectLetter() *string {
	for _, a := range q.Answers {
		if a.IsCorrect {
			letter := a.Letter
			return &letter
		}
	}
	return nil
}
