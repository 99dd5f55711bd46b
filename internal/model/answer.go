package model

import "time"

type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index;uniqueIndex:idx_answer_question_letter"`
	Letter     string    `json:"letter" gorm:"size:1;not null;uniqueIndex:idx_answer_question_letter"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
