package model

import "time"

type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ExamID       uint      `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_review_user_exam"`
	Exam         Exam      `json:"exam,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserUID      string    `json:"user_uid" gorm:"size:128;not null;uniqueIndex:idx_review_user_exam"`
	UserName     string    `json:"user_name" gorm:"size:200;not null"`
	UserPhotoURL string    `json:"user_photo_url,omitempty"`
	UserEmail    string    `json:"user_email"`
	Rating       int       `json:"rating" gorm:"not null"` // 1-5
	Comment      string    `json:"comment" gorm:"type:text"`
	ExamScore    *int      `json:"exam_score,omitempty"`
	Passed       *bool     `json:"passed,omitempty"`
	IsApproved   bool      `json:"is_approved" gorm:"not null"`
	IsFeatured   bool      `json:"is_featured" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
