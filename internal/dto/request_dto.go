package dto

// CreateExamRequest is used by admins to register a new exam.
type CreateExamRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	ExamType         string `json:"exam_type" binding:"required"`
	Description      string `json:"description"`
	TotalQuestions   int    `json:"total_questions" binding:"omitempty,min=1"`
	TimeLimitMinutes int    `json:"time_limit_minutes" binding:"omitempty,min=1"`
	PassingScore     int    `json:"passing_score" binding:"omitempty,min=1,max=100"`
	IsActive         *bool  `json:"is_active"`
}

// GenerateQuestionsRequest drives AI generation for one exam.
type GenerateQuestionsRequest struct {
	NumQuestions       int    `json:"num_questions" binding:"omitempty,min=1,max=500"` // default 100
	Domain             string `json:"domain"`
	ProviderPreference string `json:"provider_preference" binding:"omitempty,oneof=manus openai gemini"`
	UseManus           *bool  `json:"use_manus"` // false moves manus to the end of the fallback order
	Prompt             string `json:"prompt"`
}

// PreGenerateRequest fills the pool of the first active exam of a type.
type PreGenerateRequest struct {
	ExamType           string `json:"exam_type" binding:"required"`
	NumQuestions       int    `json:"num_questions" binding:"omitempty,min=1,max=500"`
	ProviderPreference string `json:"provider_preference" binding:"omitempty,oneof=manus openai gemini"`
	UseManus           *bool  `json:"use_manus"`
	ForceGenerate      bool   `json:"force_generate"`
	Prompt             string `json:"prompt"`
}

type CreateReviewRequest struct {
	Exam         uint   `json:"exam" binding:"required"`
	UserUID      string `json:"user_uid" binding:"required,max=128"`
	UserName     string `json:"user_name" binding:"required,max=200"`
	UserPhotoURL string `json:"user_photo_url"`
	UserEmail    string `json:"user_email" binding:"omitempty,email"`
	Rating       int    `json:"rating" binding:"required"`
	Comment      string `json:"comment"`
	ExamScore    *int   `json:"exam_score"`
	Passed       *bool  `json:"passed"`
}
