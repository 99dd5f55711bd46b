package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NoQuestionsResponse is returned with 404 when an exam has no questions yet.
type NoQuestionsResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
	ExamID     uint   `json:"exam_id"`
	ExamName   string `json:"exam_name"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type ExamResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	ExamType         string    `json:"exam_type"`
	Description      string    `json:"description"`
	TotalQuestions   int       `json:"total_questions"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	PassingScore     int       `json:"passing_score"`
	IsActive         bool      `json:"is_active"`
	QuestionsCount   int       `json:"questions_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type OptionResponse struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// QuestionResponse carries the text twice, as question_text and question,
// for clients written against either field name.
type QuestionResponse struct {
	ID                  uint             `json:"id"`
	ExamID              uint             `json:"exam_id"`
	QuestionText        string           `json:"question_text"`
	Question            string           `json:"question"`
	Domain              string           `json:"domain"`
	Difficulty          string           `json:"difficulty"`
	Explanation         string           `json:"explanation"`
	Options             []OptionResponse `json:"options"`
	CorrectAnswerLetter *string          `json:"correct_answer_letter"`
}

type RandomQuestionsResponse struct {
	Questions      []QuestionResponse `json:"questions"`
	Count          int                `json:"count"`
	PoolSize       int                `json:"pool_size"`
	TotalAvailable int                `json:"total_available"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
}

type GenerateQuestionsResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	CreatedCount   int    `json:"created_count"`
	RequestedCount int    `json:"requested_count"`
	TotalQuestions int64  `json:"total_questions"`
	SkippedCount   int    `json:"skipped_count"`
	RejectedCount  int    `json:"rejected_count"`
	DroppedCount   int    `json:"dropped_count"`
	FailedCount    int    `json:"failed_count"`
	Interrupted    bool   `json:"interrupted,omitempty"`
	Provider       string `json:"provider"`
}

// PreGenerateResponse.Source is "store" when enough questions already existed
// and "generated" when providers were called.
type PreGenerateResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Source         string `json:"source"`
	ExamID         uint   `json:"exam_id"`
	ExamName       string `json:"exam_name"`
	ExamType       string `json:"exam_type"`
	ExistingCount  int64  `json:"existing_count"`
	RequestedCount int    `json:"requested_count"`
	CreatedCount   int    `json:"created_count"`
	SkippedCount   int    `json:"skipped_count"`
	RejectedCount  int    `json:"rejected_count"`
	FailedCount    int    `json:"failed_count"`
	Interrupted    bool   `json:"interrupted,omitempty"`
	TotalQuestions int64  `json:"total_questions"`
	Provider       string `json:"provider,omitempty"`
}

type ImportQuestionsResponse struct {
	Success        bool  `json:"success"`
	ImportedCount  int   `json:"imported_count"`
	SkippedCount   int   `json:"skipped_count"`
	RejectedCount  int   `json:"rejected_count"`
	DroppedCount   int   `json:"dropped_count"`
	FailedCount    int   `json:"failed_count"`
	Interrupted    bool  `json:"interrupted,omitempty"`
	TotalQuestions int64 `json:"total_questions"`
}

type ReviewResponse struct {
	ID           uint      `json:"id"`
	ExamID       uint      `json:"exam"`
	ExamName     string    `json:"exam_name"`
	UserUID      string    `json:"user_uid"`
	UserName     string    `json:"user_name"`
	UserPhotoURL string    `json:"user_photo_url,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ExamScore    *int      `json:"exam_score,omitempty"`
	Passed       *bool     `json:"passed,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
