package model

import "time"

const (
	ExamTypeSolutionsArchitect = "solutions_architect"
	ExamTypeCloudPractitioner  = "cloud_practitioner"
	ExamTypeDeveloper          = "developer"
	ExamTypeSysOps             = "sysops"
	ExamTypeSecurity           = "security"
	ExamTypeMachineLearning    = "machine_learning"
	ExamTypeDataAnalytics      = "data_analytics"
	ExamTypeDatabase           = "database"
	ExamTypeAdvancedNetworking = "advanced_networking"
)

// examTypeDisplayNames is used to phrase generation prompts.
var examTypeDisplayNames = map[string]string{
	ExamTypeSolutionsArchitect: "solution architect",
	ExamTypeCloudPractitioner:  "cloud practitioner",
	ExamTypeDeveloper:          "developer",
	ExamTypeSysOps:             "sysops administrator",
	ExamTypeSecurity:           "security specialist",
	ExamTypeMachineLearning:    "machine learning",
	ExamTypeDataAnalytics:      "data analytics",
	ExamTypeDatabase:           "database",
	ExamTypeAdvancedNetworking: "advanced networking",
}

// ExamTypes returns the known exam types in no particular order.
func ExamTypes() []string {
	types := make([]string, 0, len(examTypeDisplayNames))
	for t := range examTypeDisplayNames {
		types = append(types, t)
	}
	return types
}

func ValidExamType(t string) bool {
	_, ok := examTypeDisplayNames[t]
	return ok
}

// ExamTypeDisplayName falls back to the raw type when it is unknown.
func ExamTypeDisplayName(t string) string {
	if name, ok := examTypeDisplayNames[t]; ok {
		return name
	}
	return t
}

type Exam struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Name             string     `json:"name" gorm:"size:200;not null;uniqueIndex"` // "AWS Certified Solutions Architect - Associate"
	ExamType         string     `json:"exam_type" gorm:"size:50;not null;index"`
	Description      string     `json:"description" gorm:"type:text"`
	TotalQuestions   int        `json:"total_questions" gorm:"not null;default:50"`
	TimeLimitMinutes int        `json:"time_limit_minutes" gorm:"not null;default:90"`
	PassingScore     int        `json:"passing_score" gorm:"not null;default:70"`
	IsActive         bool       `json:"is_active" gorm:"not null;index"`
	Questions        []Question `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
