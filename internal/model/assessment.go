package model

import "gorm.io/datatypes"

type Severity string

const (
	SeverityNormal          Severity = "normal"
	SeverityMild            Severity = "mild"
	SeverityModerate        Severity = "moderate"
	SeveritySevere          Severity = "severe"
	SeverityExtremelySevere Severity = "extremely_severe"
)

// InitialAssessment 入学初评（DASS-21），每个学生唯一
// swagger:model InitialAssessment
type InitialAssessment struct {
	BaseModel
	StudentID          uint                               `gorm:"uniqueIndex;not null" json:"studentId"`
	Answers            datatypes.JSONType[map[string]int] `json:"answers"`
	DepressionScore    int                                `json:"depressionScore"`
	AnxietyScore       int                                `json:"anxietyScore"`
	StressScore        int                                `json:"stressScore"`
	TotalScore         int                                `json:"totalScore"`
	IsComplete         bool                               `json:"isComplete"`
	DepressionSeverity Severity                           `gorm:"size:20" json:"depressionSeverity"`
	AnxietySeverity    Severity                           `gorm:"size:20" json:"anxietySeverity"`
	StressSeverity     Severity                           `gorm:"size:20" json:"stressSeverity"`
}

func (InitialAssessment) TableName() string {
	return "initial_assessments"
}
