package model

import "gorm.io/datatypes"

type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"
)

// Label 返回面向用户的分区描述
func (z Zone) Label() string {
	switch z {
	case ZoneGreen:
		return "Positive"
	case ZoneYellow:
		return "Moderate"
	default:
		return "Needs Attention"
	}
}

// swagger:model Survey
type Survey struct {
	BaseModel
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Active      bool             `gorm:"default:true;index" json:"active"`
	Questions   []SurveyQuestion `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// SurveyQuestion Likert 五点量表题，Reverse 为反向计分题
type SurveyQuestion struct {
	BaseModel
	SurveyID uint   `gorm:"index;not null" json:"surveyId"`
	Order    int    `gorm:"column:sort_order" json:"order"`
	Text     string `gorm:"type:text;not null" json:"text"`
	Reverse  bool   `gorm:"default:false" json:"reverse"`
}

func (SurveyQuestion) TableName() string {
	return "survey_questions"
}

// SurveyResponse 每日问卷作答，Answers 中保存的是已经过反向处理的 1..5 分值
// swagger:model SurveyResponse
type SurveyResponse struct {
	SubmissionBase
	StudentID  uint                               `gorm:"not null;uniqueIndex:idx_response_student_survey_day" json:"studentId"`
	SurveyID   uint                               `gorm:"not null;uniqueIndex:idx_response_student_survey_day" json:"surveyId"`
	DayKey     string                             `gorm:"size:10;not null;uniqueIndex:idx_response_student_survey_day" json:"dayKey"`
	Answers    datatypes.JSONType[map[string]int] `json:"answers"`
	Score      int                                `json:"score"`
	MaxScore   int                                `json:"maxScore"`
	Percentage int                                `json:"percentage"`
	Zone       Zone                               `gorm:"size:10" json:"zone"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}
