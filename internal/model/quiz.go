package model

import "gorm.io/datatypes"

// Quiz 心理健康小知识题
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer string                      `gorm:"size:255;not null" json:"-"`
	Active        bool                        `gorm:"default:true;index" json:"active"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt 每个学生每道题每天只能作答一次
// swagger:model QuizAttempt
type QuizAttempt struct {
	SubmissionBase
	QuizID         uint   `gorm:"not null;uniqueIndex:idx_attempt_student_quiz_day" json:"quizId"`
	StudentID      uint   `gorm:"not null;uniqueIndex:idx_attempt_student_quiz_day;index" json:"studentId"`
	DayKey         string `gorm:"size:10;not null;uniqueIndex:idx_attempt_student_quiz_day" json:"dayKey"`
	SelectedAnswer string `gorm:"size:255" json:"selectedAnswer"`
	Score          int    `json:"score"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// DailyQuizSet 学生某天的小测题目，首次生成后固定，当天不再随题库变化
// swagger:model DailyQuizSet
type DailyQuizSet struct {
	BaseModel
	StudentID uint                      `gorm:"not null;uniqueIndex:idx_quiz_set_student_day" json:"studentId"`
	DayKey    string                    `gorm:"size:10;not null;uniqueIndex:idx_quiz_set_student_day" json:"dayKey"`
	QuizIDs   datatypes.JSONSlice[uint] `json:"quizIds"`
}

func (DailyQuizSet) TableName() string {
	return "daily_quiz_sets"
}
