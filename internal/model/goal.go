package model

import "time"

type SummaryStatus string

const (
	SummaryEmpty      SummaryStatus = "EMPTY"
	SummaryIncomplete SummaryStatus = "INCOMPLETE"
	SummaryCompleted  SummaryStatus = "COMPLETED"
)

// MaxGoalsPerWeek 每周目标数量上限
const MaxGoalsPerWeek = 5

// Goal 周目标，按 ISO 周归组
// swagger:model Goal
type Goal struct {
	BaseModel
	StudentID   uint   `gorm:"not null;index:idx_goal_student_week" json:"studentId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsCompleted bool   `gorm:"default:false" json:"isCompleted"`
	WeekNumber  int    `gorm:"not null;index:idx_goal_student_week" json:"weekNumber"`
	Year        int    `gorm:"not null;index:idx_goal_student_week" json:"year"`
}

func (Goal) TableName() string {
	return "goals"
}

// WeeklyGoalSummary 由 Goal 推导出的周汇总缓存，可随时从 Goal 重新计算
// swagger:model WeeklyGoalSummary
type WeeklyGoalSummary struct {
	ID         uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID  uint          `gorm:"not null;uniqueIndex:idx_summary_student_week" json:"studentId"`
	WeekNumber int           `gorm:"not null;uniqueIndex:idx_summary_student_week" json:"weekNumber"`
	Year       int           `gorm:"not null;uniqueIndex:idx_summary_student_week" json:"year"`
	TotalGoals int           `json:"totalGoals"`
	Completed  int           `json:"completed"`
	Percentage int           `json:"percentage"`
	Status     SummaryStatus `gorm:"size:20" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (WeeklyGoalSummary) TableName() string {
	return "weekly_goal_summaries"
}
