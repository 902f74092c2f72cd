package model

// MoodEntry 每日心情记录，每个学生每个自然日（学校时区）最多一条。
// 管理员补录的记录 DayKey 为空，不受唯一索引约束
// swagger:model MoodEntry
type MoodEntry struct {
	SubmissionBase
	StudentID uint    `gorm:"not null;uniqueIndex:idx_mood_student_day;index" json:"studentId"`
	MoodLevel int     `gorm:"not null" json:"moodLevel"`
	Notes     string  `gorm:"type:text" json:"notes,omitempty"`
	DayKey    *string `gorm:"size:10;uniqueIndex:idx_mood_student_day" json:"dayKey,omitempty"`
	Forced    bool    `gorm:"default:false" json:"forced"`
	ForcedBy  *uint   `json:"forcedBy,omitempty"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
