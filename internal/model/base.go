package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 自增主键，用于用户、问卷、目标等配置类数据
// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SubmissionBase 学生每日提交的记录（心情、问卷作答、小测作答）。
// 每日窗口按 created_at 查询，CreatedAt 必须以 UTC 落库
// swagger:model
type SubmissionBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate 生成 UUID，并把调用方指定的 CreatedAt 转为 UTC
func (b *SubmissionBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if !b.CreatedAt.IsZero() {
		b.CreatedAt = b.CreatedAt.UTC()
	}
	return nil
}
