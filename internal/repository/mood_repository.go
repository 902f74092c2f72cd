package repository

import (
	"context"
	"errors"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"

	"gorm.io/gorm"
)

type MoodRepository struct {
	DB *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{DB: db}
}

// CreateDaily 每日一次约束下插入心情记录
func (r *MoodRepository) CreateDaily(ctx context.Context, entry *model.MoodEntry, window util.Window) error {
	return CreateOnceInWindow(ctx, r.DB, "mood entry", &model.MoodEntry{}, entry, window, "student_id = ?", entry.StudentID)
}

// CreateForced 不做存在性检查直接插入，仅供管理员补录
func (r *MoodRepository) CreateForced(ctx context.Context, entry *model.MoodEntry) error {
	entry.DayKey = nil
	entry.Forced = true
	return r.DB.WithContext(ctx).Create(entry).Error
}

// FindInWindow 查询窗口内最早的一条记录，没有时返回 nil
func (r *MoodRepository) FindInWindow(ctx context.Context, studentID uint, window util.Window) (*model.MoodEntry, error) {
	w := window.UTC()
	var entry model.MoodEntry
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND created_at BETWEEN ? AND ?", studentID, w.Start, w.End).
		Order("created_at").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MoodRepository) ListSince(ctx context.Context, studentID uint, window util.Window) ([]model.MoodEntry, error) {
	w := window.UTC()
	var entries []model.MoodEntry
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND created_at BETWEEN ? AND ?", studentID, w.Start, w.End).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *MoodRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.MoodEntry{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}
