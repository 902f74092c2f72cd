package repository

import (
	"context"
	"errors"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) ListActive(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).Where("active = ?", true).Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(ids) == 0 {
		return quizzes, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&quizzes).Error
	return quizzes, err
}

// FindInOrder 按 ids 的顺序返回题目，已删除的题目跳过
func (r *QuizRepository) FindInOrder(ctx context.Context, ids []uint) ([]model.Quiz, error) {
	found, err := r.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Quiz, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	quizzes := make([]model.Quiz, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			quizzes = append(quizzes, q)
		}
	}
	return quizzes, nil
}

// FindDailySet 未生成时返回 nil
func (r *QuizRepository) FindDailySet(ctx context.Context, studentID uint, dayKey string) (*model.DailyQuizSet, error) {
	var set model.DailyQuizSet
	err := r.DB.WithContext(ctx).Where("student_id = ? AND day_key = ?", studentID, dayKey).Take(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// SaveDailySet 并发生成时以先写入的为准，返回库中最终保存的集合
func (r *QuizRepository) SaveDailySet(ctx context.Context, set *model.DailyQuizSet) (*model.DailyQuizSet, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(set).Error
	if err != nil {
		return nil, err
	}
	stored, err := r.FindDailySet(ctx, set.StudentID, set.DayKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return set, nil
	}
	return stored, nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).First(&quiz, id).Error
	return &quiz, err
}

// CreateAttemptDaily 每个学生每道题每天只能作答一次
func (r *QuizRepository) CreateAttemptDaily(ctx context.Context, attempt *model.QuizAttempt, window util.Window) error {
	return CreateOnceInWindow(ctx, r.DB, "quiz attempt", &model.QuizAttempt{}, attempt, window,
		"student_id = ? AND quiz_id = ?", attempt.StudentID, attempt.QuizID)
}

func (r *QuizRepository) ListAttemptsInWindow(ctx context.Context, studentID uint, window util.Window) ([]model.QuizAttempt, error) {
	w := window.UTC()
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND created_at BETWEEN ? AND ?", studentID, w.Start, w.End).
		Order("created_at").
		Find(&attempts).Error
	return attempts, err
}
