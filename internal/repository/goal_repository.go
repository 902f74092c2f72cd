package repository

import (
	"context"
	"mindcare_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalRepository 处理周目标及周汇总的数据访问
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// CountForWeek 统计某学生某周的目标数
func (r *GoalRepository) CountForWeek(tx *gorm.DB, studentID uint, week, year int) (int64, error) {
	var count int64
	err := tx.Model(&model.Goal{}).
		Where("student_id = ? AND week_number = ? AND year = ?", studentID, week, year).
		Count(&count).Error
	return count, err
}

// CreateWithinLimit 在事务内检查周上限后插入，超限时返回 limitErr
func (r *GoalRepository) CreateWithinLimit(ctx context.Context, goal *model.Goal, limit int, limitErr error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 锁住学生行，串行化同一学生的并发创建
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&model.Student{}, goal.StudentID).Error; err != nil {
			return err
		}

		count, err := r.CountForWeek(tx, goal.StudentID, goal.WeekNumber, goal.Year)
		if err != nil {
			return err
		}
		if count >= int64(limit) {
			return limitErr
		}
		return tx.Create(goal).Error
	})
}

func (r *GoalRepository) FindByIDAndStudentID(ctx context.Context, id, studentID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.WithContext(ctx).Where("id = ? AND student_id = ?", id, studentID).First(&goal).Error
	return &goal, err
}

// ToggleCompletion 原子翻转完成状态并返回最新记录
func (r *GoalRepository) ToggleCompletion(ctx context.Context, id, studentID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND student_id = ?", id, studentID).
			First(&goal).Error; err != nil {
			return err
		}
		goal.IsCompleted = !goal.IsCompleted
		return tx.Model(&goal).Update("is_completed", goal.IsCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) ListForWeek(ctx context.Context, studentID uint, week, year int) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND week_number = ? AND year = ?", studentID, week, year).
		Order("created_at, id").
		Find(&goals).Error
	return goals, err
}

// ResetCompletionForWeek 批量将某周目标置为未完成，返回受影响行数
func (r *GoalRepository) ResetCompletionForWeek(ctx context.Context, studentID uint, week, year int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Goal{}).
		Where("student_id = ? AND week_number = ? AND year = ? AND is_completed = ?", studentID, week, year, true).
		Update("is_completed", false)
	return res.RowsAffected, res.Error
}

// WeeksWithGoals 返回某学生某年有目标的所有周
func (r *GoalRepository) WeeksWithGoals(ctx context.Context, studentID uint, year int) ([]int, error) {
	var weeks []int
	err := r.DB.WithContext(ctx).Model(&model.Goal{}).
		Where("student_id = ? AND year = ?", studentID, year).
		Distinct("week_number").
		Order("week_number").
		Pluck("week_number", &weeks).Error
	return weeks, err
}

// UpsertSummary 按 (student_id, week_number, year) 写入或覆盖周汇总，返回库中最新记录
func (r *GoalRepository) UpsertSummary(ctx context.Context, summary *model.WeeklyGoalSummary) (*model.WeeklyGoalSummary, error) {
	db := r.DB.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "week_number"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_goals", "completed", "percentage", "status"}),
	}).Create(summary).Error
	if err != nil {
		return nil, err
	}

	var stored model.WeeklyGoalSummary
	err = db.Where("student_id = ? AND week_number = ? AND year = ?", summary.StudentID, summary.WeekNumber, summary.Year).
		First(&stored).Error
	return &stored, err
}

func (r *GoalRepository) ListSummariesForYear(ctx context.Context, studentID uint, year int) ([]model.WeeklyGoalSummary, error) {
	var summaries []model.WeeklyGoalSummary
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND year = ?", studentID, year).
		Order("year, week_number").
		Find(&summaries).Error
	return summaries, err
}
