package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// ErrGoalLimit 每周目标已达上限
var ErrGoalLimit = fmt.Errorf("%w: Maximum of %d goals per week allowed", util.ErrLimitExceeded, model.MaxGoalsPerWeek)

// GoalService 周目标生命周期与周汇总
type GoalService struct {
	repo     *repository.GoalRepository
	students *repository.StudentRepository
	clock    util.Clock
	loc      *time.Location
}

func NewGoalService(repo *repository.GoalRepository, students *repository.StudentRepository, clock util.Clock, loc *time.Location) *GoalService {
	return &GoalService{
		repo:     repo,
		students: students,
		clock:    clock,
		loc:      loc,
	}
}

type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// GoalStats 由一组目标推导出的周统计
type GoalStats struct {
	TotalGoals int
	Completed  int
	Percentage int
	Status     model.SummaryStatus
}

// SummarizeGoals 百分比为 round(100*C/N)，N=0 时为 0
func SummarizeGoals(goals []model.Goal) GoalStats {
	stats := GoalStats{TotalGoals: len(goals)}
	for _, g := range goals {
		if g.IsCompleted {
			stats.Completed++
		}
	}

	switch {
	case stats.TotalGoals == 0:
		stats.Status = model.SummaryEmpty
	case stats.Completed == stats.TotalGoals:
		stats.Status = model.SummaryCompleted
	default:
		stats.Status = model.SummaryIncomplete
	}

	if stats.TotalGoals > 0 {
		stats.Percentage = int(math.Round(100 * float64(stats.Completed) / float64(stats.TotalGoals)))
	}
	return stats
}

// CurrentWeek 学校时区下的当前 ISO 年和周
func (s *GoalService) CurrentWeek() (year, week int) {
	return util.ISOWeek(s.clock.Now(), s.loc)
}

// CurrentWeekWindow 当前 ISO 周及其周一 00:00 到周日 23:59:59.999 的时间范围
func (s *GoalService) CurrentWeekWindow() (year, week int, window util.Window, err error) {
	year, week = s.CurrentWeek()
	window, err = util.WeekWindow(week, year, s.loc)
	return year, week, window, err
}

// CreateGoal 在本周新建目标，每周最多 5 个
func (s *GoalService) CreateGoal(ctx context.Context, studentID uint, req CreateGoalRequest) (*model.Goal, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	year, week := s.CurrentWeek()
	goal := &model.Goal{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: false,
		WeekNumber:  week,
		Year:        year,
	}
	goal.CreatedAt = s.clock.Now().UTC()

	err := s.repo.CreateWithinLimit(ctx, goal, model.MaxGoalsPerWeek, ErrGoalLimit)
	switch {
	case err == nil:
		return goal, nil
	case errors.Is(err, util.ErrLimitExceeded):
		monitoring.SubmissionRejected.WithLabelValues("goal", "limit_exceeded").Inc()
		return nil, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: student %d", util.ErrNotFound, studentID)
	}
	return nil, err
}

// ToggleGoal 翻转完成状态。调用方随后负责重新计算周汇总
func (s *GoalService) ToggleGoal(ctx context.Context, studentID, goalID uint) (*model.Goal, error) {
	goal, err := s.repo.ToggleCompletion(ctx, goalID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal %d", util.ErrNotFound, goalID)
		}
		return nil, err
	}
	return goal, nil
}

// WeeklyGoals 本周目标，按创建时间排序
// ToggleAndSummarize 切换完成状态，并重算目标所属那一周的汇总
func (s *GoalService) ToggleAndSummarize(ctx context.Context, studentID, goalID uint) (*model.Goal, *model.WeeklyGoalSummary, error) {
	goal, err := s.ToggleGoal(ctx, studentID, goalID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.RecomputeSummaryFor(ctx, studentID, goal.Year, goal.WeekNumber)
	return goal, summary, err
}

func (s *GoalService) WeeklyGoals(ctx context.Context, studentID uint) ([]model.Goal, error) {
	year, week := s.CurrentWeek()
	return s.repo.ListForWeek(ctx, studentID, week, year)
}

// RecomputeWeeklySummary 重新计算本周汇总
func (s *GoalService) RecomputeWeeklySummary(ctx context.Context, studentID uint) (*model.WeeklyGoalSummary, error) {
	year, week := s.CurrentWeek()
	return s.RecomputeSummaryFor(ctx, studentID, year, week)
}

// RecomputeSummaryFor 从 Goal 全量推导指定周的汇总并 upsert，幂等
func (s *GoalService) RecomputeSummaryFor(ctx context.Context, studentID uint, year, week int) (*model.WeeklyGoalSummary, error) {
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: student %d", util.ErrNotFound, studentID)
	}

	goals, err := s.repo.ListForWeek(ctx, studentID, week, year)
	if err != nil {
		return nil, err
	}
	stats := SummarizeGoals(goals)

	return s.repo.UpsertSummary(ctx, &model.WeeklyGoalSummary{
		StudentID:  studentID,
		WeekNumber: week,
		Year:       year,
		TotalGoals: stats.TotalGoals,
		Completed:  stats.Completed,
		Percentage: stats.Percentage,
		Status:     stats.Status,
		CreatedAt:  s.clock.Now().UTC(),
	})
}

// YearlySummary 某年的所有周汇总，按 (year, week) 升序
func (s *GoalService) YearlySummary(ctx context.Context, studentID uint, year int) ([]model.WeeklyGoalSummary, error) {
	if year < 2000 || year > 9999 {
		return nil, fmt.Errorf("%w: invalid year %d", util.ErrInvalidArgument, year)
	}
	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: student %d", util.ErrNotFound, studentID)
	}
	return s.repo.ListSummariesForYear(ctx, studentID, year)
}

// Backfill 对某年每个有目标的周重放一次汇总计算，用于汇总丢失后的恢复
func (s *GoalService) Backfill(ctx context.Context, studentID uint, year int) ([]model.WeeklyGoalSummary, error) {
	weeks, err := s.repo.WeeksWithGoals(ctx, studentID, year)
	if err != nil {
		return nil, err
	}
	for _, week := range weeks {
		if _, err := s.RecomputeSummaryFor(ctx, studentID, year, week); err != nil {
			return nil, fmt.Errorf("backfill week %d/%d: %w", week, year, err)
		}
	}
	return s.YearlySummary(ctx, studentID, year)
}

// ResetCurrentWeek 将本周所有目标置为未完成，返回受影响行数
func (s *GoalService) ResetCurrentWeek(ctx context.Context, studentID uint) (int64, error) {
	year, week := s.CurrentWeek()
	return s.repo.ResetCompletionForWeek(ctx, studentID, week, year)
}
