package service

import (
	"context"
	"errors"
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/logger"
	"mindcare_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 90
)

// MoodService 每日心情记录
type MoodService struct {
	repo          *repository.MoodRepository
	students      *repository.StudentRepository
	clock         util.Clock
	loc           *time.Location
	skewTolerance time.Duration
}

func NewMoodService(repo *repository.MoodRepository, students *repository.StudentRepository, clock util.Clock, loc *time.Location, skewTolerance time.Duration) *MoodService {
	return &MoodService{
		repo:          repo,
		students:      students,
		clock:         clock,
		loc:           loc,
		skewTolerance: skewTolerance,
	}
}

type SubmitMoodRequest struct {
	MoodLevel  int        `json:"moodLevel"`
	Notes      string     `json:"notes" validate:"max=2000"`
	ClientTime *time.Time `json:"clientTime"`
}

type ForceMoodRequest struct {
	MoodLevel int    `json:"moodLevel"`
	Notes     string `json:"notes" validate:"max=2000"`
	Reason    string `json:"reason" validate:"required,max=500"`
}

// ValidateMoodLevel 心情等级只能是 1..5
func ValidateMoodLevel(level int) error {
	if level < 1 || level > 5 {
		return fmt.Errorf("%w: mood level must be between 1 and 5, got %d", util.ErrInvalidArgument, level)
	}
	return nil
}

// Submit 提交今日心情，同一学生同一自然日只能提交一次
func (s *MoodService) Submit(ctx context.Context, studentID uint, req SubmitMoodRequest) (*model.MoodEntry, error) {
	if err := ValidateMoodLevel(req.MoodLevel); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	ref := util.ReferenceTime(s.clock.Now(), req.ClientTime, s.skewTolerance)
	dayKey := util.DayKey(ref, s.loc)

	entry := &model.MoodEntry{
		StudentID: studentID,
		MoodLevel: req.MoodLevel,
		Notes:     req.Notes,
		DayKey:    &dayKey,
	}
	entry.CreatedAt = ref.UTC()

	if err := s.repo.CreateDaily(ctx, entry, util.TodayWindow(ref, s.loc)); err != nil {
		if errors.Is(err, util.ErrAlreadyExists) {
			monitoring.SubmissionRejected.WithLabelValues("mood", "already_exists").Inc()
		}
		return nil, err
	}
	return entry, nil
}

// CheckToday 返回今日心情记录，未提交时返回 nil
func (s *MoodService) CheckToday(ctx context.Context, studentID uint) (*model.MoodEntry, error) {
	return s.repo.FindInWindow(ctx, studentID, util.TodayWindow(s.clock.Now(), s.loc))
}

// History 返回最近 days 天（含今天）的记录，按时间倒序
func (s *MoodService) History(ctx context.Context, studentID uint, days int) ([]model.MoodEntry, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	today := util.TodayWindow(s.clock.Now(), s.loc)
	window := util.Window{
		Start: today.Start.AddDate(0, 0, -(days - 1)),
		End:   today.End,
	}
	return s.repo.ListSince(ctx, studentID, window)
}

// ForceCreate 管理员补录，跳过每日一次检查，记录审计日志
func (s *MoodService) ForceCreate(ctx context.Context, adminUserID, studentID uint, req ForceMoodRequest) (*model.MoodEntry, error) {
	if err := ValidateMoodLevel(req.MoodLevel); err != nil {
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: student %d", util.ErrNotFound, studentID)
	}

	entry := &model.MoodEntry{
		StudentID: studentID,
		MoodLevel: req.MoodLevel,
		Notes:     req.Notes,
		ForcedBy:  &adminUserID,
	}
	entry.CreatedAt = s.clock.Now().UTC()

	if err := s.repo.CreateForced(ctx, entry); err != nil {
		return nil, err
	}

	logger.Audit.Info("Mood entry force-created",
		zap.Uint("admin_user_id", adminUserID),
		zap.Uint("student_id", studentID),
		zap.String("entry_id", entry.ID),
		zap.String("reason", req.Reason),
	)
	return entry, nil
}
