package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/monitoring"
	"strings"
	"time"
)

type QuizService struct {
	repo      *repository.QuizRepository
	clock     util.Clock
	loc       *time.Location
	dailySize int
}

func NewQuizService(repo *repository.QuizRepository, clock util.Clock, loc *time.Location, dailySize int) *QuizService {
	if dailySize <= 0 {
		dailySize = 3
	}
	return &QuizService{
		repo:      repo,
		clock:     clock,
		loc:       loc,
		dailySize: dailySize,
	}
}

type SubmitAttemptRequest struct {
	Answer string `json:"answer" validate:"required,max=255"`
}

type AttemptResult struct {
	Attempt       *model.QuizAttempt `json:"attempt"`
	Correct       bool               `json:"correct"`
	CorrectAnswer string             `json:"correctAnswer"`
}

// pickDaily 以 (学生, 日期) 为种子确定当天的题目，同一天内结果稳定
func pickDaily(quizzes []model.Quiz, studentID uint, dayKey string, n int) []model.Quiz {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", studentID, dayKey)
	r := rand.New(rand.NewSource(int64(h.Sum64())))

	if n > len(quizzes) {
		n = len(quizzes)
	}
	picked := make([]model.Quiz, 0, n)
	for _, i := range r.Perm(len(quizzes))[:n] {
		picked = append(picked, quizzes[i])
	}
	return picked
}

// DailySet 当日小测题目。首次访问时生成并保存，当天之后的访问都返回同一组题目
func (s *QuizService) DailySet(ctx context.Context, studentID uint) ([]model.Quiz, error) {
	now := s.clock.Now()
	dayKey := util.DayKey(now, s.loc)

	saved, err := s.repo.FindDailySet(ctx, studentID, dayKey)
	if err != nil {
		return nil, err
	}
	if saved != nil {
		return s.repo.FindInOrder(ctx, saved.QuizIDs)
	}

	set, err := s.composeDailySet(ctx, studentID, dayKey, util.TodayWindow(now, s.loc))
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return set, nil
	}

	saved, err = s.repo.SaveDailySet(ctx, &model.DailyQuizSet{
		StudentID: studentID,
		DayKey:    dayKey,
		QuizIDs:   quizIDsOf(set),
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindInOrder(ctx, saved.QuizIDs)
}

// composeDailySet 当天已作答的题目优先，其余按 pickDaily 补足
func (s *QuizService) composeDailySet(ctx context.Context, studentID uint, dayKey string, today util.Window) ([]model.Quiz, error) {
	attempts, err := s.repo.ListAttemptsInWindow(ctx, studentID, today)
	if err != nil {
		return nil, err
	}
	attemptedIDs := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		attemptedIDs = append(attemptedIDs, a.QuizID)
	}
	set, err := s.repo.FindByIDs(ctx, attemptedIDs)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(set))
	for _, q := range set {
		seen[q.ID] = true
	}
	for _, q := range pickDaily(active, studentID, dayKey, s.dailySize) {
		if len(set) >= s.dailySize {
			break
		}
		if !seen[q.ID] {
			set = append(set, q)
			seen[q.ID] = true
		}
	}
	return set, nil
}

func quizIDsOf(quizzes []model.Quiz) []uint {
	ids := make([]uint, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}
	return ids
}

// SubmitAttempt 作答当日小测，每题每天一次
func (s *QuizService) SubmitAttempt(ctx context.Context, studentID, quizID uint, req SubmitAttemptRequest) (*AttemptResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	set, err := s.DailySet(ctx, studentID)
	if err != nil {
		return nil, err
	}
	var quiz *model.Quiz
	for i := range set {
		if set[i].ID == quizID {
			quiz = &set[i]
			break
		}
	}
	if quiz == nil {
		return nil, fmt.Errorf("%w: quiz %d is not in today's set", util.ErrNotFound, quizID)
	}

	now := s.clock.Now()
	correct := strings.EqualFold(strings.TrimSpace(req.Answer), strings.TrimSpace(quiz.CorrectAnswer))
	attempt := &model.QuizAttempt{
		QuizID:         quizID,
		StudentID:      studentID,
		DayKey:         util.DayKey(now, s.loc),
		SelectedAnswer: req.Answer,
	}
	if correct {
		attempt.Score = 1
	}
	attempt.CreatedAt = now.UTC()

	if err := s.repo.CreateAttemptDaily(ctx, attempt, util.TodayWindow(now, s.loc)); err != nil {
		if errors.Is(err, util.ErrAlreadyExists) {
			monitoring.SubmissionRejected.WithLabelValues("quiz", "already_exists").Inc()
		}
		return nil, err
	}

	return &AttemptResult{
		Attempt:       attempt,
		Correct:       correct,
		CorrectAnswer: quiz.CorrectAnswer,
	}, nil
}
