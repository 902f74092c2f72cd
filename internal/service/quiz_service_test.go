package service

import (
	"context"
	"errors"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/testutil"
	"mindcare_backend/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(t *testing.T, now time.Time) (*QuizService, *gorm.DB, *util.FixedClock) {
	t.Helper()
	db := testutil.NewDB(t)
	clock := util.NewFixedClock(now)
	return NewQuizService(repository.NewQuizRepository(db), clock, testutil.SchoolTZ, 3), db, clock
}

func quizIDs(quizzes []model.Quiz) []uint {
	return quizIDsOf(quizzes)
}

func TestPickDailyIsDeterministic(t *testing.T) {
	pool := make([]model.Quiz, 10)
	for i := range pool {
		pool[i].ID = uint(i + 1)
	}

	first := pickDaily(pool, 7, "2025-01-13", 3)
	assert.Len(t, first, 3)
	assert.Equal(t, quizIDs(first), quizIDs(pickDaily(pool, 7, "2025-01-13", 3)))

	assert.Len(t, pickDaily(pool[:2], 7, "2025-01-13", 3), 2)
	assert.Empty(t, pickDaily(nil, 7, "2025-01-13", 3))
}

func TestDailySetStableWithinDay(t *testing.T) {
	svc, db, clock := newQuizService(t, testutil.At(2025, time.January, 13, 8, 0))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	morning, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, morning, 3)

	clock.Advance(14 * time.Hour)
	evening, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, quizIDs(morning), quizIDs(evening))
}

func TestDailySetKeepsAttemptedQuizzes(t *testing.T) {
	svc, db, _ := newQuizService(t, testutil.At(2025, time.January, 13, 8, 0))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	set, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	attempted := set[0]

	_, err = svc.SubmitAttempt(ctx, studentID, attempted.ID, SubmitAttemptRequest{Answer: "anything"})
	require.NoError(t, err)

	// 题库变更后，当天已作答的题目仍在集合中
	require.NoError(t, db.Model(&model.Quiz{}).Where("id = ?", attempted.ID).Update("active", false).Error)

	again, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, again, 3)
	assert.Contains(t, quizIDs(again), attempted.ID)
}

func TestDailySetUnchangedWhenPoolGrowsAfterAttempt(t *testing.T) {
	svc, db, _ := newQuizService(t, testutil.At(2025, time.January, 13, 8, 0))
	ctx := context.Background()

	const students = 10
	for i := 0; i < students; i++ {
		studentID := testutil.CreateStudent(t, db)

		before, err := svc.DailySet(ctx, studentID)
		require.NoError(t, err)
		require.Len(t, before, 3)

		_, err = svc.SubmitAttempt(ctx, studentID, before[0].ID, SubmitAttemptRequest{Answer: "x"})
		require.NoError(t, err)

		// 作答后新增题目会改变 pickDaily 的候选池
		require.NoError(t, db.Create(&model.Quiz{
			Question:      "Is it okay to ask for help?",
			Options:       []string{"Yes", "No"},
			CorrectAnswer: "Yes",
			Active:        true,
		}).Error)

		after, err := svc.DailySet(ctx, studentID)
		require.NoError(t, err)
		assert.Equal(t, quizIDs(before), quizIDs(after))

		for _, q := range before[1:] {
			_, err = svc.SubmitAttempt(ctx, studentID, q.ID, SubmitAttemptRequest{Answer: "x"})
			assert.NoError(t, err)
		}
	}

	var sets int64
	require.NoError(t, db.Model(&model.DailyQuizSet{}).Count(&sets).Error)
	assert.Equal(t, int64(students), sets)
}

func TestSaveDailySetKeepsFirstWriter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewQuizRepository(db)
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	first, err := repo.SaveDailySet(ctx, &model.DailyQuizSet{StudentID: studentID, DayKey: "2025-01-13", QuizIDs: []uint{1, 2, 3}})
	require.NoError(t, err)
	second, err := repo.SaveDailySet(ctx, &model.DailyQuizSet{StudentID: studentID, DayKey: "2025-01-13", QuizIDs: []uint{4, 5, 1}})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []uint{1, 2, 3}, []uint(second.QuizIDs))

	quizzes, err := repo.FindInOrder(ctx, []uint{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, quizIDs(quizzes))
}

func TestSubmitAttempt(t *testing.T) {
	svc, db, clock := newQuizService(t, testutil.At(2025, time.January, 13, 8, 0))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	set, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	quiz := set[0]

	var stored model.Quiz
	require.NoError(t, db.First(&stored, quiz.ID).Error)

	result, err := svc.SubmitAttempt(ctx, studentID, quiz.ID, SubmitAttemptRequest{Answer: "  " + strings.ToUpper(stored.CorrectAnswer)})
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 1, result.Attempt.Score)
	assert.Equal(t, "2025-01-13", result.Attempt.DayKey)

	_, err = svc.SubmitAttempt(ctx, studentID, quiz.ID, SubmitAttemptRequest{Answer: stored.CorrectAnswer})
	assert.True(t, errors.Is(err, util.ErrAlreadyExists))

	result, err = svc.SubmitAttempt(ctx, studentID, set[1].ID, SubmitAttemptRequest{Answer: "definitely wrong"})
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Zero(t, result.Attempt.Score)

	_, err = svc.SubmitAttempt(ctx, studentID, quiz.ID, SubmitAttemptRequest{})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	// 次日可以再次作答
	clock.Advance(24 * time.Hour)
	tomorrow, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(ctx, studentID, tomorrow[0].ID, SubmitAttemptRequest{Answer: "x"})
	assert.NoError(t, err)
}

func TestSubmitAttemptOutsideDailySet(t *testing.T) {
	svc, db, _ := newQuizService(t, testutil.At(2025, time.January, 13, 8, 0))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	set, err := svc.DailySet(ctx, studentID)
	require.NoError(t, err)

	inSet := map[uint]bool{}
	for _, q := range set {
		inSet[q.ID] = true
	}
	var all []model.Quiz
	require.NoError(t, db.Find(&all).Error)

	for _, q := range all {
		if inSet[q.ID] {
			continue
		}
		_, err := svc.SubmitAttempt(ctx, studentID, q.ID, SubmitAttemptRequest{Answer: q.CorrectAnswer})
		assert.True(t, errors.Is(err, util.ErrNotFound), "quiz %d", q.ID)
	}
}
