package service

import (
	"context"
	"errors"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/repository"
	"mindcare_backend/internal/testutil"
	"mindcare_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAssessmentOnce(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	_, err := svc.Get(ctx, studentID)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	result, err := svc.Submit(ctx, studentID, SubmitAssessmentRequest{Answers: fullAnswers(1)})
	require.NoError(t, err)
	assert.Equal(t, 14, result.DepressionScore)
	assert.Equal(t, 42, result.TotalScore)
	assert.True(t, result.IsComplete)
	assert.Empty(t, result.Missing)

	_, err = svc.Submit(ctx, studentID, SubmitAssessmentRequest{Answers: fullAnswers(0)})
	assert.True(t, errors.Is(err, util.ErrAlreadyExists))

	stored, err := svc.Get(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 42, stored.TotalScore)
	assert.Equal(t, model.SeverityModerate, stored.DepressionSeverity)
}

func TestSubmitAssessmentErrors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	_, err := svc.Submit(ctx, studentID+77, SubmitAssessmentRequest{Answers: fullAnswers(0)})
	assert.True(t, errors.Is(err, util.ErrNotFound))

	_, err = svc.Submit(ctx, studentID, SubmitAssessmentRequest{Answers: map[string]int{"q1": 5}})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	partial := fullAnswers(0)
	delete(partial, "q7")
	result, err := svc.Submit(ctx, studentID, SubmitAssessmentRequest{Answers: partial})
	require.NoError(t, err)
	assert.False(t, result.IsComplete)
	assert.Equal(t, []string{"q7"}, result.Missing)
}

func TestRescoreAssessment(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db))
	studentID := testutil.CreateStudent(t, db)
	ctx := context.Background()

	_, err := svc.Submit(ctx, studentID, SubmitAssessmentRequest{Answers: fullAnswers(2)})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.InitialAssessment{}).
		Where("student_id = ?", studentID).
		Updates(map[string]interface{}{"total_score": 1, "stress_score": 1}).Error)

	result, err := svc.Rescore(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 84, result.TotalScore)
	assert.Equal(t, 28, result.StressScore)

	stored, err := svc.Get(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 84, stored.TotalScore)

	_, err = svc.Rescore(ctx, studentID+1)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}
