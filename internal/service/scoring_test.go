package service

import (
	"errors"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneForThresholds(t *testing.T) {
	tests := []struct {
		percentage int
		want       model.Zone
	}{
		{100, model.ZoneGreen},
		{80, model.ZoneGreen},
		{79, model.ZoneYellow},
		{60, model.ZoneYellow},
		{59, model.ZoneRed},
		{0, model.ZoneRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoneFor(tt.percentage), "percentage %d", tt.percentage)
	}
}

func TestScoreDailySurvey(t *testing.T) {
	score := ScoreDailySurvey([]int{4, 4, 4, 4, 4})
	assert.Equal(t, 20, score.TotalScore)
	assert.Equal(t, 25, score.MaxScore)
	assert.Equal(t, 80, score.Percentage)
	assert.Equal(t, model.ZoneGreen, score.Zone)

	// 19/25 = 76%
	score = ScoreDailySurvey([]int{4, 4, 4, 4, 3})
	assert.Equal(t, 76, score.Percentage)
	assert.Equal(t, model.ZoneYellow, score.Zone)

	// 15/25 = 60%
	score = ScoreDailySurvey([]int{3, 3, 3, 3, 3})
	assert.Equal(t, 60, score.Percentage)
	assert.Equal(t, model.ZoneYellow, score.Zone)

	// 14/25 = 56%
	score = ScoreDailySurvey([]int{3, 3, 3, 3, 2})
	assert.Equal(t, 56, score.Percentage)
	assert.Equal(t, model.ZoneRed, score.Zone)
}

func TestScoreDailySurveyEmpty(t *testing.T) {
	score := ScoreDailySurvey(nil)
	assert.Equal(t, 0, score.TotalScore)
	assert.Equal(t, 0, score.MaxScore)
	assert.Equal(t, 0, score.Percentage)
	assert.Equal(t, model.ZoneRed, score.Zone)
}

func TestNormalizeLikert(t *testing.T) {
	for raw := 1; raw <= 5; raw++ {
		v, err := NormalizeLikert(raw, false)
		require.NoError(t, err)
		assert.Equal(t, raw, v)

		rev, err := NormalizeLikert(raw, true)
		require.NoError(t, err)
		assert.Equal(t, 6-raw, rev)
	}

	for _, raw := range []int{0, 6, -1} {
		_, err := NormalizeLikert(raw, false)
		assert.True(t, errors.Is(err, util.ErrInvalidArgument), "raw %d", raw)
	}
}

func TestNormalizeAnswers(t *testing.T) {
	questions := []model.SurveyQuestion{
		{BaseModel: model.BaseModel{ID: 1}, Order: 1},
		{BaseModel: model.BaseModel{ID: 2}, Order: 2, Reverse: true},
	}

	normalized, values, err := NormalizeAnswers(questions, map[string]int{"1": 5, "2": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 5, "2": 5}, normalized)
	assert.Equal(t, []int{5, 5}, values)
	assert.Equal(t, 100, ScoreDailySurvey(values).Percentage)

	_, _, err = NormalizeAnswers(questions, map[string]int{"1": 5})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, _, err = NormalizeAnswers(questions, map[string]int{"1": 5, "2": 3, "9": 3})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, _, err = NormalizeAnswers(questions, map[string]int{"1": 5, "2": 7})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))
}
