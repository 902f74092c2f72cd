package model_test

import (
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionBaseStoresUTC(t *testing.T) {
	db := testutil.NewDB(t)
	studentID := testutil.CreateStudent(t, db)

	// 学校时区 08:30 即 UTC 00:30
	local := testutil.At(2025, time.January, 13, 8, 30)
	entry := &model.MoodEntry{StudentID: studentID, MoodLevel: 4}
	entry.CreatedAt = local
	require.NoError(t, db.Create(entry).Error)

	assert.Len(t, entry.ID, 36)
	assert.Equal(t, time.UTC, entry.CreatedAt.Location())

	start := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	var found []model.MoodEntry
	require.NoError(t, db.Where("created_at BETWEEN ? AND ?", start, start.Add(time.Hour)).Find(&found).Error)
	require.Len(t, found, 1)
	assert.Equal(t, entry.ID, found[0].ID)
	assert.True(t, found[0].CreatedAt.Equal(local))
}

func TestSubmissionBaseKeepsExplicitID(t *testing.T) {
	db := testutil.NewDB(t)
	studentID := testutil.CreateStudent(t, db)

	entry := &model.MoodEntry{StudentID: studentID, MoodLevel: 2}
	entry.ID = "00000000-0000-0000-0000-000000000001"
	require.NoError(t, db.Create(entry).Error)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", entry.ID)
}
