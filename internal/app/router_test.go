package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mindcare_backend/internal/config"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/testutil"
	"mindcare_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:      config.JWTConfig{Secret: "router-test-secret", ExpireTime: time.Hour},
		Schedule: config.ScheduleConfig{Concurrency: 2},
		Wellness: config.WellnessConfig{ClockSkewToleranceMinutes: 10, DailyQuizCount: 3},
	}
	db := testutil.NewDB(t)

	a := &App{Config: cfg, DB: db}
	repos := a.initRepositories(db)
	a.services = a.initServices(repos, cfg)

	router := gin.New()
	a.registerRoutes(router, a.initControllers(a.services), repos, cfg)
	return router, db, cfg
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func tokenFor(t *testing.T, cfg *config.Config, user *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec, _ := doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"name":     "Juan Dela Cruz",
		"email":    "Juan@School.test",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/register", "", map[string]string{
		"name":     "Juan Again",
		"email":    "juan@school.test",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "juan@school.test",
		"password": "wrong password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "juan@school.test",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token     string `json:"token"`
		StudentID *uint  `json:"studentId"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	require.NotNil(t, login.StudentID)
	return login.Token
}

func TestMoodRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/mood-entries", "", map[string]int{"moodLevel": 4})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/mood-entries", token, map[string]int{"moodLevel": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/mood-entries", token, map[string]int{"moodLevel": 4})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/mood-entries", token, map[string]int{"moodLevel": 2})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp.Message, "already exists")

	rec, resp = doJSON(t, router, http.MethodGet, "/api/mood-entries/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today struct {
		Submitted bool `json:"submitted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &today))
	assert.True(t, today.Submitted)
}

func TestGoalRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := registerAndLogin(t, router)

	var firstID uint
	for i := 0; i < model.MaxGoalsPerWeek; i++ {
		rec, resp := doJSON(t, router, http.MethodPost, "/api/goals", token, map[string]string{"title": fmt.Sprintf("goal %d", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
		if i == 0 {
			var g model.Goal
			require.NoError(t, json.Unmarshal(resp.Data, &g))
			firstID = g.ID
		}
	}

	rec, resp := doJSON(t, router, http.MethodPost, "/api/goals", token, map[string]string{"title": "sixth"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Message, "Maximum of 5 goals per week allowed")

	rec, resp = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/goals/%d/toggle", firstID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled struct {
		Goal    model.Goal              `json:"goal"`
		Summary model.WeeklyGoalSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &toggled))
	assert.True(t, toggled.Goal.IsCompleted)
	assert.Equal(t, 20, toggled.Summary.Percentage)
	assert.Equal(t, model.SummaryIncomplete, toggled.Summary.Status)

	rec, _ = doJSON(t, router, http.MethodPatch, "/api/goals/99999/toggle", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPatch, "/api/goals/abc/toggle", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = doJSON(t, router, http.MethodGet, "/api/goals/week", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var week struct {
		Week  int          `json:"week"`
		Start time.Time    `json:"start"`
		End   time.Time    `json:"end"`
		Goals []model.Goal `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &week))
	assert.Len(t, week.Goals, model.MaxGoalsPerWeek)
	assert.Equal(t, time.Monday, week.Start.Weekday())
	assert.Equal(t, 7*24*time.Hour-time.Millisecond, week.End.Sub(week.Start))
}

func TestCounselorYearlySummary(t *testing.T) {
	router, db, cfg := newTestRouter(t)
	counselor, _ := testutil.CreateUser(t, db, model.RoleCounselor)
	studentID := testutil.CreateStudent(t, db)
	token := tokenFor(t, cfg, counselor)

	rec, _ := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/counselor/students/%d/goals/summary/2025", studentID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/counselor/students/%d/goals/summary/2025", studentID+999), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/counselor/students/%d/goals/summary/99", studentID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleRestrictions(t *testing.T) {
	router, db, cfg := newTestRouter(t)
	teacher, _ := testutil.CreateUser(t, db, model.RoleTeacher)
	admin, _ := testutil.CreateUser(t, db, model.RoleAdmin)
	testutil.CreateStudent(t, db)

	teacherToken := tokenFor(t, cfg, teacher)
	adminToken := tokenFor(t, cfg, admin)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/mood-entries/today", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/admin/jobs/monday-reset", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/admin/jobs/bogus", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := doJSON(t, router, http.MethodPost, "/api/admin/jobs/sunday-snapshot", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Total     int `json:"total"`
		Succeeded int `json:"succeeded"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Succeeded)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/mood-entries/today", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminForceMood(t *testing.T) {
	router, db, cfg := newTestRouter(t)
	admin, _ := testutil.CreateUser(t, db, model.RoleAdmin)
	studentID := testutil.CreateStudent(t, db)
	adminToken := tokenFor(t, cfg, admin)

	path := fmt.Sprintf("/api/admin/students/%d/mood-entries/force", studentID)
	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, router, http.MethodPost, path, adminToken, map[string]interface{}{
			"moodLevel": 3,
			"reason":    "entered from paper check-in",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, _ := doJSON(t, router, http.MethodPost, "/api/admin/students/424242/mood-entries/force", adminToken, map[string]interface{}{
		"moodLevel": 3,
		"reason":    "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
