package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.PATCH("/api/goals/:id/toggle", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodPatch, "/api/goals/:id/toggle", "404"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/api/goals/"+id+"/toggle", nil))
	}
	after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodPatch, "/api/goals/:id/toggle", "404"))

	assert.Equal(t, 3.0, after-before)
}

func TestPrometheusHandlerExposesDomainMetrics(t *testing.T) {
	Init()
	Init()

	SubmissionRejected.WithLabelValues("mood", "already_exists").Inc()
	JobStudents.WithLabelValues("sunday-snapshot", "success").Add(2)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", PrometheusHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `mindcare_submission_rejected_total{kind="mood",reason="already_exists"}`))
	assert.True(t, strings.Contains(body, `mindcare_batch_job_students_total{job="sunday-snapshot",result="success"}`))
}
