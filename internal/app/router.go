package app

import (
	"mindcare_backend/docs"
	"mindcare_backend/internal/config"
	"mindcare_backend/internal/middleware"
	"mindcare_backend/internal/model"
	"mindcare_backend/pkg/monitoring"
	"mindcare_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	if cfg.RateLimit.UserMaxRequests > 0 {
		authGroup.Use(security.UserRateLimiter(cfg.RateLimit.UserMaxRequests, cfg.RateLimit.Window()))
	}
	{
		// 2. 学生接口
		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.RoleStudent), middleware.StudentMiddleware(repos.student))
		a.registerStudentRoutes(student, c)

		// 3. 教师/辅导员接口
		counselor := authGroup.Group("/counselor")
		counselor.Use(middleware.RoleMiddleware(model.RoleTeacher, model.RoleCounselor))
		a.registerCounselorRoutes(counselor, c)

		// 4. 管理员接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		a.registerAdminRoutes(admin, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	// 每日心情
	rg.POST("/mood-entries", c.mood.SubmitMood)
	rg.GET("/mood-entries", c.mood.History)
	rg.GET("/mood-entries/today", c.mood.CheckToday)

	// 每日问卷
	rg.GET("/surveys", c.survey.ListSurveys)
	rg.GET("/surveys/responses/today", c.survey.TodayResponses)
	rg.GET("/surveys/:id", c.survey.GetSurvey)
	rg.POST("/surveys/:id/responses", c.survey.SubmitResponse)

	// 周目标
	rg.POST("/goals", c.goal.CreateGoal)
	rg.PATCH("/goals/:id/toggle", c.goal.ToggleGoal)
	rg.GET("/goals/week", c.goal.WeeklyGoals)
	rg.POST("/goals/summary", c.goal.RecomputeSummary)
	rg.GET("/goals/summary/:year", c.goal.YearlySummary)

	// 入学初评
	rg.POST("/assessment", c.assessment.SubmitAssessment)
	rg.GET("/assessment", c.assessment.GetAssessment)

	// 每日小测
	rg.GET("/quizzes/daily", c.quiz.DailySet)
	rg.POST("/quizzes/:id/attempts", c.quiz.SubmitAttempt)
}

func (a *App) registerCounselorRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/surveys", c.survey.CreateSurvey)
	rg.GET("/students/:id/goals/summary/:year", c.goal.StudentYearlySummary)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/jobs/:job", c.admin.RunJob)
	rg.POST("/students/:id/mood-entries/force", c.admin.ForceMoodEntry)
	rg.POST("/students/:id/goals/summary/:year/backfill", c.goal.BackfillSummary)
	rg.POST("/students/:id/assessment/rescore", c.assessment.RescoreAssessment)
}
