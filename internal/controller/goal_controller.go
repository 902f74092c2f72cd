package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/logger"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GoalController struct {
	service *service.GoalService
}

func NewGoalController(s *service.GoalService) *GoalController {
	return &GoalController{service: s}
}

// CreateGoal godoc
// @Summary 新建本周目标
// @Description 每周最多 5 个目标
// @Tags 周目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateGoalRequest true "目标"
// @Success 201 {object} util.Response{data=model.Goal}
// @Failure 422 {object} util.Response "已达每周上限"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.service.CreateGoal(ctx.Request.Context(), studentID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// ToggleGoal godoc
// @Summary 切换目标完成状态
// @Description 切换后重新计算目标所属周的汇总
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "目标ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id}/toggle [patch]
func (c *GoalController) ToggleGoal(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}
	goalID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	goal, summary, err := c.service.ToggleAndSummarize(ctx.Request.Context(), studentID, goalID)
	if goal == nil {
		util.HandleError(ctx, err)
		return
	}
	// 汇总失败不影响切换结果，下次重算即可修正
	if err != nil {
		logger.Log.Error("Recompute weekly summary after toggle failed",
			zap.Uint("student_id", studentID), zap.Error(err))
	}

	util.Success(ctx, gin.H{
		"goal":    goal,
		"summary": summary,
	})
}

// WeeklyGoals godoc
// @Summary 本周目标
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/goals/week [get]
func (c *GoalController) WeeklyGoals(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	goals, err := c.service.WeeklyGoals(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	year, week, window, err := c.service.CurrentWeekWindow()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"year":  year,
		"week":  week,
		"start": window.Start,
		"end":   window.End,
		"goals": goals,
	})
}

// RecomputeSummary godoc
// @Summary 重新计算本周汇总
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.WeeklyGoalSummary}
// @Router /api/goals/summary [post]
func (c *GoalController) RecomputeSummary(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	summary, err := c.service.RecomputeWeeklySummary(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// YearlySummary godoc
// @Summary 年度周汇总
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param year path int true "年份"
// @Success 200 {object} util.Response{data=[]model.WeeklyGoalSummary}
// @Router /api/goals/summary/{year} [get]
func (c *GoalController) YearlySummary(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}
	c.yearlySummary(ctx, studentID)
}

// StudentYearlySummary godoc
// @Summary 教师/辅导员查看学生年度周汇总
// @Tags 周目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Param year path int true "年份"
// @Success 200 {object} util.Response{data=[]model.WeeklyGoalSummary}
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/counselor/students/{id}/goals/summary/{year} [get]
func (c *GoalController) StudentYearlySummary(ctx *gin.Context) {
	studentID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	c.yearlySummary(ctx, studentID)
}

// BackfillSummary godoc
// @Summary 管理员重建学生年度周汇总
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Param year path int true "年份"
// @Success 200 {object} util.Response{data=[]model.WeeklyGoalSummary}
// @Router /api/admin/students/{id}/goals/summary/{year}/backfill [post]
func (c *GoalController) BackfillSummary(ctx *gin.Context) {
	studentID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		util.BadRequest(ctx, "无效的年份")
		return
	}

	summaries, err := c.service.Backfill(ctx.Request.Context(), studentID, year)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

func (c *GoalController) yearlySummary(ctx *gin.Context, studentID uint) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		util.BadRequest(ctx, "无效的年份")
		return
	}

	summaries, err := c.service.YearlySummary(ctx.Request.Context(), studentID, year)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}
