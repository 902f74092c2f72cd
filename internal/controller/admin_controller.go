package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"
	"mindcare_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	batch *service.BatchService
	mood  *service.MoodService
}

func NewAdminController(batch *service.BatchService, mood *service.MoodService) *AdminController {
	return &AdminController{batch: batch, mood: mood}
}

// RunJob godoc
// @Summary 手动执行定时任务
// @Description job 取值 sunday-snapshot 或 monday-reset，返回逐个学生的执行结果
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param job path string true "任务名"
// @Success 200 {object} util.Response{data=service.JobReport}
// @Router /api/admin/jobs/{job} [post]
func (c *AdminController) RunJob(ctx *gin.Context) {
	job := ctx.Param("job")
	user := util.GetUserFromContext(ctx)
	if user != nil {
		logger.Audit.Info("Job triggered manually", zap.String("job", job), zap.Uint("admin_user_id", user.UserID))
	}

	report, err := c.batch.RunJob(ctx.Request.Context(), job)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// ForceMoodEntry godoc
// @Summary 管理员补录心情
// @Description 跳过每日一次限制，必须填写原因，记录审计日志
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Param body body service.ForceMoodRequest true "补录内容"
// @Success 201 {object} util.Response{data=model.MoodEntry}
// @Router /api/admin/students/{id}/mood-entries/force [post]
func (c *AdminController) ForceMoodEntry(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	studentID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.ForceMoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.mood.ForceCreate(ctx.Request.Context(), user.UserID, studentID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}
