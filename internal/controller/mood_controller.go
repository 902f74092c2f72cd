package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MoodController struct {
	service *service.MoodService
}

func NewMoodController(s *service.MoodService) *MoodController {
	return &MoodController{service: s}
}

// SubmitMood godoc
// @Summary 提交今日心情
// @Description 每个学生每天只能提交一次，心情等级 1-5
// @Tags 心情记录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitMoodRequest true "心情"
// @Success 201 {object} util.Response{data=model.MoodEntry}
// @Failure 400 {object} util.Response "心情等级无效"
// @Failure 409 {object} util.Response "今天已提交"
// @Router /api/mood-entries [post]
func (c *MoodController) SubmitMood(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	var req service.SubmitMoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.service.Submit(ctx.Request.Context(), studentID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

// CheckToday godoc
// @Summary 查询今日心情
// @Tags 心情记录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/mood-entries/today [get]
func (c *MoodController) CheckToday(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	entry, err := c.service.CheckToday(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submitted": entry != nil,
		"entry":     entry,
	})
}

// History godoc
// @Summary 最近心情记录
// @Tags 心情记录
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "天数" default(7)
// @Success 200 {object} util.Response{data=[]model.MoodEntry}
// @Router /api/mood-entries [get]
func (c *MoodController) History(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "7"))

	entries, err := c.service.History(ctx.Request.Context(), studentID, days)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
