package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	service *service.AssessmentService
}

func NewAssessmentController(s *service.AssessmentService) *AssessmentController {
	return &AssessmentController{service: s}
}

// SubmitAssessment godoc
// @Summary 提交入学初评
// @Description DASS-21，题号 q1-q21，每题 0-3 分，每个学生只能提交一次
// @Tags 初评
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitAssessmentRequest true "作答"
// @Success 201 {object} util.Response{data=service.AssessmentResult}
// @Failure 400 {object} util.Response "作答无效"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/assessment [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), studentID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// GetAssessment godoc
// @Summary 我的入学初评
// @Tags 初评
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.InitialAssessment}
// @Failure 404 {object} util.Response "尚未提交"
// @Router /api/assessment [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	assessment, err := c.service.Get(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// RescoreAssessment godoc
// @Summary 管理员重新计算学生初评分数
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学生ID"
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Router /api/admin/students/{id}/assessment/rescore [post]
func (c *AssessmentController) RescoreAssessment(ctx *gin.Context) {
	studentID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	result, err := c.service.Rescore(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
