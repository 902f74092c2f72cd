package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	service *service.SurveyService
}

func NewSurveyController(s *service.SurveyService) *SurveyController {
	return &SurveyController{service: s}
}

// ListSurveys godoc
// @Summary 可作答的问卷
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Survey}
// @Router /api/surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	surveys, err := c.service.ListActive(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

// GetSurvey godoc
// @Summary 问卷详情
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=model.Survey}
// @Router /api/surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	survey, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

// SubmitResponse godoc
// @Summary 提交每日问卷
// @Description answers 的键为题目ID，值为原始作答 1-5，反向题由服务端转换
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param body body service.SubmitSurveyRequest true "作答"
// @Success 201 {object} util.Response{data=model.SurveyResponse}
// @Failure 409 {object} util.Response "今天已提交"
// @Router /api/surveys/{id}/responses [post]
func (c *SurveyController) SubmitResponse(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}
	surveyID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.SubmitSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.service.SubmitResponse(ctx.Request.Context(), studentID, surveyID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{
		"response":  resp,
		"zoneLabel": resp.Zone.Label(),
	})
}

// TodayResponses godoc
// @Summary 今日已提交的问卷
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SurveyResponse}
// @Router /api/surveys/responses/today [get]
func (c *SurveyController) TodayResponses(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	responses, err := c.service.TodayResponses(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// CreateSurvey godoc
// @Summary 辅导员创建问卷
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSurveyRequest true "问卷"
// @Success 201 {object} util.Response{data=model.Survey}
// @Router /api/counselor/surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	var req service.CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.service.CreateSurvey(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, survey)
}
