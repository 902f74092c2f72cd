package controller

import (
	"mindcare_backend/internal/service"
	"mindcare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	service *service.QuizService
}

func NewQuizController(s *service.QuizService) *QuizController {
	return &QuizController{service: s}
}

// DailySet godoc
// @Summary 今日小测
// @Description 同一天内多次获取返回同一组题目
// @Tags 小测
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes/daily [get]
func (c *QuizController) DailySet(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}

	quizzes, err := c.service.DailySet(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// SubmitAttempt godoc
// @Summary 作答小测
// @Tags 小测
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body service.SubmitAttemptRequest true "答案"
// @Success 201 {object} util.Response{data=service.AttemptResult}
// @Failure 409 {object} util.Response "今天已作答"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	studentID, ok := currentStudentID(ctx)
	if !ok {
		return
	}
	quizID, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.SubmitAttempt(ctx.Request.Context(), studentID, quizID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
