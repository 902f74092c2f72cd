package controller

import (
	"mindcare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentStudentID 未解析到学生档案时直接返回 401
func currentStudentID(ctx *gin.Context) (uint, bool) {
	id, ok := util.GetStudentIDFromContext(ctx)
	if !ok {
		util.Unauthorized(ctx)
	}
	return id, ok
}
