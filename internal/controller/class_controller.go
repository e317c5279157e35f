package controller

import (
	"errors"

	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// ListOpen godoc
// @Summary 모집 중인 수업 목록
// @Tags 수업
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Class} "성공"
// @Router /api/classes [get]
func (c *ClassController) ListOpen(ctx *gin.Context) {
	classes, err := c.ClassService.ListOpen()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classes)
}

// GetClass godoc
// @Summary 수업 단건 조회
// @Tags 수업
// @Produce  json
// @Param   id path string true "수업 ID"
// @Success 200 {object} util.Response{data=model.Class} "성공"
// @Failure 404 {object} util.Response "수업 없음"
// @Router /api/classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	class, err := c.ClassService.GetClass(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, "수업을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, class)
}

// Apply godoc
// @Summary 수업 신청
// @Description 모집 중인 수업에 신청서를 접수한다. 개인정보와 연령 동의는 필수
// @Tags 수업
// @Accept  json
// @Produce  json
// @Param   id path string true "수업 ID"
// @Param   body body service.ApplyRequest true "신청 정보"
// @Success 201 {object} util.Response{data=object} "접수됨"
// @Failure 404 {object} util.Response "수업 없음"
// @Failure 409 {object} util.Response "모집 마감"
// @Router /api/classes/{id}/apply [post]
func (c *ClassController) Apply(ctx *gin.Context) {
	var req service.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.ClassService.Apply(ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSpamDetected):
			// Same shape as a real acceptance; nothing was stored.
			util.Created(ctx, gin.H{"id": uuid.NewString()})
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "수업을 찾을 수 없습니다")
		case errors.Is(err, util.ErrClassClosed):
			util.Error(ctx, 409, "모집이 마감된 수업입니다")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": app.ID})
}
