package controller

import (
	"errors"

	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Admin-side class and application handlers.

// ListClasses godoc
// @Summary 수업 관리 목록
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/admin/classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	page, limit := pagination(ctx)
	classes, total, err := c.ClassService.ListClassesForAdmin(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(classes, total, page, limit))
}

// CreateClass godoc
// @Summary 수업 등록
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ClassRequest true "수업 정보"
// @Success 201 {object} util.Response{data=model.Class} "생성됨"
// @Router /api/admin/classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req service.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.CreateClass(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, class)
}

// UpdateClass godoc
// @Summary 수업 수정
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "수업 ID"
// @Param   body body service.ClassRequest true "수업 정보"
// @Success 200 {object} util.Response{data=model.Class} "성공"
// @Router /api/admin/classes/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var req service.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.ClassService.UpdateClass(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, "수업을 찾을 수 없습니다")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, class)
}

// DeleteClass godoc
// @Summary 수업 삭제
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "수업 ID"
// @Success 200 {object} util.Response "성공"
// @Router /api/admin/classes/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	if err := c.ClassService.DeleteClass(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, "수업을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListApplications godoc
// @Summary 수업 신청서 목록
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Param   status query string false "상태 (pending, approved, rejected)"
// @Param   classId query string false "수업 ID"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/admin/applications [get]
func (c *ClassController) ListApplications(ctx *gin.Context) {
	page, limit := pagination(ctx)
	apps, total, err := c.ClassService.ListApplications(page, limit, ctx.Query("status"), ctx.Query("classId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(apps, total, page, limit))
}

// ApplicationSummary godoc
// @Summary 수업 신청 현황 요약
// @Description 상태별 신청 건수를 반환한다
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   classId query string false "수업 ID"
// @Success 200 {object} util.Response "성공"
// @Router /api/admin/applications/summary [get]
func (c *ClassController) ApplicationSummary(ctx *gin.Context) {
	counts, err := c.ClassService.ApplicationSummary(ctx.Query("classId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counts)
}

type DecisionRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason" binding:"max=1000"`
}

// DecideApplication godoc
// @Summary 수업 신청 승인/거절
// @Description 대기 중인 신청서를 처리하고 신청자에게 결과 메일을 보낸다
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "신청서 ID"
// @Param   body body DecisionRequest true "결정 내용"
// @Success 200 {object} util.Response{data=model.ClassApplication} "성공"
// @Failure 404 {object} util.Response "신청서 없음"
// @Failure 409 {object} util.Response "이미 처리된 신청서"
// @Failure 502 {object} util.Response "결과 메일 발송 실패"
// @Router /api/admin/applications/{id}/decide [post]
func (c *ClassController) DecideApplication(ctx *gin.Context) {
	var req DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.ClassService.Decide(ctx.Param("id"), req.Approve, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrApplicationNotFound):
			util.NotFound(ctx, "신청서를 찾을 수 없습니다")
		case errors.Is(err, util.ErrApplicationDecided):
			util.Error(ctx, 409, "이미 처리된 신청서입니다")
		case errors.Is(err, util.ErrEmailSendFailed):
			// The decision stuck; only the mail failed.
			ctx.JSON(502, util.Response{Code: 502, Message: "결정은 저장되었지만 결과 메일 발송에 실패했습니다", Data: app})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, app)
}
