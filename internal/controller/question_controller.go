package controller

import (
	"errors"
	"strconv"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	Cfg             *config.Config
}

func NewQuestionController(svc *service.QuestionService, cfg *config.Config) *QuestionController {
	return &QuestionController{QuestionService: svc, Cfg: cfg}
}

// ListQuestions godoc
// @Summary 문항 관리 목록
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Param   level query string false "급수 (L1~L5)"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page, limit := pagination(ctx)
	questions, total, err := c.QuestionService.ListForAdmin(page, limit, ctx.Query("level"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(questions, total, page, limit))
}

// CreateQuestion godoc
// @Summary 문항 등록
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "문항 내용"
// @Success 201 {object} util.Response{data=model.Question} "생성됨"
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 문항 수정
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "문항 ID"
// @Param   body body service.QuestionRequest true "문항 내용"
// @Success 200 {object} util.Response{data=model.Question} "성공"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.UpdateQuestion(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "문항을 찾을 수 없습니다")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 문항 삭제
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "문항 ID"
// @Success 200 {object} util.Response "성공"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	if err := c.QuestionService.DeleteQuestion(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PoolHealth godoc
// @Summary 급수별 문항 풀 현황
// @Description 급수마다 활성 문항 수와 정상 출제 가능 여부를 보여준다
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LevelPoolStatus} "성공"
// @Router /api/admin/questions/pool-health [get]
func (c *QuestionController) PoolHealth(ctx *gin.Context) {
	statuses, err := c.QuestionService.PoolHealth(c.Cfg.LevelTest.QuestionsPerLevel)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}
