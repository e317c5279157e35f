package controller

import (
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ListResults godoc
// @Summary 레벨 테스트 결과 목록
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Param   level query string false "판정 급수 (L1~L5)"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/admin/level-test/results [get]
func (c *LevelTestController) ListResults(ctx *gin.Context) {
	page, limit := pagination(ctx)
	results, total, err := c.LevelTestService.ListResults(page, limit, ctx.Query("level"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(results, total, page, limit))
}

// ResultStats godoc
// @Summary 급수별 판정 통계
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LevelResultCount} "성공"
// @Router /api/admin/level-test/stats [get]
func (c *LevelTestController) ResultStats(ctx *gin.Context) {
	stats, err := c.LevelTestService.ResultStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
