package controller

import (
	"errors"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LevelTestController struct {
	LevelTestService *service.LevelTestService
	Cfg              *config.Config
}

func NewLevelTestController(svc *service.LevelTestService, cfg *config.Config) *LevelTestController {
	return &LevelTestController{LevelTestService: svc, Cfg: cfg}
}

// GetConfig godoc
// @Summary 레벨 테스트 설정 조회
// @Description 문항 수와 통과 기준 등 화면 문구에 쓰이는 값을 반환한다
// @Tags 레벨테스트
// @Produce  json
// @Success 200 {object} util.Response{data=object} "성공"
// @Router /api/level-test/config [get]
func (c *LevelTestController) GetConfig(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"questionsPerLevel": c.Cfg.LevelTest.QuestionsPerLevel,
		"passThreshold":     c.Cfg.LevelTest.PassThreshold,
	})
}

// Start godoc
// @Summary 레벨 테스트 시작
// @Description 응시자 정보를 받고 1급 첫 문항과 함께 세션을 연다
// @Tags 레벨테스트
// @Accept  json
// @Produce  json
// @Param   body body service.StartTestRequest true "응시자 정보"
// @Success 200 {object} util.Response{data=service.StartTestResponse} "성공"
// @Failure 400 {object} util.Response "잘못된 요청"
// @Failure 503 {object} util.Response "출제 가능한 문항 없음"
// @Router /api/level-test/start [post]
func (c *LevelTestController) Start(ctx *gin.Context) {
	var req service.StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.LevelTestService.Start(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSpamDetected):
			// Looks like success to the bot; no session exists.
			util.Success(ctx, gin.H{"sessionId": uuid.NewString()})
		case errors.Is(err, util.ErrQuestionPoolEmpty):
			util.Error(ctx, 503, "지금은 테스트를 진행할 수 없습니다. 잠시 후 다시 시도해 주세요")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

type AnswerRequest struct {
	QuestionIndex int    `json:"questionIndex" binding:"min=0"`
	Selected      string `json:"selected" binding:"required"`
}

// Answer godoc
// @Summary 답안 제출
// @Description 현재 문항의 답을 채점하고 다음 상태를 돌려준다. 순서가 맞지 않는 제출은 무시된다
// @Tags 레벨테스트
// @Accept  json
// @Produce  json
// @Param   id path string true "세션 ID"
// @Param   body body AnswerRequest true "답안"
// @Success 200 {object} util.Response{data=service.AnswerResponse} "성공"
// @Failure 404 {object} util.Response "세션 없음"
// @Failure 409 {object} util.Response "이미 끝난 세션"
// @Router /api/level-test/{id}/answer [post]
func (c *LevelTestController) Answer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.LevelTestService.Answer(ctx.Param("id"), req.QuestionIndex, req.Selected)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, "세션이 만료되었거나 존재하지 않습니다")
		case errors.Is(err, util.ErrSessionFinished):
			util.Error(ctx, 409, "이미 종료된 테스트입니다")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Resume godoc
// @Summary 진행 중인 테스트 상태 조회
// @Tags 레벨테스트
// @Produce  json
// @Param   id path string true "세션 ID"
// @Success 200 {object} util.Response{data=service.AnswerResponse} "성공"
// @Failure 404 {object} util.Response "세션 없음"
// @Router /api/level-test/{id} [get]
func (c *LevelTestController) Resume(ctx *gin.Context) {
	resp, err := c.LevelTestService.Resume(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx, "세션이 만료되었거나 존재하지 않습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}
