package controller

import (
	"errors"

	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Login godoc
// @Summary 관리자 로그인
// @Description 이메일과 비밀번호를 확인하고 JWT 토큰을 발급한다
// @Tags 인증
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "로그인 정보"
// @Success 200 {object} util.Response{data=service.LoginResponse} "성공"
// @Failure 400 {object} util.Response "잘못된 요청"
// @Failure 401 {object} util.Response "인증 실패"
// @Router /api/admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// Register godoc
// @Summary 관리자 계정 생성
// @Description 관리자가 새 콘솔 계정을 만든다
// @Tags 인증
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.RegisterRequest true "계정 정보"
// @Success 201 {object} util.Response{data=object} "생성됨"
// @Failure 409 {object} util.Response "이미 등록된 이메일"
// @Router /api/admin/users [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "이미 등록된 이메일입니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// GetProfile godoc
// @Summary 내 프로필 조회
// @Tags 인증
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "성공"
// @Failure 401 {object} util.Response "인증 필요"
// @Router /api/admin/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
