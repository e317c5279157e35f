package controller

import (
	"errors"
	"strconv"

	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// GetPage godoc
// @Summary 콘텐츠 페이지 조회
// @Description 페이지 설정에 따라 게시물 목록을 카드 형태로 반환한다
// @Tags 콘텐츠
// @Produce  json
// @Param   slug path string true "페이지 식별자 (news, achievements, surveys, testimonials, activities)"
// @Success 200 {object} util.Response{data=render.ListView} "성공"
// @Failure 404 {object} util.Response "페이지 없음"
// @Router /api/pages/{slug} [get]
func (c *PostController) GetPage(ctx *gin.Context) {
	view, err := c.PostService.RenderPage(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "페이지를 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// GetPost godoc
// @Summary 게시물 상세 조회
// @Description 게시 상태의 게시물 하나를 상세 화면 형태로 반환한다. 조회수는 클라이언트별로 10분에 한 번만 올라간다
// @Tags 콘텐츠
// @Produce  json
// @Param   id path string true "게시물 ID"
// @Success 200 {object} util.Response{data=render.DetailView} "성공"
// @Failure 404 {object} util.Response "게시물 없음"
// @Router /api/posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	clientKey := util.ClientKey(ctx.ClientIP(), ctx.GetHeader("User-Agent"))
	view, err := c.PostService.RenderDetail(ctx.Param("id"), clientKey)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Like godoc
// @Summary 게시물 좋아요 토글
// @Tags 콘텐츠
// @Produce  json
// @Param   id path string true "게시물 ID"
// @Success 200 {object} util.Response{data=object} "성공"
// @Failure 404 {object} util.Response "게시물 없음"
// @Router /api/posts/{id}/like [post]
func (c *PostController) Like(ctx *gin.Context) {
	clientKey := util.ClientKey(ctx.ClientIP(), ctx.GetHeader("User-Agent"))
	liked, likes, err := c.PostService.Like(ctx.Param("id"), clientKey)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "likes": likes})
}

// AddComment godoc
// @Summary 댓글 작성
// @Tags 콘텐츠
// @Accept  json
// @Produce  json
// @Param   id path string true "게시물 ID"
// @Param   body body service.CommentRequest true "댓글 내용"
// @Success 201 {object} util.Response{data=model.Comment} "생성됨"
// @Failure 404 {object} util.Response "게시물 없음"
// @Router /api/posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.PostService.AddComment(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// GetComments godoc
// @Summary 댓글 목록 조회
// @Tags 콘텐츠
// @Produce  json
// @Param   id path string true "게시물 ID"
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/posts/{id}/comments [get]
func (c *PostController) GetComments(ctx *gin.Context) {
	page, limit := pagination(ctx)
	comments, total, err := c.PostService.GetComments(ctx.Param("id"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(comments, total, page, limit))
}

// --- admin handlers ---

// ListPosts godoc
// @Summary 게시물 관리 목록
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "페이지 번호"
// @Param   limit query int false "페이지 크기"
// @Param   category query string false "카테고리"
// @Param   status query string false "상태 (draft, published)"
// @Success 200 {object} util.Response{data=util.PageResponse} "성공"
// @Router /api/admin/posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	page, limit := pagination(ctx)
	posts, total, err := c.PostService.ListForAdmin(page, limit, ctx.Query("category"), ctx.Query("status"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewPageResponse(posts, total, page, limit))
}

// GetPostAdmin godoc
// @Summary 게시물 원본 조회
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "게시물 ID"
// @Success 200 {object} util.Response{data=model.Post} "성공"
// @Router /api/admin/posts/{id} [get]
func (c *PostController) GetPostAdmin(ctx *gin.Context) {
	post, err := c.PostService.GetPost(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// CreatePost godoc
// @Summary 게시물 작성
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PostRequest true "게시물 내용"
// @Success 201 {object} util.Response{data=model.Post} "생성됨"
// @Router /api/admin/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	post, err := c.PostService.CreatePost(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, post)
}

// UpdatePost godoc
// @Summary 게시물 수정
// @Tags 관리자
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "게시물 ID"
// @Param   body body service.PostRequest true "게시물 내용"
// @Success 200 {object} util.Response{data=model.Post} "성공"
// @Router /api/admin/posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	var req service.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.UpdatePost(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary 게시물 삭제
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "게시물 ID"
// @Success 200 {object} util.Response "성공"
// @Router /api/admin/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	if err := c.PostService.DeletePost(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx, "게시물을 찾을 수 없습니다")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteComment godoc
// @Summary 댓글 삭제
// @Tags 관리자
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "댓글 ID"
// @Success 200 {object} util.Response "성공"
// @Router /api/admin/comments/{id} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	if err := c.PostService.DeleteComment(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
