package controller

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 10 << 20 // 10MB

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadImage godoc
// @Summary 이미지 업로드
// @Description 게시물에 쓸 이미지를 올리고 접근 URL을 돌려준다
// @Tags 관리자
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "이미지 파일 (jpg, png, gif, webp / 최대 10MB)"
// @Success 201 {object} util.Response{data=object} "업로드됨"
// @Failure 400 {object} util.Response "지원하지 않는 파일"
// @Router /api/admin/uploads [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if file.Size > maxImageSize {
		util.BadRequest(ctx, "file exceeds the 10MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		util.BadRequest(ctx, "only jpg, png, gif and webp images are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url, "filename": filename})
}
