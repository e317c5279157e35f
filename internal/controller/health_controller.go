package controller

import (
	"context"
	"net/http"
	"time"

	"hangul_edu_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB               *gorm.DB
	Redis            *redis.Client
	LevelTestService *service.LevelTestService
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, lts *service.LevelTestService) *HealthController {
	return &HealthController{DB: db, Redis: rdb, LevelTestService: lts}
}

// Health godoc
// @Summary 서비스 상태 확인
// @Tags 운영
// @Produce  json
// @Success 200 {object} object "정상"
// @Failure 503 {object} object "의존 서비스 장애"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	dbStatus := "ok"
	if sqlDB, err := c.DB.DB(); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
	} else if err := sqlDB.PingContext(checkCtx); err != nil {
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	redisStatus := "ok"
	if err := c.Redis.Ping(checkCtx).Err(); err != nil {
		redisStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	ctx.JSON(status, gin.H{
		"status":       overall,
		"database":     dbStatus,
		"redis":        redisStatus,
		"testSessions": c.LevelTestService.SessionCount(),
		"time":         time.Now().Format(time.RFC3339),
	})
}
