// @title 한글 배움터 백엔드 API
// @version 1.0
// @description 한국어 교육 비영리 단체의 공개 사이트와 관리 콘솔을 위한 백엔드 서버.

// @contact.name 운영팀

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"hangul_edu_backend/internal/app"
	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
