package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/controller"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/pkg/database"
	"hangul_edu_backend/pkg/logger"
	"hangul_edu_backend/pkg/mailer"
	"hangul_edu_backend/pkg/monitoring"
	"hangul_edu_backend/pkg/security"
	"hangul_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	post        *repository.PostRepository
	comment     *repository.CommentRepository
	question    *repository.QuestionRepository
	result      *repository.LevelTestResultRepository
	class       *repository.ClassRepository
	application *repository.ApplicationRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	post      *service.PostService
	levelTest *service.LevelTestService
	class     *service.ClassService
	question  *service.QuestionService
}

type controllers struct {
	auth      *controller.AuthController
	post      *controller.PostController
	levelTest *controller.LevelTestController
	class     *controller.ClassController
	question  *controller.QuestionController
	upload    *controller.UploadController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		post:        repository.NewPostRepository(db),
		comment:     repository.NewCommentRepository(db),
		question:    repository.NewQuestionRepository(db),
		result:      repository.NewLevelTestResultRepository(db),
		class:       repository.NewClassRepository(db),
		application: repository.NewApplicationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.post = service.NewPostService(repos.post, repos.comment, rdb)
	s.levelTest = service.NewLevelTestService(repos.question, repos.result, cfg.LevelTest)
	s.class = service.NewClassService(repos.class, repos.application, mailer.NewSMTPSender(&cfg.SMTP))
	s.question = service.NewQuestionService(repos.question)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		post:      controller.NewPostController(s.post),
		levelTest: controller.NewLevelTestController(s.levelTest, a.Config),
		class:     controller.NewClassController(s.class),
		question:  controller.NewQuestionController(s.question, a.Config),
		upload:    controller.NewUploadController(s.storage),
		health:    controller.NewHealthController(db, rdb, s.levelTest),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go s.levelTest.RunJanitor()

	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if err := s.post.ProcessScheduledPublishes(); err != nil {
				logger.Log.Error("scheduled publish error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hangul-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.services != nil && a.services.levelTest != nil {
		a.services.levelTest.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
