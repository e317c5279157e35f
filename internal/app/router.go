package app

import (
	"hangul_edu_backend/docs"
	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/middleware"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	a.registerPublicRoutes(router, c)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/pages/:slug", c.post.GetPage)
		public.GET("/posts/:id", c.post.GetPost)
		public.POST("/posts/:id/like", c.post.Like)
		public.GET("/posts/:id/comments", c.post.GetComments)
		public.POST("/posts/:id/comments", c.post.AddComment)

		levelTest := public.Group("/level-test")
		{
			levelTest.GET("/config", c.levelTest.GetConfig)
			levelTest.POST("/start", c.levelTest.Start)
			levelTest.GET("/:id", c.levelTest.Resume)
			levelTest.POST("/:id/answer", c.levelTest.Answer)
		}

		public.GET("/classes", c.class.ListOpen)
		public.GET("/classes/:id", c.class.GetClass)
		public.POST("/classes/:id/apply", c.class.Apply)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.POST("/login", c.auth.Login)

	authorized := admin.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/profile", c.auth.GetProfile)

		// Editors manage content; account creation stays admin-only.
		editors := authorized.Group("", middleware.RoleMiddleware(model.Editor))
		{
			editors.GET("/posts", c.post.ListPosts)
			editors.POST("/posts", c.post.CreatePost)
			editors.GET("/posts/:id", c.post.GetPostAdmin)
			editors.PUT("/posts/:id", c.post.UpdatePost)
			editors.DELETE("/posts/:id", c.post.DeletePost)
			editors.DELETE("/comments/:id", c.post.DeleteComment)

			editors.POST("/uploads", c.upload.UploadImage)

			editors.GET("/classes", c.class.ListClasses)
			editors.POST("/classes", c.class.CreateClass)
			editors.PUT("/classes/:id", c.class.UpdateClass)
			editors.DELETE("/classes/:id", c.class.DeleteClass)

			editors.GET("/applications", c.class.ListApplications)
			editors.GET("/applications/summary", c.class.ApplicationSummary)
			editors.POST("/applications/:id/decide", c.class.DecideApplication)

			editors.GET("/questions", c.question.ListQuestions)
			editors.POST("/questions", c.question.CreateQuestion)
			editors.PUT("/questions/:id", c.question.UpdateQuestion)
			editors.DELETE("/questions/:id", c.question.DeleteQuestion)
			editors.GET("/questions/pool-health", c.question.PoolHealth)

			editors.GET("/level-test/results", c.levelTest.ListResults)
			editors.GET("/level-test/stats", c.levelTest.ResultStats)
		}

		admins := authorized.Group("", middleware.RoleMiddleware(model.Admin))
		{
			admins.POST("/users", c.auth.Register)
		}
	}
}
