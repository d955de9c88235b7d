package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/taskmgr-io/taskmgr/docs"
	"github.com/taskmgr-io/taskmgr/internal/config"
	"github.com/taskmgr-io/taskmgr/internal/middleware"
	"github.com/taskmgr-io/taskmgr/internal/modules/handler"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
)

type RouterDeps struct {
	Config              *config.Config
	DB                  *gorm.DB
	Log                 *zap.Logger
	AuthHandler         *handler.AuthHandler
	TaskHandler         *handler.TaskHandler
	ProjectHandler      *handler.ProjectHandler
	CommentHandler      *handler.CommentHandler
	HistoryHandler      *handler.HistoryHandler
	NotificationHandler *handler.NotificationHandler
	SearchHandler       *handler.SearchHandler
	ReportHandler       *handler.ReportHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health banner, kept compatible with the old server root
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, serializer.Msg("Task Manager API"))
	})

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/register", d.AuthHandler.Register)
		}

		protected := api.Group("")
		protected.Use(middleware.UserAuth(d.Config, d.DB))
		{
			protected.GET("/auth/me", d.AuthHandler.Me)
			protected.GET("/auth/users", d.AuthHandler.ListUsers)

			tasks := protected.Group("/tasks")
			{
				tasks.GET("", d.TaskHandler.GetTasks)
				tasks.POST("", d.TaskHandler.CreateTask)
				// registered before :id so "stats" never parses as one
				tasks.GET("/stats", d.TaskHandler.GetTaskStats)
				tasks.GET("/:id", d.TaskHandler.GetTaskByID)
				tasks.PUT("/:id", d.TaskHandler.UpdateTask)
				tasks.DELETE("/:id", d.TaskHandler.DeleteTask)
			}

			projects := protected.Group("/projects")
			{
				projects.GET("", d.ProjectHandler.GetProjects)
				projects.POST("", d.ProjectHandler.CreateProject)
				projects.GET("/:id", d.ProjectHandler.GetProjectByID)
				projects.PUT("/:id", d.ProjectHandler.UpdateProject)
				projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
			}

			comments := protected.Group("/comments")
			{
				comments.POST("", d.CommentHandler.CreateComment)
				comments.GET("/task/:taskId", d.CommentHandler.GetCommentsByTask)
			}

			history := protected.Group("/history")
			{
				history.GET("/task/:taskId", d.HistoryHandler.GetHistoryByTask)
				history.GET("/all", d.HistoryHandler.GetAllHistory)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", d.NotificationHandler.GetNotifications)
				notifications.PUT("/read", d.NotificationHandler.MarkAllRead)
			}

			protected.GET("/search", d.SearchHandler.SearchTasks)

			reports := protected.Group("/reports")
			{
				reports.GET("/tasks", d.ReportHandler.TasksByStatus)
				reports.GET("/projects", d.ReportHandler.TasksByProject)
				reports.GET("/users", d.ReportHandler.TasksByUser)
				reports.GET("/export-csv", d.ReportHandler.ExportCSV)
			}
		}
	}
	return r
}
