package routes

import (
	"github.com/gin-gonic/gin"
	_ "github.com/linskybing/simtrack/docs"
	"github.com/linskybing/simtrack/internal/api/handlers"
	"github.com/linskybing/simtrack/internal/api/middleware"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services, repos *repository.Repos) {
	h := handlers.New(svc)
	authMiddleware := middleware.NewAuth(repos)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/notifications", h.Stream.Notifications)
		auth.GET("/me", h.User.Me)

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Project.GetProjects)
			projects.GET("/:id", h.Project.GetProjectByID)
			projects.POST("", h.Project.CreateProject)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.PATCH("/:id/status", authMiddleware.Manager(), h.Project.UpdateProjectStatus)
			projects.DELETE("/:id", authMiddleware.Admin(), h.Project.DeleteProject)

			projects.POST("/:id/hours/extend", authMiddleware.Manager(), h.Project.ExtendHours)
			projects.POST("/:id/hours/adjust", authMiddleware.Manager(), h.Project.AdjustHours)
			projects.GET("/:id/hours/history", h.Hours.GetHistory)
			projects.GET("/:id/hours/summary", h.Hours.GetSummary)
			projects.GET("/:id/hours/availability", h.Hours.CheckAvailability)
			projects.GET("/:id/hours/reconcile", authMiddleware.Manager(), h.Hours.Reconcile)
		}

		requests := auth.Group("/requests")
		{
			requests.GET("", h.Request.ListRequests)
			requests.GET("/:id", h.Request.GetRequest)
			requests.POST("", h.Request.CreateRequest)
			requests.PATCH("/:id/status", h.Request.UpdateStatus)
			requests.POST("/:id/assign", authMiddleware.Manager(), h.Request.AssignEngineer)
			requests.GET("/:id/hours", h.Hours.GetRequestHours)

			requests.POST("/:id/time-entries", authMiddleware.Staff(), h.Request.LogTime)
			requests.GET("/:id/time-entries", h.Request.ListTimeEntries)

			requests.POST("/:id/discussions", h.Discussion.CreateDiscussion)
			requests.GET("/:id/discussions", h.Discussion.ListByRequest)

			requests.POST("/:id/attachments", h.Attachment.Upload)
			requests.GET("/:id/attachments", h.Attachment.List)
		}

		discussions := auth.Group("/discussions")
		{
			discussions.GET("/pending", authMiddleware.Manager(), h.Discussion.ListPending)
			discussions.GET("/:id", h.Discussion.GetDiscussion)
			discussions.POST("/:id/review", authMiddleware.Manager(), h.Discussion.ReviewDiscussion)
		}

		attachments := auth.Group("/attachments")
		{
			attachments.GET("/:id", h.Attachment.Download)
			attachments.DELETE("/:id", h.Attachment.Delete)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.List)
			notifications.POST("/read-all", h.Notification.MarkAllRead)
			notifications.POST("/:id/read", h.Notification.MarkRead)
		}

		audit := auth.Group("/audit/logs")
		{
			audit.GET("", authMiddleware.Admin(), h.Audit.GetAuditLogs)
		}

		admin := auth.Group("/admin", authMiddleware.Admin())
		{
			admin.GET("/hours/reconcile", h.Hours.ReconcileAll)
		}

		users := auth.Group("/users")
		{
			users.GET("", authMiddleware.Staff(), h.User.GetUsers)
			users.GET("/:id", h.User.GetUserByID)
			users.PUT("/:id", authMiddleware.UserOrAdmin(), h.User.UpdateUser)
			users.PUT("/:id/role", authMiddleware.Admin(), h.User.UpdateRole)
			users.DELETE("/:id", authMiddleware.Admin(), h.User.DeleteUser)
		}
	}
}
