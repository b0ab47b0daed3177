package app

import (
	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/middleware"
	"campus_lms_backend/internal/model"
	"campus_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)

	rg.GET("/ladders", c.catalog.ListLadders)
	rg.GET("/course-groups", c.catalog.ListGroups)
	rg.GET("/campuses", c.catalog.ListCampuses)

	rg.GET("/courses", c.course.ListPublished)
	rg.GET("/courses/:id", c.course.GetByID)
	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.GET("/enrollments", c.enrollment.ListMine)
	rg.PUT("/courses/:id/videos/:videoId/progress", c.enrollment.RecordVideoProgress)
	rg.POST("/courses/:id/quiz-results", c.enrollment.SubmitQuizResult)

	rg.GET("/forms", c.form.ListPublished)
	rg.GET("/forms/:id", c.form.GetByID)
	rg.POST("/forms/:id/submissions", c.form.Submit)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id", c.user.AssignUser)

		admin.GET("/courses", c.course.ListAll)
		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)

		admin.POST("/ladders", c.catalog.CreateLadder)
		admin.PUT("/ladders/:id", c.catalog.UpdateLadder)
		admin.DELETE("/ladders/:id", c.catalog.DeleteLadder)

		admin.POST("/course-groups", c.catalog.CreateGroup)
		admin.PUT("/course-groups/:id", c.catalog.UpdateGroup)
		admin.DELETE("/course-groups/:id", c.catalog.DeleteGroup)

		admin.POST("/campuses", c.catalog.CreateCampus)
		admin.PUT("/campuses/:id", c.catalog.UpdateCampus)
		admin.DELETE("/campuses/:id", c.catalog.DeleteCampus)

		admin.GET("/reports/courses", c.report.CourseReport)
		admin.GET("/reports/ladders", c.report.LadderSummary)
		admin.GET("/reports/paths", c.report.PathSummary)

		admin.GET("/completions", c.completion.List)
		admin.POST("/completions", c.completion.Log)
		admin.POST("/completions/bulk-delete", c.completion.BulkDelete)

		admin.GET("/exports/courses", c.export.CourseReportCSV)
		admin.GET("/exports/summaries/:kind", c.export.SummaryCSV)
		admin.GET("/exports/completions", c.export.CompletionLogCSV)
		admin.GET("/exports/archives", c.export.ListArchives)
		admin.GET("/exports/archives/:id", c.export.DownloadArchive)

		admin.GET("/forms", c.form.ListAll)
		admin.POST("/forms", c.form.Create)
		admin.PUT("/forms/:id", c.form.Update)
		admin.DELETE("/forms/:id", c.form.Delete)
		admin.GET("/forms/:id/submissions", c.form.ListSubmissions)
	}
}
