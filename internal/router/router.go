package router

import (
	"time"

	"github.com/dnc-edu/conduct-backend/internal/config"
	"github.com/dnc-edu/conduct-backend/internal/handler"
	"github.com/dnc-edu/conduct-backend/internal/middleware"
	"github.com/dnc-edu/conduct-backend/internal/model"
	"github.com/dnc-edu/conduct-backend/internal/response"
	"github.com/dnc-edu/conduct-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Evaluation *handler.EvaluationHandler
	Monitor    *handler.MonitorHandler
	WS         *handler.WSHandler
	User       *handler.UserHandler
	Department *handler.DepartmentHandler
	Class      *handler.ClassHandler
	Semester   *handler.SemesterHandler
	Question   *handler.QuestionHandler
	Role       *handler.RoleHandler
	Dashboard  *handler.DashboardHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list; otherwise
	// allow all so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Every response carries request metadata; big payloads get compressed.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	// Rate limiter for the login route (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.PATCH("/me", middleware.RequireAuth(authService), handlers.Auth.UpdateMe)
		auth.POST("/change-password", middleware.RequireAuth(authService), handlers.Auth.ChangePassword)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		evaluations := api.Group("/evaluations")
		{
			evaluations.POST("", middleware.RequirePermission(authService, model.PermissionEvaluationsWrite), handlers.Evaluation.Submit)
			evaluations.GET("/student/:student_id/semester/:semester_id",
				middleware.RequirePermission(authService, model.PermissionEvaluationsRead), handlers.Evaluation.GetStudentEvaluation)
			evaluations.GET("/history/:student_id",
				middleware.RequirePermission(authService, model.PermissionEvaluationsRead), handlers.Evaluation.GetHistory)
			evaluations.GET("/class/:class_id/semester/:semester_id",
				middleware.RequirePermission(authService, model.PermissionEvaluationsReadClass), handlers.Evaluation.GetClassSummary)
			evaluations.GET("/class/:class_id/stream",
				middleware.RequirePermission(authService, model.PermissionEvaluationsReadClass), handlers.Monitor.ClassStreamSSE)
		}

		users := api.Group("/users")
		{
			users.POST("", middleware.RequirePermission(authService, model.PermissionUsersWrite), handlers.User.Create)
			users.POST("/import", middleware.RequirePermission(authService, model.PermissionUsersImport), handlers.User.Import)
			users.GET("/:role", middleware.RequirePermission(authService, model.PermissionUsersRead), handlers.User.List)
			users.GET("/:role/:id", middleware.RequirePermission(authService, model.PermissionUsersRead), handlers.User.Get)
			users.PUT("/:role/:id", middleware.RequirePermission(authService, model.PermissionUsersWrite), handlers.User.Update)
			users.PATCH("/:role/:id/active", middleware.RequirePermission(authService, model.PermissionUsersWrite), handlers.User.SetActive)
			users.DELETE("/:role/:id", middleware.RequirePermission(authService, model.PermissionUsersWrite), handlers.User.Delete)
		}

		departments := api.Group("/departments")
		{
			departments.GET("", middleware.RequirePermission(authService, model.PermissionDepartmentsRead), handlers.Department.List)
			departments.GET("/:id", middleware.RequirePermission(authService, model.PermissionDepartmentsRead), handlers.Department.Get)
			departments.POST("", middleware.RequirePermission(authService, model.PermissionDepartmentsWrite), handlers.Department.Create)
			departments.PUT("/:id", middleware.RequirePermission(authService, model.PermissionDepartmentsWrite), handlers.Department.Update)
			departments.DELETE("/:id", middleware.RequirePermission(authService, model.PermissionDepartmentsWrite), handlers.Department.Delete)
		}

		classes := api.Group("/classes")
		{
			classes.GET("", middleware.RequirePermission(authService, model.PermissionClassesRead), handlers.Class.List)
			classes.GET("/:id", middleware.RequirePermission(authService, model.PermissionClassesRead), handlers.Class.Get)
			classes.GET("/:id/students", middleware.RequirePermission(authService, model.PermissionClassesRead), handlers.Class.ListStudents)
			classes.POST("", middleware.RequirePermission(authService, model.PermissionClassesWrite), handlers.Class.Create)
			classes.PUT("/:id", middleware.RequirePermission(authService, model.PermissionClassesWrite), handlers.Class.Update)
			classes.DELETE("/:id", middleware.RequirePermission(authService, model.PermissionClassesWrite), handlers.Class.Delete)
		}

		semesters := api.Group("/semesters")
		{
			semesters.GET("", middleware.RequirePermission(authService, model.PermissionSemestersRead), handlers.Semester.List)
			semesters.GET("/active", middleware.RequirePermission(authService, model.PermissionSemestersRead), handlers.Semester.GetActive)
			semesters.GET("/:id", middleware.RequirePermission(authService, model.PermissionSemestersRead), handlers.Semester.Get)
			semesters.POST("", middleware.RequirePermission(authService, model.PermissionSemestersWrite), handlers.Semester.Create)
			semesters.PUT("/:id", middleware.RequirePermission(authService, model.PermissionSemestersWrite), handlers.Semester.Update)
			semesters.DELETE("/:id", middleware.RequirePermission(authService, model.PermissionSemestersWrite), handlers.Semester.Delete)
		}

		questions := api.Group("/questions")
		{
			questions.GET("/form", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.Form)
			questions.GET("/types", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.ListTypes)
			questions.POST("/types", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.CreateType)
			questions.GET("/groups", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.ListGroups)
			questions.POST("/groups", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.CreateGroup)
			questions.GET("", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.List)
			questions.GET("/:id", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.Get)
			questions.GET("/:id/answers", middleware.RequirePermission(authService, model.PermissionQuestionsRead), handlers.Question.ListAnswers)
			questions.POST("", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.Create)
			questions.PUT("/:id", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.Update)
			questions.DELETE("/:id", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.Delete)
		}

		answers := api.Group("/answers")
		{
			answers.POST("", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.CreateAnswer)
			answers.PUT("/:id", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.UpdateAnswer)
			answers.DELETE("/:id", middleware.RequirePermission(authService, model.PermissionQuestionsWrite), handlers.Question.DeleteAnswer)
		}

		roles := api.Group("/roles")
		{
			roles.GET("", middleware.RequirePermission(authService, model.PermissionRolesRead), handlers.Role.List)
			roles.GET("/permissions", middleware.RequirePermission(authService, model.PermissionRolesRead), handlers.Role.ListPermissions)
			roles.PUT("/:id/permissions", middleware.RequirePermission(authService, model.PermissionRolesWrite), handlers.Role.ReplacePermissions)
		}

		api.GET("/dashboard", middleware.RequirePermission(authService, model.PermissionDashboardRead), handlers.Dashboard.Summary)
	}

	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAuth(authService))
	{
		ws.GET("/classes/:class_id/submissions", handlers.WS.ClassSubmissionStream)
	}

	return router
}
