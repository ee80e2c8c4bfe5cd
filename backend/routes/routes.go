package routes

import (
	"coursework/backend/config"
	"coursework/backend/controllers"
	"coursework/backend/middleware"
	"coursework/backend/models"
	"coursework/backend/services"
	"coursework/backend/store"
	"coursework/backend/utils"
	"coursework/backend/views"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// errorHandler отдает JSON для /api и страницу ошибки для остальных запросов
func errorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Внутренняя ошибка сервера."

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else {
			logger.Printf("%s %s: %v", c.Method(), c.Path(), err)
		}

		if strings.HasPrefix(c.Path(), "/api") {
			if code == fiber.StatusInternalServerError {
				return utils.InternalServerError(c, message)
			}
			return utils.Error(c, code, errors.New(message))
		}

		switch code {
		case fiber.StatusForbidden:
			if message == "" || message == fiber.ErrForbidden.Message {
				message = "Доступ запрещен."
			}
		case fiber.StatusNotFound:
			message = "Страница не найдена."
		}
		return c.Status(code).Render("error", fiber.Map{
			"Title":   "Ошибка",
			"Code":    code,
			"Message": message,
			"User":    middleware.CurrentUser(c),
		})
	}
}

// NewApp собирает приложение: шаблоны, middleware и маршруты
func NewApp(cfg *config.Config, st *store.Store, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views.New(),
		ViewsLayout:  "layout",
		ErrorHandler: errorHandler(logger),
		ReadTimeout:  30 * time.Second,
		BodyLimit:    16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger, cfg.LogFormat != "json"))

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	SetupRoutes(app, cfg, st, logger)
	return app
}

func SetupRoutes(app *fiber.App, cfg *config.Config, st *store.Store, logger *log.Logger) {
	authService := services.NewAuthService(st, cfg)
	topicService := services.NewTopicService(st, st)
	adminService := services.NewAdminService(st, logger)
	profileService := services.NewProfileService(st)

	// Middleware
	auth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	teacherOnly := middleware.RequireRole(models.RoleTeacher)
	studentOnly := middleware.RequireRole(models.RoleStudent)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	authController := controllers.NewAuthController(authService, cfg)
	dashboardController := controllers.NewDashboardController(topicService)
	topicsController := controllers.NewTopicsController(topicService)
	adminController := controllers.NewAdminController(adminService, topicService, logger)
	userController := controllers.NewUserController(profileService)

	// Pages
	app.Get("/", optionalAuth, authController.Home)
	app.Get("/login", authController.LoginPage)
	app.Post("/login", authController.Login)
	app.Get("/logout", authController.Logout)
	app.Get("/dashboard", auth, dashboardController.Dashboard)

	app.Get("/topics/create", auth, teacherOnly, topicsController.CreatePage)
	app.Post("/topics/create", auth, teacherOnly, topicsController.Create)

	teacher := app.Group("/teacher", auth, teacherOnly)
	teacher.Get("/edit-topic/:id", topicsController.EditPage)
	teacher.Post("/edit-topic/:id", topicsController.Edit)
	teacher.Post("/approve-topic/:id", topicsController.Approve)
	teacher.Post("/unapprove-topic/:id", topicsController.Unapprove)
	teacher.Post("/reject-topic/:id", topicsController.Reject)

	student := app.Group("/student", auth, studentOnly)
	student.Post("/assign-topic/:id", topicsController.Claim)
	student.Post("/unassign-topic", topicsController.Unclaim)

	admin := app.Group("/admin", auth, adminOnly)
	admin.Post("/upload/students", adminController.UploadStudents)
	admin.Post("/upload/teachers", adminController.UploadTeachers)
	admin.Post("/settings/vkr-deadline", adminController.SetDeadline)
	admin.Get("/report/download", adminController.DownloadReport)
	admin.Post("/reset-passwords/students", adminController.ResetStudentPasswords)
	admin.Post("/reset-passwords/teachers", adminController.ResetTeacherPasswords)

	// JSON API
	api := app.Group("/api")
	api.Post("/auth/login", authController.APILogin)
	api.Get("/me", auth, authController.Me)
	api.Get("/profile", auth, userController.GetProfile)
	api.Put("/profile/password", auth, userController.ChangePassword)

	topics := api.Group("/topics", auth)
	topics.Get("/", topicsController.List)
	topics.Post("/", teacherOnly, topicsController.APICreate)
	topics.Post("/unclaim", studentOnly, topicsController.APIUnclaim)
	topics.Get("/:id", topicsController.Get)
	topics.Patch("/:id", teacherOnly, topicsController.APIEdit)
	topics.Post("/:id/claim", studentOnly, topicsController.APIClaim)
	topics.Post("/:id/approve", teacherOnly, topicsController.APIApprove)
	topics.Post("/:id/unapprove", teacherOnly, topicsController.APIUnapprove)
	topics.Post("/:id/reject", teacherOnly, topicsController.APIReject)
}
