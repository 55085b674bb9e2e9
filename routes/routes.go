package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/controllers"
	"github.com/f-kazuma/smardy1210/middleware"
	"github.com/f-kazuma/smardy1210/store"
)

func SetupRoutes(app *fiber.App, st store.Store, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(st, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(st, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Subject routes
	subjectsController := controllers.NewSubjectsController(st, cfg)
	subjects := app.Group("/api/subjects", authMiddleware)
	subjects.Get("/", subjectsController.GetSubjects)
	subjects.Post("/", subjectsController.CreateSubject)
	subjects.Put("/:id", subjectsController.UpdateSubject)
	subjects.Delete("/:id", subjectsController.DeleteSubject)

	// Goal routes
	goalsController := controllers.NewGoalsController(st, cfg)
	goals := app.Group("/api/goals", authMiddleware)
	goals.Get("/", goalsController.GetGoals)
	goals.Post("/", goalsController.CreateGoal)
	goals.Put("/:id", goalsController.UpdateGoal)
	goals.Post("/:id/progress", goalsController.AddProgress)
	goals.Get("/:id/pacing", goalsController.GetPacing)
	goals.Delete("/:id", goalsController.DeleteGoal)

	// Study session and statistics routes
	sessionsController := controllers.NewSessionsController(st, cfg)
	sessions := app.Group("/api/sessions", authMiddleware)
	sessions.Get("/", sessionsController.GetSessions)
	sessions.Post("/", sessionsController.CreateSession)

	stats := app.Group("/api/stats", authMiddleware)
	stats.Get("/study", sessionsController.GetStudyStats)
	stats.Get("/daily", sessionsController.GetDailyStudyData)
	stats.Get("/subjects", sessionsController.GetSubjectDistribution)

	// Test result routes
	resultsController := controllers.NewResultsController(st, cfg)
	results := app.Group("/api/results", authMiddleware)
	results.Get("/", resultsController.GetResults)
	results.Post("/", resultsController.CreateResult)

	// Calendar event routes
	eventsController := controllers.NewEventsController(st, cfg)
	events := app.Group("/api/events", authMiddleware)
	events.Get("/", eventsController.GetEvents)
	events.Post("/", eventsController.CreateEvent)
	events.Put("/:id", eventsController.UpdateEvent)
	events.Delete("/:id", eventsController.DeleteEvent)
}
