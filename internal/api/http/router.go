package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/question-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Questions *handlers.QuestionsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	questions := app.Group("/api/questions")
	questions.Post("/", cfg.Questions.Submit)
	questions.Get("/", cfg.Questions.List)
	questions.Get("/new", cfg.Questions.ListNew)
	questions.Get("/high-alert", cfg.Questions.ListHighAlert)
	questions.Get("/answered", cfg.Questions.ListAnswered)
	questions.Get("/answered/count", cfg.Questions.CountAnswered)
	questions.Get("/count", cfg.Questions.CountUnanswered)
	questions.Get("/:id", cfg.Questions.Get)
	questions.Put("/:id/mark-answered", cfg.Questions.MarkAnswered)
	questions.Post("/:id/send-answer", cfg.Questions.SendAnswer)
}
