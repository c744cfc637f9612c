// Package server assembles the Fiber application: middleware, routes and the
// service graph behind them.
package server

import (
	"context"
	"time"

	"taskboard/config"
	"taskboard/handlers"
	"taskboard/middleware"
	"taskboard/repository"
	"taskboard/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const Version = "1.0.0"

// New wires the repository, services and handlers into a Fiber app.
func New(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *fiber.App {
	store := repository.New(db, log)
	tokens := services.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	h := handlers.NewHandler(log, handlers.Services{
		Members:  services.NewTeamMemberService(store, log),
		Projects: services.NewProjectService(store, store, log),
		Tasks:    services.NewTaskService(store, store, store, log),
		Auth:     services.NewAuthService(store, tokens, log),
	}, !cfg.IsProduction())

	app := fiber.New(fiber.Config{
		AppName:      "taskboard",
		ErrorHandler: errorHandler(cfg.IsProduction()),
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log.Named("access")))

	corsOrigins := cfg.Server.CORSOrigins
	if corsOrigins == "" {
		corsOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: corsOrigins != "*",
	}))
	app.Use(requestTimeout(cfg.Server.RequestTimeout))

	routes(app, h, tokens, cfg.RateLimit)
	return app
}

func routes(app *fiber.App, h *handlers.Handler, tokens middleware.TokenParser, rl config.RateLimitConfig) {
	requireAuth := middleware.Auth(tokens)
	api := app.Group("/api", middleware.APIRateLimit(rl))

	authGroup := api.Group("/auth")
	authLimit := middleware.AuthRateLimit(rl)
	authGroup.Post("/signup", authLimit, h.Signup)
	authGroup.Post("/login", authLimit, h.Login)
	authGroup.Get("/me", requireAuth, h.Me)
	authGroup.Post("/logout", h.Logout)

	teamGroup := api.Group("/teams", requireAuth)
	teamGroup.Get("/", h.ListTeamMembers)
	teamGroup.Post("/", h.CreateTeamMember)
	teamGroup.Get("/:id", h.GetTeamMember)
	teamGroup.Put("/:id", h.UpdateTeamMember)
	teamGroup.Delete("/:id", h.DeleteTeamMember)

	projectGroup := api.Group("/projects", requireAuth)
	projectGroup.Get("/", h.ListProjects)
	projectGroup.Post("/", h.CreateProject)
	projectGroup.Get("/:id", h.GetProject)
	projectGroup.Put("/:id", h.UpdateProject)
	projectGroup.Delete("/:id", h.DeleteProject)

	taskGroup := api.Group("/tasks", requireAuth)
	taskGroup.Get("/", h.ListTasks)
	taskGroup.Post("/", h.CreateTask)
	taskGroup.Get("/:id", h.GetTask)
	taskGroup.Put("/:id", h.UpdateTask)
	taskGroup.Delete("/:id", h.DeleteTask)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   Version,
		})
	})
}

// requestTimeout bounds the context handed to the services.
func requestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		} else if !production {
			message = err.Error()
		}

		// Don't expose internal errors in production
		if production && code == fiber.StatusInternalServerError {
			message = "An error occurred. Please try again later."
		}

		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
