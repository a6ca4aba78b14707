package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/course-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/course-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Admins     *handlers.AdminsHandler
	Users      *handlers.UsersHandler
	Courses    *handlers.CoursesHandler
	AdminGuard *auth.Guard
	UserGuard  *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/signup", cfg.Admins.Signup)
	adminGroup.Post("/login", cfg.Admins.Login)
	adminGroup.Post("/logout", cfg.Admins.Logout)

	userGroup := app.Group("/user")
	userGroup.Post("/signup", cfg.Users.Signup)
	userGroup.Post("/login", cfg.Users.Login)
	userGroup.Post("/logout", cfg.Users.Logout)
	userGroup.Get("/purchases", cfg.UserGuard.Handle, cfg.Users.Purchases)

	courseGroup := app.Group("/course")
	courseGroup.Post("/create", cfg.AdminGuard.Handle, cfg.Courses.Create)
	courseGroup.Put("/update/:courseId", cfg.AdminGuard.Handle, cfg.Courses.Update)
	courseGroup.Delete("/delete/:courseId", cfg.AdminGuard.Handle, cfg.Courses.Delete)
	courseGroup.Get("/courses", cfg.Courses.List)
	courseGroup.Post("/buy/:courseId", cfg.UserGuard.Handle, cfg.Courses.Buy)
	// registered last so the static routes above win
	courseGroup.Get("/:courseId", cfg.Courses.Detail)
}
