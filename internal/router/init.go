package router

import (
	"github.com/oksasatya/educonnect-api/internal/application"
	"github.com/oksasatya/educonnect-api/internal/container"
	pginfra "github.com/oksasatya/educonnect-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/educonnect-api/internal/interface/http"
	"github.com/oksasatya/educonnect-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	enrollments := pginfra.NewEnrollmentRepository(pool)

	accountSvc := application.NewAccountService(
		users,
		container.GetSessions(),
		logger,
		container.GetRabbitPub(),
		cfg,
	)
	courseSvc := application.NewCourseService(
		courses,
		enrollments,
		logger,
		container.GetES(),
		cfg.ESCoursesIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)

	accountHandler := handlers.NewAccountHandler(accountSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	courseHandler := handlers.NewCourseHandler(courseSvc, accountSvc, logger)

	r.Add(modules.NewAccountModule(accountHandler))
	r.Add(modules.NewCourseModule(courseHandler))
}
