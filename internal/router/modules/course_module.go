package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/educonnect-api/internal/container"
	handlers "github.com/oksasatya/educonnect-api/internal/interface/http"
	"github.com/oksasatya/educonnect-api/internal/interface/middleware"
)

// CourseModule wires the course catalog and enrollment routes.
// Public: GET /api/courses, GET /api/courses/:id
// Protected: POST /api/courses, POST /api/courses/:id/image,
// POST /api/enroll/:courseId, GET /api/dashboard

type CourseModule struct {
	Handler *handlers.CourseHandler
}

func NewCourseModule(h *handlers.CourseHandler) *CourseModule {
	return &CourseModule{Handler: h}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	allowLocal := middleware.AllowPrivateIP()

	listLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), allowLocal)

	rg.GET("/courses", listLimiter, m.Handler.List)
	rg.GET("/courses/:id", listLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.SessionAuth(container.GetSessions()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), allowLocal))
	{
		auth.POST("/courses", m.Handler.Create)
		auth.POST("/courses/:id/image", m.Handler.UploadImage)
		auth.POST("/enroll/:courseId", m.Handler.Enroll)
		auth.GET("/dashboard", m.Handler.Dashboard)
	}
}
