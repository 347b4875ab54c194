package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/educonnect-api/internal/container"
	handlers "github.com/oksasatya/educonnect-api/internal/interface/http"
	"github.com/oksasatya/educonnect-api/internal/interface/middleware"
)

// AccountModule wires account HTTP handlers and the session gate into routes.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, GET /api/profile, PUT /api/profile

type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	allowLocal := middleware.AllowPrivateIP()

	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), allowLocal)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), allowLocal)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.SessionAuth(container.GetSessions()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), allowLocal))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
	}
}
