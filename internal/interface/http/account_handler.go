package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/educonnect-api/internal/application"
	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/interface/middleware"
	"github.com/oksasatya/educonnect-api/pkg/helpers"
	"github.com/oksasatya/educonnect-api/pkg/response"
	"github.com/oksasatya/educonnect-api/pkg/validation"
)

type AccountHandler struct {
	Svc     *application.AccountService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookieManager(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	UserType string `json:"userType" binding:"required,usertype"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// updateProfileRequest is the allow-list: only these six fields can be
// changed after registration. Absent fields stay untouched.
type updateProfileRequest struct {
	FullName  *string `json:"fullName"`
	Phone     *string `json:"phone"`
	School    *string `json:"school"`
	Grade     *string `json:"grade"`
	Subjects  *string `json:"subjects"`
	TeacherID *string `json:"teacherId"`
}

func profileJSON(u *entity.User) gin.H {
	return gin.H{
		"fullName":  u.FullName,
		"phone":     u.Phone,
		"school":    u.School,
		"grade":     u.Grade,
		"subjects":  u.Subjects,
		"teacherId": u.TeacherID,
	}
}

// Register POST /api/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstError(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Email already exists")
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"userType": u.UserType,
	})
}

// Login POST /api/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstError(err))
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	h.Cookies.SetSession(c, token)
	response.JSON(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"userType": u.UserType,
		"profile":  profileJSON(u),
	})
}

// Logout POST /api/logout
func (h *AccountHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxSessionTokenKey)
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		h.Logger.WithError(err).Warn("session destroy failed")
	}
	h.Cookies.ClearSession(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// GetProfile GET /api/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error(c, http.StatusNotFound, "User not found")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"userType": u.UserType,
		"profile":  profileJSON(u),
	})
}

// UpdateProfile PUT /api/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstError(err))
		return
	}
	_, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.ProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		School:    req.School,
		Grade:     req.Grade,
		Subjects:  req.Subjects,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	response.Message(c, http.StatusOK, "Profile updated successfully")
}
