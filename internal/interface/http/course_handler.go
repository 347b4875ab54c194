package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/educonnect-api/internal/application"
	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/interface/middleware"
	"github.com/oksasatya/educonnect-api/pkg/response"
	"github.com/oksasatya/educonnect-api/pkg/validation"
)

const maxImageUploadBytes = 8 << 20 // 8 MiB

type CourseHandler struct {
	Svc      *application.CourseService
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, accounts *application.AccountService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Accounts: accounts, Logger: logger}
}

type createCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
	IsFree      *bool   `json:"isFree"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,url"`
	Level       string  `json:"level"`
}

func courseJSON(c *entity.Course) gin.H {
	return gin.H{
		"id":            c.ID,
		"instructorId":  c.InstructorID,
		"name":          c.Name,
		"description":   c.Description,
		"price":         c.Price,
		"isFree":        c.IsFree,
		"imageUrl":      c.ImageURL,
		"level":         c.Level,
		"rating":        c.Rating,
		"learnersCount": c.LearnersCount,
	}
}

func coursesJSON(cs []*entity.Course) []gin.H {
	out := make([]gin.H, 0, len(cs))
	for _, c := range cs {
		out = append(out, courseJSON(c))
	}
	return out
}

// List GET /api/courses. With ?q= it searches the catalog instead.
func (h *CourseHandler) List(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		hits, err := h.Svc.Search(c.Request.Context(), q, 0)
		if err != nil {
			h.Logger.WithError(err).Warn("course search failed")
			response.Error(c, http.StatusInternalServerError, "Search failed")
			return
		}
		response.JSON(c, http.StatusOK, hits)
		return
	}
	courses, err := h.Svc.List()
	if err != nil {
		h.Logger.WithError(err).Error("list courses failed")
		response.Error(c, http.StatusInternalServerError, "Failed to list courses")
		return
	}
	response.JSON(c, http.StatusOK, coursesJSON(courses))
}

// Create POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstError(err))
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), uid, application.CreateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsFree:      req.IsFree,
		ImageURL:    req.ImageURL,
		Level:       req.Level,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("create course failed")
		response.Error(c, http.StatusInternalServerError, "Failed to create course")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"id":          course.ID,
		"name":        course.Name,
		"description": course.Description,
	})
}

// Get GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error(c, http.StatusNotFound, "Course not found")
			return
		}
		h.Logger.WithError(err).Error("get course failed")
		response.Error(c, http.StatusInternalServerError, "Failed to fetch course")
		return
	}
	response.JSON(c, http.StatusOK, courseJSON(course))
}

// Enroll POST /api/enroll/:courseId
func (h *CourseHandler) Enroll(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	courseID := c.Param("courseId")
	if err := h.Svc.Enroll(c.Request.Context(), uid, courseID); err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error(c, http.StatusNotFound, "Course not found")
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("enroll failed")
		response.Error(c, http.StatusInternalServerError, "Failed to enroll")
		return
	}
	response.Message(c, http.StatusOK, "Enrolled successfully")
}

// Dashboard GET /api/dashboard returns the user plus their courses:
// enrolled ones for students, owned ones for instructors.
func (h *CourseHandler) Dashboard(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Accounts.GetProfile(uid)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var courses []*entity.Course
	if u.UserType == entity.UserTypeStudent {
		courses, err = h.Svc.CoursesForStudent(u.ID)
	} else {
		courses, err = h.Svc.CoursesForInstructor(u.ID)
	}
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("dashboard courses failed")
		response.Error(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":       u.ID,
			"email":    u.Email,
			"userType": u.UserType,
			"profile":  profileJSON(u),
		},
		"courses": coursesJSON(courses),
	})
}

// UploadImage POST /api/courses/:id/image (multipart field "image")
func (h *CourseHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if fh.Size > maxImageUploadBytes {
		response.Error(c, http.StatusBadRequest, "Image too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Unable to read image")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error(c, http.StatusNotFound, "Course not found")
			return
		}
		h.Logger.WithError(err).Error("course image upload failed")
		response.Error(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imageUrl": url})
}
