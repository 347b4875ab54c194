package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
	"github.com/oksasatya/educonnect-api/pkg/helpers"
)

var ErrCourseNotFound = errors.New("course not found")

const DefaultCourseLevel = "Beginner"

// CourseService owns the course catalog and enrollments.
type CourseService struct {
	Courses     repository.CourseRepository
	Enrollments repository.EnrollmentRepository
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESIndex     string
	GCS         *storage.Client
	GCSBucket   string
}

func NewCourseService(courses repository.CourseRepository, enrollments repository.EnrollmentRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *CourseService {
	return &CourseService{
		Courses:     courses,
		Enrollments: enrollments,
		Logger:      logger,
		ES:          es,
		ESIndex:     esIndex,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
	}
}

// CreateCourseInput carries the optional fields with their creation defaults.
type CreateCourseInput struct {
	Name        string
	Description string
	Price       float64
	IsFree      *bool // nil -> true
	ImageURL    string
	Level       string // empty -> Beginner
}

// Create inserts a course owned by ownerID. The owner is the current
// session's user; there is no instructor-type check.
func (s *CourseService) Create(ctx context.Context, ownerID string, in CreateCourseInput) (*entity.Course, error) {
	isFree := true
	if in.IsFree != nil {
		isFree = *in.IsFree
	}
	level := in.Level
	if level == "" {
		level = DefaultCourseLevel
	}
	c := &entity.Course{
		InstructorID: ownerID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		IsFree:       isFree,
		ImageURL:     in.ImageURL,
		Level:        level,
	}
	if err := s.Courses.Create(c); err != nil {
		return nil, err
	}
	_ = s.indexCourse(ctx, c)
	return c, nil
}

func (s *CourseService) List() ([]*entity.Course, error) {
	return s.Courses.List()
}

func (s *CourseService) Get(id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// Enroll records the enrollment without any duplicate or student-type
// check. An unknown course surfaces as ErrCourseNotFound via the FK.
func (s *CourseService) Enroll(ctx context.Context, studentID, courseID string) error {
	e := &entity.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.Enrollments.Create(e); err != nil {
		if errors.Is(err, repository.ErrCourseReference) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

func (s *CourseService) CoursesForStudent(studentID string) ([]*entity.Course, error) {
	return s.Enrollments.ListCoursesByStudent(studentID)
}

func (s *CourseService) CoursesForInstructor(instructorID string) ([]*entity.Course, error) {
	return s.Courses.ListByInstructor(instructorID)
}

// UploadImage stores a course image in GCS and records its public URL.
func (s *CourseService) UploadImage(ctx context.Context, courseID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	c, err := s.Get(courseID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("courses", c.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Courses.SetImageURL(c.ID, url); err != nil {
		return "", err
	}
	c.ImageURL = url
	_ = s.indexCourse(ctx, c)
	return url, nil
}

// courseDoc mirrors the API projection so search hits can be returned as-is.
func courseDoc(c *entity.Course) map[string]any {
	return map[string]any{
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

func (s *CourseService) indexCourse(ctx context.Context, c *entity.Course) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	b, _ := json.Marshal(courseDoc(c))
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(ctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", c.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("course_id", c.ID).Warn("es index response error")
	}
	return nil
}

// Search runs a multi_match over name and description. With no ES client
// configured it returns an empty result rather than failing the request.
func (s *CourseService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
