package repository

import "github.com/oksasatya/educonnect-api/internal/domain/entity"

// CourseRepository defines the interface for course-related database operations.
type CourseRepository interface {
	Create(c *entity.Course) error
	GetByID(id string) (*entity.Course, error)
	List() ([]*entity.Course, error)
	ListByInstructor(instructorID string) ([]*entity.Course, error)
	SetImageURL(id, imageURL string) error
}
