package repository

import (
	"errors"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
)

// ErrCourseReference is returned by Create when course_id does not
// resolve to an existing course (foreign key violation).
// There is deliberately no duplicate-enrollment constraint.
var ErrCourseReference = errors.New("course reference does not exist")

// EnrollmentRepository defines the interface for enrollment database operations.
type EnrollmentRepository interface {
	Create(e *entity.Enrollment) error
	// ListCoursesByStudent resolves each enrollment to its course row.
	// Dangling course references drop out of the result instead of
	// failing the whole query.
	ListCoursesByStudent(studentID string) ([]*entity.Course, error)
}
