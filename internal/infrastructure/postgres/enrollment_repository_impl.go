package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
)

// enrollmentsCourseFK is named explicitly in the migration so the
// mapping below does not depend on Postgres default constraint naming.
const enrollmentsCourseFK = "enrollments_course_id_fkey"

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// mapEnrollmentCreateErr translates only a course_id FK violation into
// ErrCourseReference; a student_id violation stays a plain error.
func mapEnrollmentCreateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == enrollmentsCourseFK {
		return repository.ErrCourseReference
	}
	return err
}

// Create inserts the enrollment unconditionally; the same student may
// enroll in the same course more than once.
func (r *EnrollmentRepository) Create(e *entity.Enrollment) error {
	if !validID(e.CourseID) {
		return repository.ErrCourseReference
	}
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, e.StudentID, e.CourseID)

	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		return mapEnrollmentCreateErr(err)
	}
	return nil
}

// ListCoursesByStudent resolves enrollments to course rows via an inner
// join, so an enrollment whose course no longer exists simply drops out.
func (r *EnrollmentRepository) ListCoursesByStudent(studentID string) ([]*entity.Course, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.instructor_id, c.name, c.description, c.price, c.is_free, c.image_url, c.level, c.rating, c.learners_count, c.created_at, c.updated_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
