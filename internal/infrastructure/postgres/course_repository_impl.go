package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
)

const courseColumns = `id, instructor_id, name, description, price, is_free, image_url, level, rating, learners_count, created_at, updated_at`

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(c *entity.Course) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (instructor_id, name, description, price, is_free, image_url, level, rating, learners_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, c.InstructorID, c.Name, c.Description, c.Price, c.IsFree, c.ImageURL, c.Level, c.Rating, c.LearnersCount)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CourseRepository) GetByID(id string) (*entity.Course, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	ctx := context.Background()
	c := &entity.Course{}

	row := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id)
	if err := scanCourse(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) List() ([]*entity.Course, error) {
	return r.listWhere(``)
}

func (r *CourseRepository) ListByInstructor(instructorID string) ([]*entity.Course, error) {
	return r.listWhere(`WHERE instructor_id = $1`, instructorID)
}

func (r *CourseRepository) listWhere(cond string, args ...any) ([]*entity.Course, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses `+cond, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCourses(rows)
}

func (r *CourseRepository) SetImageURL(id, imageURL string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE courses SET image_url = $1, updated_at = now() WHERE id = $2
	`, imageURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner, c *entity.Course) error {
	return row.Scan(&c.ID, &c.InstructorID, &c.Name, &c.Description, &c.Price, &c.IsFree,
		&c.ImageURL, &c.Level, &c.Rating, &c.LearnersCount, &c.CreatedAt, &c.UpdatedAt)
}

func collectCourses(rows pgx.Rows) ([]*entity.Course, error) {
	out := make([]*entity.Course, 0)
	for rows.Next() {
		c := &entity.Course{}
		if err := scanCourse(rows, c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
