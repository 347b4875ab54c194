package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// validID reports whether id can address a uuid primary key. Anything
// else can never match a row, so lookups treat it as absent instead of
// letting the uuid cast error surface.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, user_type, full_name, phone, school, grade, subjects, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.UserType, u.FullName, u.Phone, u.School, u.Grade, u.Subjects, u.TeacherID)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return r.getWhere(`id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getWhere(`email = $1`, email)
}

func (r *UserRepository) getWhere(cond string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, user_type, full_name, phone, school, grade, subjects, teacher_id, created_at, updated_at
		FROM users
		WHERE `+cond, arg)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.UserType, &u.FullName, &u.Phone,
		&u.School, &u.Grade, &u.Subjects, &u.TeacherID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// UpdateProfile writes only the mutable profile columns.
// Identity columns (email, password_hash, user_type) are not touched here.
func (r *UserRepository) UpdateProfile(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET full_name = $1, phone = $2, school = $3, grade = $4, subjects = $5, teacher_id = $6, updated_at = $7
		WHERE id = $8
	`, u.FullName, u.Phone, u.School, u.Grade, u.Subjects, u.TeacherID, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
