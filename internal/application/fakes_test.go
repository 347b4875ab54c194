package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
)

// In-memory repositories mimicking the Postgres behavior the services
// rely on: generated ids, unique-email rejection, FK rejection on
// enrollments, and value (copy) semantics on reads.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdateProfile(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.FullName = u.FullName
	stored.Phone = u.Phone
	stored.School = u.School
	stored.Grade = u.Grade
	stored.Subjects = u.Subjects
	stored.TeacherID = u.TeacherID
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*entity.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[string]*entity.Course{}}
}

func (r *memCourseRepo) Create(c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *memCourseRepo) GetByID(id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCourseRepo) List() ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Course, 0, len(r.courses))
	for _, c := range r.courses {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCourseRepo) ListByInstructor(instructorID string) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Course, 0)
	for _, c := range r.courses {
		if c.InstructorID == instructorID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCourseRepo) SetImageURL(id, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ImageURL = imageURL
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memCourseRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
}

type memEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments []*entity.Enrollment
	courses     *memCourseRepo
}

func newMemEnrollmentRepo(courses *memCourseRepo) *memEnrollmentRepo {
	return &memEnrollmentRepo{courses: courses}
}

func (r *memEnrollmentRepo) Create(e *entity.Enrollment) error {
	if _, err := r.courses.GetByID(e.CourseID); err != nil {
		return repository.ErrCourseReference
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	cp := *e
	r.enrollments = append(r.enrollments, &cp)
	return nil
}

func (r *memEnrollmentRepo) ListCoursesByStudent(studentID string) ([]*entity.Course, error) {
	r.mu.Lock()
	enrolled := make([]string, 0)
	for _, e := range r.enrollments {
		if e.StudentID == studentID {
			enrolled = append(enrolled, e.CourseID)
		}
	}
	r.mu.Unlock()

	out := make([]*entity.Course, 0, len(enrolled))
	for _, cid := range enrolled {
		c, err := r.courses.GetByID(cid)
		if err != nil {
			// dangling reference: the join drops it
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*Session{}}
}

func (s *memSessionStore) Create(ctx context.Context, u *entity.User) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &Session{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		UserType:  u.UserType,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	return token, nil
}

func (s *memSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var (
	_ repository.UserRepository       = (*memUserRepo)(nil)
	_ repository.CourseRepository     = (*memCourseRepo)(nil)
	_ repository.EnrollmentRepository = (*memEnrollmentRepo)(nil)
	_ SessionStore                    = (*memSessionStore)(nil)
)
