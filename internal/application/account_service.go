package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/educonnect-api/config"
	"github.com/oksasatya/educonnect-api/internal/domain/entity"
	"github.com/oksasatya/educonnect-api/internal/domain/repository"
	"github.com/oksasatya/educonnect-api/pkg/helpers"
	"github.com/oksasatya/educonnect-api/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AccountService owns registration, credential verification and profile edits.
type AccountService struct {
	Users    repository.UserRepository
	Sessions SessionStore
	Logger   *logrus.Logger
	Pub      *helpers.RabbitPublisher
	Cfg      *config.Config
}

func NewAccountService(users repository.UserRepository, sessions SessionStore, logger *logrus.Logger, pub *helpers.RabbitPublisher, cfg *config.Config) *AccountService {
	return &AccountService{Users: users, Sessions: sessions, Logger: logger, Pub: pub, Cfg: cfg}
}

// NormalizeEmail is applied before every store lookup and insert, so the
// unique index on lower(email) sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register persists a new user with a bcrypt hash. Duplicate emails are
// reported by the store's unique index, never by a check-then-insert.
func (s *AccountService) Register(ctx context.Context, email, password, userType string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    NormalizeEmail(email),
		Password: hash,
		UserType: userType,
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.sendWelcome(ctx, u)
	return u, nil
}

// Authenticate returns the same failure for an unknown email and a wrong
// password, so callers cannot enumerate accounts.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(NormalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and establishes a session, returning the opaque token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.Sessions.Create(ctx, u)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("create session failed")
		}
		return nil, "", err
	}
	return u, token, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}

func (s *AccountService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ProfileInput is the allow-list of mutable profile fields. Nil means
// "leave unchanged"; identity fields are not reachable through here.
type ProfileInput struct {
	FullName  *string
	Phone     *string
	School    *string
	Grade     *string
	Subjects  *string
	TeacherID *string
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// UpdateProfile merges the provided fields onto the stored user.
// Applying the same input twice leaves the same stored state.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	applyIfSet(&u.FullName, in.FullName)
	applyIfSet(&u.Phone, in.Phone)
	applyIfSet(&u.School, in.School)
	applyIfSet(&u.Grade, in.Grade)
	applyIfSet(&u.Subjects, in.Subjects)
	applyIfSet(&u.TeacherID, in.TeacherID)
	if err := s.Users.UpdateProfile(u); err != nil {
		return nil, err
	}
	return u, nil
}

// sendWelcome enqueues a welcome email. Best-effort: registration never
// fails because the broker is down.
func (s *AccountService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"AppName":  s.Cfg.AppName,
			"Name":     u.FullName,
			"UserType": u.UserType,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
