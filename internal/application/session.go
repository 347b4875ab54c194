package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/educonnect-api/internal/domain/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side identity bound to one opaque client token.
type Session struct {
	Token     string
	UserID    string
	Email     string
	UserType  string
	CreatedAt string
}

// SessionStore maps opaque tokens to authenticated identities.
// Handlers and middleware only see this interface; production uses Redis.
type SessionStore interface {
	Create(ctx context.Context, u *entity.User) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}

func sessionKey(token string) string {
	return "session:" + token
}

// newSessionToken returns 256 bits of URL-safe randomness. The token is
// opaque: it carries no claims and is only meaningful to the store.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RedisSessionStore keeps sessions as Redis hashes. A TTL of 0 keeps
// them alive until logout or the client drops its cookie.
type RedisSessionStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{RDB: rdb, TTL: ttl}
}

func (s *RedisSessionStore) Create(ctx context.Context, u *entity.User) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}
	key := sessionKey(token)
	fields := map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"user_type":  u.UserType,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.RDB.Pipeline()
	pipe.HSet(ctx, key, fields)
	if s.TTL > 0 {
		pipe.Expire(ctx, key, s.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.RDB.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}
	return &Session{
		Token:     token,
		UserID:    data["user_id"],
		Email:     data["email"],
		UserType:  data["user_type"],
		CreatedAt: data["created_at"],
	}, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.RDB.Del(ctx, sessionKey(token)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
