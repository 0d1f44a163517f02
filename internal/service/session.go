package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/pkg/redis"
)

// SessionStore is the key/value backend sessions live in.
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// SessionService manages opaque server-side login sessions. A session id is
// pure entropy; everything the server knows about the login lives in the
// store under the id.
type SessionService struct {
	store SessionStore
	ttl   time.Duration
	log   *zap.Logger
}

func NewSessionService(store SessionStore, ttl time.Duration, log *zap.Logger) *SessionService {
	return &SessionService{store: store, ttl: ttl, log: log}
}

// TTL exposes the session lifetime for cookie max-age.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Start creates a session for the user and returns its id.
func (s *SessionService) Start(ctx context.Context, userID uint) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	key := constants.RedisKeySession + id
	if err := s.store.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.log.Info("Session started", zap.Uint("user_id", userID))
	return id, nil
}

// Current resolves a session id to the logged-in user. The bool reports
// whether a live session exists.
func (s *SessionService) Current(ctx context.Context, id string) (uint, bool, error) {
	if id == "" {
		return 0, false, nil
	}

	value, err := s.store.Get(ctx, constants.RedisKeySession+id)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		// A corrupt session value is treated as no session.
		s.log.Warn("Corrupt session value", zap.String("value", value))
		return 0, false, nil
	}

	return uint(userID), true, nil
}

// End removes the session. Ending a session that does not exist is a no-op.
func (s *SessionService) End(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Del(ctx, constants.RedisKeySession+id); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// generateSessionID returns 32 bytes of entropy, base64url-encoded.
func generateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
