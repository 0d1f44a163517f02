package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// TokenStatus is the outcome of a code check.
type TokenStatus string

const (
	TokenValid    TokenStatus = "valid"
	TokenExpired  TokenStatus = "expired"
	TokenNotFound TokenStatus = "not_found"
)

// AuthEmailStore is the persistence the token issuer needs.
type AuthEmailStore interface {
	Create(ctx context.Context, record *model.AuthEmail) error
	GetLatestByEmail(ctx context.Context, email, purpose string) (*model.AuthEmail, error)
	GetByCode(ctx context.Context, code, purpose string) (*model.AuthEmail, error)
}

// TokenService issues and checks the opaque codes behind email verification
// and password reset. Codes are never invalidated on use; the TTL window is
// the only deactivation mechanism, so a code stays checkable until it expires.
type TokenService struct {
	store AuthEmailStore
	ttl   time.Duration
	log   *zap.Logger
}

func NewTokenService(store AuthEmailStore, ttl time.Duration, log *zap.Logger) *TokenService {
	return &TokenService{store: store, ttl: ttl, log: log}
}

// TTL exposes the configured code lifetime for mail bodies.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue generates a fresh 20-byte random code for the email and purpose and
// persists it with an expiry of now + TTL.
func (s *TokenService) Issue(ctx context.Context, email, purpose string) (*model.AuthEmail, error) {
	code, err := generateCode()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	now := time.Now()
	record := &model.AuthEmail{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.log.Info("Auth code issued",
		zap.String("email", email),
		zap.String("purpose", purpose),
		zap.Time("expires_at", record.ExpiresAt))

	return record, nil
}

// ValidateLatest checks a code against the most recently issued one for the
// email and purpose. A mismatching code counts as not found.
func (s *TokenService) ValidateLatest(ctx context.Context, email, code, purpose string, now time.Time) (TokenStatus, error) {
	record, err := s.store.GetLatestByEmail(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenNotFound, nil
		}
		return TokenNotFound, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if record.Code != code {
		return TokenNotFound, nil
	}
	if record.Expired(now) {
		return TokenExpired, nil
	}
	return TokenValid, nil
}

// ValidateCode looks a code up directly and returns the matching record so
// the caller learns which email it belongs to.
func (s *TokenService) ValidateCode(ctx context.Context, code, purpose string, now time.Time) (*model.AuthEmail, TokenStatus, error) {
	record, err := s.store.GetByCode(ctx, code, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenNotFound, nil
		}
		return nil, TokenNotFound, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if record.Expired(now) {
		return record, TokenExpired, nil
	}
	return record, TokenValid, nil
}

// generateCode returns 20 bytes of entropy hex-encoded.
func generateCode() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate auth code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
