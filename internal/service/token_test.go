package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// fakeAuthEmailStore keeps issued codes in memory, newest-first per email.
type fakeAuthEmailStore struct {
	records   []*model.AuthEmail
	createErr error
	nextID    uint
}

func (f *fakeAuthEmailStore) Create(_ context.Context, record *model.AuthEmail) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuthEmailStore) GetLatestByEmail(_ context.Context, email, purpose string) (*model.AuthEmail, error) {
	matches := []*model.AuthEmail{}
	for _, r := range f.records {
		if r.Email == email && r.Purpose == purpose {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func (f *fakeAuthEmailStore) GetByCode(_ context.Context, code, purpose string) (*model.AuthEmail, error) {
	for _, r := range f.records {
		if r.Code == code && r.Purpose == purpose {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTokenService(store *fakeAuthEmailStore, ttl time.Duration) *TokenService {
	return NewTokenService(store, ttl, zap.NewNop())
}

func TestIssueGeneratesUniqueOpaqueCodes(t *testing.T) {
	store := &fakeAuthEmailStore{}
	svc := newTokenService(store, 10*time.Minute)

	first, err := svc.Issue(context.Background(), "user@example.com", constants.PurposeEmailVerify)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "user@example.com", constants.PurposeEmailVerify)
	require.NoError(t, err)

	assert.Len(t, first.Code, 40, "20 random bytes hex-encoded")
	assert.NotEqual(t, first.Code, second.Code)
	assert.Equal(t, constants.PurposeEmailVerify, first.Purpose)
	assert.True(t, first.ExpiresAt.After(first.CreatedAt))
}

func TestValidateLatestTriState(t *testing.T) {
	store := &fakeAuthEmailStore{}
	svc := newTokenService(store, 10*time.Minute)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "user@example.com", constants.PurposeEmailVerify)
	require.NoError(t, err)

	now := record.CreatedAt

	status, err := svc.ValidateLatest(ctx, "user@example.com", record.Code, constants.PurposeEmailVerify, now)
	require.NoError(t, err)
	assert.Equal(t, TokenValid, status)

	status, err = svc.ValidateLatest(ctx, "user@example.com", "wrong-code", constants.PurposeEmailVerify, now)
	require.NoError(t, err)
	assert.Equal(t, TokenNotFound, status)

	status, err = svc.ValidateLatest(ctx, "other@example.com", record.Code, constants.PurposeEmailVerify, now)
	require.NoError(t, err)
	assert.Equal(t, TokenNotFound, status)

	status, err = svc.ValidateLatest(ctx, "user@example.com", record.Code, constants.PurposeEmailVerify,
		record.ExpiresAt)
	require.NoError(t, err)
	assert.Equal(t, TokenExpired, status, "expiry boundary is exclusive")
}

// Only the newest code per email and purpose counts.
func TestValidateLatestConsultsNewestCode(t *testing.T) {
	store := &fakeAuthEmailStore{}
	svc := newTokenService(store, 10*time.Minute)
	ctx := context.Background()

	old, err := svc.Issue(ctx, "user@example.com", constants.PurposeEmailVerify)
	require.NoError(t, err)
	// Push the second issue measurably later.
	store.records[0].CreatedAt = old.CreatedAt.Add(-time.Minute)

	fresh, err := svc.Issue(ctx, "user@example.com", constants.PurposeEmailVerify)
	require.NoError(t, err)

	status, err := svc.ValidateLatest(ctx, "user@example.com", fresh.Code, constants.PurposeEmailVerify, fresh.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, TokenValid, status)

	status, err = svc.ValidateLatest(ctx, "user@example.com", old.Code, constants.PurposeEmailVerify, fresh.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, TokenNotFound, status, "superseded code must not validate")
}

// Codes are not invalidated on use. A second check within the TTL still
// validates.
func TestCodeReuseWithinTTLValidates(t *testing.T) {
	store := &fakeAuthEmailStore{}
	svc := newTokenService(store, 10*time.Minute)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "user@example.com", constants.PurposePasswordReset)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, status, err := svc.ValidateCode(ctx, record.Code, constants.PurposePasswordReset, record.CreatedAt)
		require.NoError(t, err)
		assert.Equal(t, TokenValid, status)
	}
}

func TestValidateCodeReturnsOwningEmail(t *testing.T) {
	store := &fakeAuthEmailStore{}
	svc := newTokenService(store, 10*time.Minute)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "owner@example.com", constants.PurposePasswordReset)
	require.NoError(t, err)

	found, status, err := svc.ValidateCode(ctx, record.Code, constants.PurposePasswordReset, record.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, TokenValid, status)
	assert.Equal(t, "owner@example.com", found.Email)

	_, status, err = svc.ValidateCode(ctx, record.Code, constants.PurposeEmailVerify, record.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, TokenNotFound, status, "purpose is part of the lookup key")
}
