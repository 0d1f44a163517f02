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

	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

type likeRow struct {
	cafeID uint
	userID uint
	live   bool
}

// fakeReviewStore is an in-memory ReviewStore. GetByID attaches the author
// from authors the way the real store preloads it.
type fakeReviewStore struct {
	reviews map[uint]*model.Review
	likes   []*likeRow
	authors map[uint]model.User
	nextID  uint
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[uint]*model.Review{}}
}

func (f *fakeReviewStore) Create(_ context.Context, review *model.Review) error {
	f.nextID++
	review.ID = f.nextID
	review.CreatedAt = time.Now()
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id uint) (*model.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if author, ok := f.authors[review.UserID]; ok {
		review.User = author
	}
	return review, nil
}

func (f *fakeReviewStore) ListByCafe(_ context.Context, cafeID uint, limit, offset int) ([]model.Review, int64, error) {
	matches := []model.Review{}
	for _, r := range f.reviews {
		if r.CafeID == cafeID {
			matches = append(matches, *r)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (f *fakeReviewStore) UpdateContent(_ context.Context, id uint, content string) error {
	review, ok := f.reviews[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	review.Content = content
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewStore) GetLiveLike(_ context.Context, cafeID, userID uint) (*model.Like, error) {
	for _, l := range f.likes {
		if l.live && l.cafeID == cafeID && l.userID == userID {
			return &model.Like{CafeID: cafeID, UserID: userID}, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewStore) CreateLike(_ context.Context, like *model.Like) error {
	for _, l := range f.likes {
		if l.live && l.cafeID == like.CafeID && l.userID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.likes = append(f.likes, &likeRow{cafeID: like.CafeID, userID: like.UserID, live: true})
	return nil
}

func (f *fakeReviewStore) DeleteLike(_ context.Context, cafeID, userID uint) error {
	for _, l := range f.likes {
		if l.live && l.cafeID == cafeID && l.userID == userID {
			l.live = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReviewStore) CountLikes(_ context.Context, cafeID uint) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.live && l.cafeID == cafeID {
			count++
		}
	}
	return count, nil
}

// fakeCafeProbe answers existence checks for a fixed set of café ids.
type fakeCafeProbe struct {
	cafes map[uint]*model.Cafe
}

func (f *fakeCafeProbe) GetByID(_ context.Context, id uint) (*model.Cafe, error) {
	cafe, ok := f.cafes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cafe, nil
}

func newReviewFixture() (*ReviewService, *fakeReviewStore) {
	store := newFakeReviewStore()
	probe := &fakeCafeProbe{cafes: map[uint]*model.Cafe{
		1: {Model: gorm.Model{ID: 1}, Name: "First Cafe"},
	}}
	return NewReviewService(store, probe, zap.NewNop()), store
}

func TestCreateReviewRequiresCafe(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 99, 10, dto.CreateReviewRequest{Content: "good coffee"})
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)

	review, err := svc.Create(ctx, 1, 10, dto.CreateReviewRequest{Content: "good coffee"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), review.CafeID)
	assert.Equal(t, uint(10), review.AuthorID)
}

// The 201 body carries the author's name and image, not just the id.
func TestCreateReviewCarriesAuthor(t *testing.T) {
	svc, store := newReviewFixture()
	store.authors = map[uint]model.User{
		10: {Model: gorm.Model{ID: 10}, Name: "tester", Image: "avatars/tester.png"},
	}

	review, err := svc.Create(context.Background(), 1, 10, dto.CreateReviewRequest{Content: "good coffee"})
	require.NoError(t, err)
	assert.Equal(t, "tester", review.AuthorName)
	assert.Equal(t, "avatars/tester.png", review.AuthorImg)
}

func TestReviewOwnershipChecks(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	review, err := svc.Create(ctx, 1, 10, dto.CreateReviewRequest{Content: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, review.ID, 11, dto.UpdateReviewRequest{Content: "hijack"})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	err = svc.Delete(ctx, review.ID, 11)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	updated, err := svc.Update(ctx, review.ID, 10, dto.UpdateReviewRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.Delete(ctx, review.ID, 10))
	_, err = svc.Update(ctx, review.ID, 10, dto.UpdateReviewRequest{Content: "gone"})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestListReviewsNewestFirst(t *testing.T) {
	svc, store := newReviewFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, 10, dto.CreateReviewRequest{Content: "older"})
	require.NoError(t, err)
	store.reviews[first.ID].CreatedAt = time.Now().Add(-time.Hour)

	_, err = svc.Create(ctx, 1, 11, dto.CreateReviewRequest{Content: "newer"})
	require.NoError(t, err)

	reviews, total, err := svc.ListByCafe(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, reviews, 2)
	assert.Equal(t, "newer", reviews[0].Content)
	assert.Equal(t, "older", reviews[1].Content)
}

func TestLikeOncePerUser(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	resp, err := svc.Like(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(1), resp.LikeCount)

	_, err = svc.Like(ctx, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	resp, err = svc.Like(ctx, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.LikeCount)
}

func TestRelikeAfterUnlike(t *testing.T) {
	svc, store := newReviewFixture()
	ctx := context.Background()

	_, err := svc.Like(ctx, 1, 10)
	require.NoError(t, err)

	resp, err := svc.Unlike(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.LikeCount)

	_, err = svc.Unlike(ctx, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrLikeNotFound)

	// The old soft-deleted row stays; a fresh live one is allowed.
	resp, err = svc.Like(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.LikeCount)
	assert.Len(t, store.likes, 2)
}

func TestLikeStatus(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	_, err := svc.LikeStatus(ctx, 99, 10)
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)

	resp, err := svc.LikeStatus(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(0), resp.LikeCount)

	_, err = svc.Like(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.Like(ctx, 1, 11)
	require.NoError(t, err)

	resp, err = svc.LikeStatus(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(2), resp.LikeCount)

	// Another user's likes do not mark this one as liked.
	resp, err = svc.LikeStatus(ctx, 1, 12)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, int64(2), resp.LikeCount)
}

func TestLikeRequiresCafe(t *testing.T) {
	svc, _ := newReviewFixture()
	ctx := context.Background()

	_, err := svc.Like(ctx, 99, 10)
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)
	_, err = svc.Unlike(ctx, 99, 10)
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)
}

// The duplicate-key translation covers the race where two likes pass the
// advisory check together.
func TestLikeDuplicateKeyRace(t *testing.T) {
	svc, store := newReviewFixture()
	ctx := context.Background()

	// Simulate the row landing between the advisory check and the insert.
	require.NoError(t, store.CreateLike(ctx, &model.Like{CafeID: 1, UserID: 10}))
	err := store.CreateLike(ctx, &model.Like{CafeID: 1, UserID: 10})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = svc.Like(ctx, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)
}
