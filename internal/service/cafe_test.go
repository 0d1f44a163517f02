package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// fakeCafeStore is an in-memory CafeStore.
type fakeCafeStore struct {
	cafes  map[uint]*model.Cafe
	nextID uint
}

func newFakeCafeStore() *fakeCafeStore {
	return &fakeCafeStore{cafes: map[uint]*model.Cafe{}}
}

func (f *fakeCafeStore) Create(_ context.Context, cafe *model.Cafe) error {
	f.nextID++
	cafe.ID = f.nextID
	for i := range cafe.Menus {
		cafe.Menus[i].CafeID = cafe.ID
	}
	for i := range cafe.OperatingHours {
		cafe.OperatingHours[i].CafeID = cafe.ID
	}
	f.cafes[cafe.ID] = cafe
	return nil
}

func (f *fakeCafeStore) GetByID(_ context.Context, id uint) (*model.Cafe, error) {
	cafe, ok := f.cafes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cafe, nil
}

func (f *fakeCafeStore) GetAll(_ context.Context, limit, offset int, search string) ([]model.Cafe, int64, error) {
	matches := []model.Cafe{}
	for _, c := range f.cafes {
		if search == "" ||
			strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(c.Address), strings.ToLower(search)) {
			matches = append(matches, *c)
		}
	}
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

func (f *fakeCafeStore) Update(_ context.Context, id uint, updates map[string]any) error {
	cafe, ok := f.cafes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		cafe.Name = name
	}
	if address, ok := updates["address"].(string); ok {
		cafe.Address = address
	}
	if phone, ok := updates["phone_number"].(string); ok {
		cafe.Phone = phone
	}
	return nil
}

func (f *fakeCafeStore) ReplaceMenus(_ context.Context, cafeID uint, menus []model.Menu) error {
	cafe, ok := f.cafes[cafeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cafe.Menus = menus
	return nil
}

func (f *fakeCafeStore) ReplaceOperatingHours(_ context.Context, cafeID uint, hours []model.OperatingHour) error {
	cafe, ok := f.cafes[cafeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cafe.OperatingHours = hours
	return nil
}

func (f *fakeCafeStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.cafes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.cafes, id)
	return nil
}

func (f *fakeCafeStore) IncrementViews(_ context.Context, id uint) error {
	cafe, ok := f.cafes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cafe.Views++
	return nil
}

func newCafeFixture() (*CafeService, *fakeCafeStore, *fakeReviewStore) {
	cafes := newFakeCafeStore()
	reviews := newFakeReviewStore()
	return NewCafeService(cafes, reviews, zap.NewNop()), cafes, reviews
}

func createCafeRequest() dto.CreateCafeRequest {
	return dto.CreateCafeRequest{
		Name:        "Bean There",
		Address:     "12 Roast Street",
		Latitude:    37.5665,
		Longitude:   126.978,
		PhoneNumber: "02-123-4567",
		Images:      []string{"cafes/front.jpg", "cafes/inside.jpg"},
		Menus: []dto.MenuRequest{
			{Name: "Americano", Price: 4000},
			{Name: "Latte", Price: 4500},
		},
		OperatingHours: []dto.OperatingHourRequest{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "21:00"},
			{DayOfWeek: 0, Closed: true},
		},
	}
}

func TestCreateCafeWithAssociations(t *testing.T) {
	svc, store, _ := newCafeFixture()

	detail, err := svc.Create(context.Background(), createCafeRequest())
	require.NoError(t, err)

	assert.Equal(t, "Bean There", detail.Name)
	assert.Equal(t, []string{"cafes/front.jpg", "cafes/inside.jpg"}, detail.Images)
	require.Len(t, detail.Menus, 2)
	assert.Equal(t, int64(4000), detail.Menus[0].Price)
	require.Len(t, detail.OperatingHours, 2)
	assert.True(t, detail.OperatingHours[1].Closed)

	stored := store.cafes[detail.ID]
	require.NotNil(t, stored)
	assert.Equal(t, detail.ID, stored.Menus[0].CafeID)
}

func TestGetCafeIncrementsViews(t *testing.T) {
	svc, store, _ := newCafeFixture()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createCafeRequest())
	require.NoError(t, err)

	first, err := svc.Get(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.Get(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
	assert.Equal(t, int64(2), store.cafes[detail.ID].Views)
}

func TestGetCafeNotFound(t *testing.T) {
	svc, _, _ := newCafeFixture()
	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)
}

func TestCafeDetailCarriesLikeCount(t *testing.T) {
	svc, _, reviews := newCafeFixture()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createCafeRequest())
	require.NoError(t, err)

	require.NoError(t, reviews.CreateLike(ctx, &model.Like{CafeID: detail.ID, UserID: 10}))
	require.NoError(t, reviews.CreateLike(ctx, &model.Like{CafeID: detail.ID, UserID: 11}))

	got, err := svc.Get(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.LikeCount)
}

func TestListCafesSearch(t *testing.T) {
	svc, _, _ := newCafeFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, createCafeRequest())
	require.NoError(t, err)
	other := createCafeRequest()
	other.Name = "Mocha House"
	other.Address = "99 Espresso Lane"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	all, total, err := svc.List(ctx, 10, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	found, total, err := svc.List(ctx, 10, 0, "mocha")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Mocha House", found[0].Name)
}

func TestUpdateCafePartial(t *testing.T) {
	svc, store, _ := newCafeFixture()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createCafeRequest())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, detail.ID, dto.UpdateCafeRequest{
		Name:  "Bean There Again",
		Menus: []dto.MenuRequest{{Name: "Flat White", Price: 5000}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bean There Again", updated.Name)
	assert.Equal(t, "12 Roast Street", updated.Address, "unset fields stay")
	require.Len(t, updated.Menus, 1)
	assert.Equal(t, "Flat White", updated.Menus[0].Name)
	require.Len(t, store.cafes[detail.ID].OperatingHours, 2, "hours untouched")

	_, err = svc.Update(ctx, 99, dto.UpdateCafeRequest{Name: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)
}

func TestDeleteCafe(t *testing.T) {
	svc, store, _ := newCafeFixture()
	ctx := context.Background()

	detail, err := svc.Create(ctx, createCafeRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, detail.ID))
	assert.NotContains(t, store.cafes, detail.ID)

	err = svc.Delete(ctx, detail.ID)
	assert.ErrorIs(t, err, apperrors.ErrCafeNotFound)
}
