package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"videogames-be/internal/cache"
	"videogames-be/internal/entities"
	"videogames-be/internal/mocks"
	"videogames-be/internal/models"
	"videogames-be/internal/projection"
	"videogames-be/internal/validation"
)

func newCategoryService(t *testing.T) (CategoryService, *mocks.CategoryRepository, cache.Cache) {
	t.Helper()
	repo := mocks.NewCategoryRepository()
	c := cache.NewMemoryCache()
	return NewCategoryService(repo, c, validation.New(), 0), repo, c
}

func TestCategoryService_ListServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCategoryService(t)
	_, err := svc.Create(ctx, payload(t, projection.CategoryWrite, `{"name":"Action"}`))
	require.NoError(t, err)

	page := models.Page{Number: 1, Limit: 10}
	first, err := svc.List(ctx, page)
	require.NoError(t, err)
	second, err := svc.List(ctx, page)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.ListCalls())
}

func TestCategoryService_MutationInvalidatesEveryPage(t *testing.T) {
	ctx := context.Background()
	svc, repo, c := newCategoryService(t)
	for _, name := range []string{"Action", "Adventure"} {
		_, err := svc.Create(ctx, payload(t, projection.CategoryWrite, fmt.Sprintf(`{"name":%q}`, name)))
		require.NoError(t, err)
	}

	_, err := svc.List(ctx, models.Page{Number: 1, Limit: 1})
	require.NoError(t, err)
	_, err = svc.List(ctx, models.Page{Number: 2, Limit: 1})
	require.NoError(t, err)
	_, err = c.Get(ctx, "categories_2_1")
	require.NoError(t, err)

	created, err := svc.Create(ctx, payload(t, projection.CategoryWrite, `{"name":"Simulation"}`))
	require.NoError(t, err)

	for _, key := range []string{"categories_1_1", "categories_2_1"} {
		_, err := c.Get(ctx, key)
		assert.ErrorIs(t, err, cache.ErrMiss, key)
	}

	all, err := svc.List(ctx, models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, created.ID, all[2].ID)
	assert.Equal(t, 3, repo.ListCalls())
}

func TestCategoryService_ListSecondPage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCategoryService(t)
	for i := 1; i <= 12; i++ {
		_, err := svc.Create(ctx, payload(t, projection.CategoryWrite, fmt.Sprintf(`{"name":"Category %d"}`, i)))
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, models.Page{Number: 2, Limit: 5})
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{6, 7, 8, 9, 10}, ids)
}

func TestCategoryService_CreateRejectsBlankName(t *testing.T) {
	svc, repo, _ := newCategoryService(t)

	_, err := svc.Create(context.Background(), payload(t, projection.CategoryWrite, `{"name":"   "}`))

	requireViolation(t, err, "name", "required")
	list, _ := repo.List(context.Background(), 10, 0)
	assert.Empty(t, list)
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCategoryService(t)
	created, err := svc.Create(ctx, payload(t, projection.CategoryWrite, `{"name":"Action"}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, payload(t, projection.CategoryWrite, `{"name":"Platform"}`))
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestCategoryService_DeleteReferencedIsConflict(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCategoryService(t)
	created, err := svc.Create(ctx, payload(t, projection.CategoryWrite, `{"name":"Action"}`))
	require.NoError(t, err)
	repo.InUse = func(int64) bool { return true }

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrConflict)
}

func TestCategoryService_InvalidationFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockCache(ctrl)
	mc.EXPECT().InvalidateByTag(gomock.Any(), "categoriesCache").Return(errors.New("connection refused"))

	svc := NewCategoryService(mocks.NewCategoryRepository(), mc, validation.New(), 0)
	_, err := svc.Create(context.Background(), payload(t, projection.CategoryWrite, `{"name":"Action"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "categoriesCache")
}

func TestCategoryService_UpdateDropsGamePages(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockCache(ctrl)
	repo := mocks.NewCategoryRepository()
	require.NoError(t, repo.Create(ctx, &entities.Category{Name: "Action"}))
	mc.EXPECT().InvalidateByTag(gomock.Any(), "categoriesCache", "videoGamesCache").Return(nil)

	svc := NewCategoryService(repo, mc, validation.New(), 0)
	_, err := svc.Update(ctx, 1, payload(t, projection.CategoryWrite, `{"name":"Platform"}`))
	require.NoError(t, err)
}

func TestCategoryService_CacheReadFailureFallsBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := mocks.NewMockCache(ctrl)
	mc.EXPECT().Get(gomock.Any(), "categories_1_10").Return("", errors.New("timeout"))
	mc.EXPECT().Set(gomock.Any(), "categories_1_10", gomock.Any(), DefaultListTTL, "categoriesCache").Return(nil)

	repo := mocks.NewCategoryRepository()
	svc := NewCategoryService(repo, mc, validation.New(), 0)

	list, err := svc.List(context.Background(), models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, repo.ListCalls())
}

func TestCategoryService_NilCacheAlwaysLoads(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository()
	svc := NewCategoryService(repo, nil, validation.New(), 0)

	_, err := svc.Create(ctx, payload(t, projection.CategoryWrite, `{"name":"Action"}`))
	require.NoError(t, err)
	for range 2 {
		_, err := svc.List(ctx, models.Page{Number: 1, Limit: 10})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.ListCalls())
}
