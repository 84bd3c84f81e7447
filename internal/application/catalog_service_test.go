package application

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-commerce-api/internal/domain/entity"
	"github.com/oksasatya/go-commerce-api/internal/domain/repository"
)

type fakeCategoryRepo struct {
	byID      map[string]*entity.Category
	listCalls int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[string]*entity.Category{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, ex := range f.byID {
		if ex.Slug == c.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	c.ID = uuid.NewString()
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	f.listCalls++
	out := make([]entity.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, slug string) error {
	for id, c := range f.byID {
		if c.Slug == slug {
			delete(f.byID, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newCatalogFixture(t *testing.T) (*CatalogService, *fakeCategoryRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	categories := newFakeCategoryRepo()
	svc := NewCatalogService(categories, newFakeProductRepo(), rdb, nil, nil, "", nil, "")
	return svc, categories
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Home Garden")
	require.NoError(t, err)
	assert.Equal(t, "Home Garden", c.Name)
	assert.Equal(t, "home-garden", c.Slug)

	_, err = svc.CreateCategory(ctx, "Home Garden")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = svc.CreateCategory(ctx, "   ")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)
}

func TestListCategoriesCached(t *testing.T) {
	svc, categories := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	first, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	storeHits := categories.listCalls

	// Second read is served from Redis without touching the store.
	second, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, storeHits, categories.listCalls)
}

func TestCategoryWriteInvalidatesCache(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	_, err = svc.ListCategories(ctx)
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "Music")
	require.NoError(t, err)

	out, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)

	c, err := svc.UpdateCategory(ctx, "books", "Printed Books")
	require.NoError(t, err)
	assert.Equal(t, "printed-books", c.Slug)

	_, err = svc.UpdateCategory(ctx, "books", "Anything")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	require.NoError(t, svc.DeleteCategory(ctx, "printed-books"))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "printed-books"), ErrCategoryNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{Name: "  "})
	assert.ErrorIs(t, err, ErrProductNameRequired)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Lamp", PriceCents: -1})
	assert.ErrorIs(t, err, ErrProductInvalid)

	p, err := svc.CreateProduct(ctx, ProductInput{Name: "Desk Lamp", PriceCents: 2999, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "desk-lamp", p.Slug)
	assert.Equal(t, int64(2999), p.PriceCents)
}

func TestSearchProductsWithoutES(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	// No ES configured: search degrades to an empty result, not an error.
	out, err := svc.SearchProducts(context.Background(), "lamp", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}
