package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souvenir-shop-backend/internal/domains/catalog/model"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, req *model.ListProductsRequest) ([]*model.Product, int, error) {
	var out []*model.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	var out []*model.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

// fakeResolver serves different promotions per audience tag.
type fakeResolver struct {
	byAudience map[string][]*promotionModel.Promotion
}

func (f *fakeResolver) ActivePromotions(ctx context.Context, audienceTag string, now time.Time) ([]*promotionModel.Promotion, error) {
	return f.byAudience[audienceTag], nil
}

// missCache never holds anything; reads go straight to the repository.
type missCache struct{}

func (missCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (missCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (missCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (missCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (missCache) Ping(ctx context.Context) error                          { return nil }

func cartPercent(value float64, audience string) *promotionModel.Promotion {
	return &promotionModel.Promotion{
		ID:         uuid.New(),
		Type:       promotionModel.TypePercentage,
		Value:      decimal.NewFromFloat(value),
		TargetType: promotionModel.TargetCart,
		Audience:   audience,
		IsActive:   true,
	}
}

func TestGetProduct_DisplayPriceDependsOnAudience(t *testing.T) {
	product := &model.Product{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Campus Mug",
		Price:      decimal.NewFromInt(100),
		Stock:      5,
		IsActive:   true,
	}

	resolver := &fakeResolver{byAudience: map[string][]*promotionModel.Promotion{
		"NONE":    {cartPercent(10, promotionModel.AudienceAll)},
		"STUDENT": {cartPercent(10, promotionModel.AudienceAll), cartPercent(20, "STUDENT")},
	}}

	svc := NewCatalogService(
		&fakeProductRepo{products: map[uuid.UUID]*model.Product{product.ID: product}},
		&fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{}},
		resolver,
		missCache{},
	)

	anon, err := svc.GetProduct(context.Background(), product.ID, "NONE")
	require.NoError(t, err)
	assert.Equal(t, "90.00", anon.DisplayPrice.StringFixed(2))
	assert.Equal(t, "100.00", anon.Price.StringFixed(2))

	student, err := svc.GetProduct(context.Background(), product.ID, "STUDENT")
	require.NoError(t, err)
	assert.Equal(t, "72.00", student.DisplayPrice.StringFixed(2))
}

func TestGetProduct_InactiveHidden(t *testing.T) {
	product := &model.Product{
		ID:       uuid.New(),
		Name:     "Retired Pennant",
		Price:    decimal.NewFromInt(15),
		IsActive: false,
	}

	svc := NewCatalogService(
		&fakeProductRepo{products: map[uuid.UUID]*model.Product{product.ID: product}},
		&fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{}},
		&fakeResolver{byAudience: map[string][]*promotionModel.Promotion{}},
		missCache{},
	)

	_, err := svc.GetProduct(context.Background(), product.ID, "NONE")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestListProducts_NoPromotionsKeepsBasePrice(t *testing.T) {
	product := &model.Product{
		ID:       uuid.New(),
		Name:     "Notebook",
		Price:    decimal.NewFromFloat(12.50),
		IsActive: true,
	}

	svc := NewCatalogService(
		&fakeProductRepo{products: map[uuid.UUID]*model.Product{product.ID: product}},
		&fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{}},
		&fakeResolver{byAudience: map[string][]*promotionModel.Promotion{}},
		missCache{},
	)

	products, total, err := svc.ListProducts(context.Background(), &model.ListProductsRequest{}, "NONE")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(products[0].DisplayPrice))
}

func TestCreateProduct_UnknownCategoryRejected(t *testing.T) {
	svc := NewCatalogService(
		&fakeProductRepo{products: map[uuid.UUID]*model.Product{}},
		&fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{}},
		&fakeResolver{byAudience: map[string][]*promotionModel.Promotion{}},
		missCache{},
	)

	_, err := svc.CreateProduct(context.Background(), &model.CreateProductRequest{
		CategoryID: uuid.New(),
		Name:       "Campus Scarf",
		Price:      25,
		Stock:      3,
		IsActive:   true,
	})
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}
