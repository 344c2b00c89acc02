package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souvenir-shop-backend/internal/domains/cart/model"
	catalogModel "souvenir-shop-backend/internal/domains/catalog/model"
	promotionModel "souvenir-shop-backend/internal/domains/promotion/model"
)

type fakeCartRepo struct {
	cart  *model.Cart
	lines []*model.CartLine
	items map[uuid.UUID]int // productID -> quantity
}

func newFakeCartRepo(userID uuid.UUID) *fakeCartRepo {
	return &fakeCartRepo{
		cart:  &model.Cart{ID: uuid.New(), UserID: userID},
		items: map[uuid.UUID]int{},
	}
}

func (f *fakeCartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartRepo) GetLines(ctx context.Context, cartID uuid.UUID) ([]*model.CartLine, error) {
	return f.lines, nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	f.items[productID] += quantity
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error {
	return nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return nil
}

func (f *fakeCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	f.lines = nil
	f.items = map[uuid.UUID]int{}
	return nil
}

func (f *fakeCartRepo) ClearItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	return f.ClearItems(ctx, cartID)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalogModel.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalogModel.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalogModel.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(ctx context.Context, req *catalogModel.ListProductsRequest) ([]*catalogModel.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *catalogModel.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *catalogModel.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error                  { return nil }

type fakeResolver struct {
	promos []*promotionModel.Promotion
}

func (f *fakeResolver) ActivePromotions(ctx context.Context, audienceTag string, now time.Time) ([]*promotionModel.Promotion, error) {
	return f.promos, nil
}

func TestGetCart_RepricesLines(t *testing.T) {
	userID := uuid.New()
	repo := newFakeCartRepo(userID)
	repo.lines = []*model.CartLine{
		{
			ItemID:    uuid.New(),
			ProductID: uuid.New(),
			Name:      "Campus Mug",
			Price:     decimal.NewFromInt(100),
			Quantity:  2,
			IsActive:  true,
		},
	}

	resolver := &fakeResolver{promos: []*promotionModel.Promotion{{
		ID:         uuid.New(),
		Type:       promotionModel.TypePercentage,
		Value:      decimal.NewFromInt(10),
		TargetType: promotionModel.TargetCart,
		Audience:   promotionModel.AudienceAll,
		IsActive:   true,
	}}}

	svc := NewCartService(repo, &fakeProductRepo{}, resolver)

	cart, err := svc.GetCart(context.Background(), userID, "NONE")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "100.00", item.Price.StringFixed(2))
	assert.Equal(t, "90.00", item.DisplayPrice.StringFixed(2))
	assert.Equal(t, "180.00", item.LineTotal.StringFixed(2))
	assert.Equal(t, "180.00", cart.Subtotal.StringFixed(2))
}

func TestGetCart_EmptyCart(t *testing.T) {
	userID := uuid.New()
	svc := NewCartService(newFakeCartRepo(userID), &fakeProductRepo{}, &fakeResolver{})

	cart, err := svc.GetCart(context.Background(), userID, "NONE")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}

func TestAddItem_StockAndAvailabilityChecks(t *testing.T) {
	userID := uuid.New()
	active := &catalogModel.Product{
		ID:       uuid.New(),
		Name:     "Pennant",
		Price:    decimal.NewFromInt(20),
		Stock:    3,
		IsActive: true,
	}
	inactive := &catalogModel.Product{
		ID:       uuid.New(),
		Name:     "Retired Mug",
		Price:    decimal.NewFromInt(10),
		Stock:    5,
		IsActive: false,
	}

	products := &fakeProductRepo{products: map[uuid.UUID]*catalogModel.Product{
		active.ID:   active,
		inactive.ID: inactive,
	}}
	repo := newFakeCartRepo(userID)
	svc := NewCartService(repo, products, &fakeResolver{})

	t.Run("unknown product", func(t *testing.T) {
		err := svc.AddItem(context.Background(), userID, &model.AddItemRequest{ProductID: uuid.New(), Quantity: 1})
		assert.ErrorIs(t, err, catalogModel.ErrProductNotFound)
	})

	t.Run("inactive product", func(t *testing.T) {
		err := svc.AddItem(context.Background(), userID, &model.AddItemRequest{ProductID: inactive.ID, Quantity: 1})
		assert.ErrorIs(t, err, model.ErrProductUnavailable)
	})

	t.Run("quantity above stock", func(t *testing.T) {
		err := svc.AddItem(context.Background(), userID, &model.AddItemRequest{ProductID: active.ID, Quantity: 5})
		assert.ErrorIs(t, err, model.ErrInsufficientStock)
	})

	t.Run("happy path", func(t *testing.T) {
		err := svc.AddItem(context.Background(), userID, &model.AddItemRequest{ProductID: active.ID, Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, repo.items[active.ID])
	})
}
