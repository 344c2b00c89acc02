package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"souvenir-shop-backend/internal/domains/cart/model"
	"souvenir-shop-backend/internal/domains/cart/repository"
	catalogModel "souvenir-shop-backend/internal/domains/catalog/model"
	catalogRepository "souvenir-shop-backend/internal/domains/catalog/repository"
	promotionService "souvenir-shop-backend/internal/domains/promotion/service"
)

// cartService manages the user's cart. Prices are never stored on cart
// lines; every read reprices against the current catalog and the
// caller's visible promotions.
type cartService struct {
	carts      repository.CartRepository
	products   catalogRepository.ProductRepository
	resolver   promotionService.ResolverInterface
	calculator *promotionService.PriceCalculator
}

func NewCartService(
	carts repository.CartRepository,
	products catalogRepository.ProductRepository,
	resolver promotionService.ResolverInterface,
) ServiceInterface {
	return &cartService{
		carts:      carts,
		products:   products,
		resolver:   resolver,
		calculator: promotionService.NewPriceCalculator(),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID, audienceTag string) (*model.CartResponse, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	promos, err := s.resolver.ActivePromotions(ctx, audienceTag, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve promotions for cart: %w", err)
	}

	items := make([]model.CartItemResponse, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		product := &catalogModel.Product{
			ID:         line.ProductID,
			CategoryID: line.CategoryID,
			Price:      line.Price,
		}
		displayPrice := s.calculator.DisplayPrice(product, promos)
		lineTotal := displayPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

		items = append(items, model.CartItemResponse{
			ItemID:       line.ItemID,
			ProductID:    line.ProductID,
			Name:         line.Name,
			Price:        line.Price,
			DisplayPrice: displayPrice,
			Quantity:     line.Quantity,
			LineTotal:    lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return &model.CartResponse{
		ID:       cart.ID,
		Items:    items,
		Subtotal: subtotal,
	}, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *model.AddItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return model.ErrProductUnavailable
	}
	if product.Stock < req.Quantity {
		return model.ErrInsufficientStock
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.carts.AddItem(ctx, cart.ID, req.ProductID, req.Quantity)
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, req *model.UpdateItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.carts.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.carts.DeleteItem(ctx, cart.ID, itemID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.carts.ClearItems(ctx, cart.ID)
}
