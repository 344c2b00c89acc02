package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"souvenir-shop-backend/internal/domains/catalog/model"
	"souvenir-shop-backend/internal/domains/catalog/repository"
	promotionService "souvenir-shop-backend/internal/domains/promotion/service"
	"souvenir-shop-backend/pkg/cache"
	"souvenir-shop-backend/pkg/logger"
)

const (
	productCacheTTL  = 5 * time.Minute
	categoryCacheTTL = 30 * time.Minute
)

// catalogService serves catalog reads with promotional display prices
// and the admin write surface. Raw products are cached; display prices
// are computed per request because they depend on the caller's audience.
type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	resolver   promotionService.ResolverInterface
	calculator *promotionService.PriceCalculator
	cache      cache.Cache
}

func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	resolver promotionService.ResolverInterface,
	cache cache.Cache,
) ServiceInterface {
	return &catalogService{
		products:   products,
		categories: categories,
		resolver:   resolver,
		calculator: promotionService.NewPriceCalculator(),
		cache:      cache,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, req *model.ListProductsRequest, audienceTag string) ([]*model.ProductResponse, int, error) {
	req.Normalize()

	type cachedList struct {
		Products []*model.Product `json:"products"`
		Total    int              `json:"total"`
	}

	cacheKey := model.ProductListCacheKey(req.Search, req.CategoryID, req.Page, req.Limit)
	var cached cachedList
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("product list cache read failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	products := cached.Products
	total := cached.Total
	if !found {
		products, total, err = s.products.List(ctx, req)
		if err != nil {
			return nil, 0, err
		}
		if err := s.cache.Set(ctx, cacheKey, cachedList{Products: products, Total: total}, productCacheTTL); err != nil {
			logger.Warn("product list cache write failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
		}
	}

	responses, err := s.withDisplayPrices(ctx, products, audienceTag)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID, audienceTag string) (*model.ProductResponse, error) {
	cacheKey := model.ProductCacheKey(id)
	var product model.Product
	found, err := s.cache.Get(ctx, cacheKey, &product)
	if err != nil {
		logger.Warn("product cache read failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	p := &product
	if !found {
		p, err = s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cacheKey, p, productCacheTTL); err != nil {
			logger.Warn("product cache write failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
		}
	}

	if !p.IsActive {
		return nil, model.ErrProductNotFound
	}

	responses, err := s.withDisplayPrices(ctx, []*model.Product{p}, audienceTag)
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*model.CategoryResponse, error) {
	var cached []*model.Category
	found, err := s.cache.Get(ctx, model.CategoriesCacheKey, &cached)
	if err != nil {
		logger.Warn("category cache read failed", map[string]interface{}{"error": err.Error()})
	}

	categories := cached
	if !found {
		categories, err = s.categories.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, model.CategoriesCacheKey, categories, categoryCacheTTL); err != nil {
			logger.Warn("category cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	responses := make([]*model.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = c.ToResponse()
	}
	return responses, nil
}

// withDisplayPrices resolves the caller's promotions once and folds them
// onto every product in the batch.
func (s *catalogService) withDisplayPrices(ctx context.Context, products []*model.Product, audienceTag string) ([]*model.ProductResponse, error) {
	promos, err := s.resolver.ActivePromotions(ctx, audienceTag, time.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve promotions for display prices: %w", err)
	}

	responses := make([]*model.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = &model.ProductResponse{
			ID:           p.ID,
			CategoryID:   p.CategoryID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			DisplayPrice: s.calculator.DisplayPrice(p, promos),
			Stock:        p.Stock,
			IsActive:     p.IsActive,
			CreatedAt:    p.CreatedAt,
		}
	}
	return responses, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

func (s *catalogService) invalidateCatalogCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "catalog:*"); err != nil {
		logger.Warn("catalog cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
