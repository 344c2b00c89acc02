package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"souvenir-shop-backend/internal/config"
	infraCache "souvenir-shop-backend/internal/infrastructure/cache"
	"souvenir-shop-backend/internal/infrastructure/database"
	"souvenir-shop-backend/pkg/cache"
	"souvenir-shop-backend/pkg/jwt"

	cartHandler "souvenir-shop-backend/internal/domains/cart/handler"
	cartRepo "souvenir-shop-backend/internal/domains/cart/repository"
	cartService "souvenir-shop-backend/internal/domains/cart/service"
	catalogHandler "souvenir-shop-backend/internal/domains/catalog/handler"
	catalogRepo "souvenir-shop-backend/internal/domains/catalog/repository"
	catalogService "souvenir-shop-backend/internal/domains/catalog/service"
	orderHandler "souvenir-shop-backend/internal/domains/order/handler"
	orderRepo "souvenir-shop-backend/internal/domains/order/repository"
	orderService "souvenir-shop-backend/internal/domains/order/service"
	promotionHandler "souvenir-shop-backend/internal/domains/promotion/handler"
	promotionRepo "souvenir-shop-backend/internal/domains/promotion/repository"
	promotionService "souvenir-shop-backend/internal/domains/promotion/service"
	userHandler "souvenir-shop-backend/internal/domains/user/handler"
	userRepo "souvenir-shop-backend/internal/domains/user/repository"
	userService "souvenir-shop-backend/internal/domains/user/service"
)

// Container holds every application dependency. It is the root of the
// dependency graph: config first, then infrastructure, repositories,
// services and handlers, in that order.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo      userRepo.UserRepository
	ProductRepo   catalogRepo.ProductRepository
	CategoryRepo  catalogRepo.CategoryRepository
	PromotionRepo promotionRepo.PromotionRepository
	CartRepo      cartRepo.CartRepository
	OrderRepo     orderRepo.OrderRepository

	UserService      userService.ServiceInterface
	CatalogService   catalogService.ServiceInterface
	PromotionService promotionService.ServiceInterface
	Resolver         promotionService.ResolverInterface
	CartService      cartService.ServiceInterface
	OrderService     orderService.ServiceInterface

	UserHandler         *userHandler.Handler
	CatalogHandler      *catalogHandler.Handler
	CatalogAdminHandler *catalogHandler.AdminHandler
	PromotionHandler    *promotionHandler.Handler
	CartHandler         *cartHandler.Handler
	OrderHandler        *orderHandler.Handler
}

// NewContainer builds and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// 2. Infrastructure
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// 3. Repositories
	c.UserRepo = userRepo.NewPostgresUserRepository(c.DB.Pool)
	c.ProductRepo = catalogRepo.NewPostgresProductRepository(c.DB.Pool)
	c.CategoryRepo = catalogRepo.NewPostgresCategoryRepository(c.DB.Pool)
	c.PromotionRepo = promotionRepo.NewPostgresRepository(c.DB.Pool)
	c.CartRepo = cartRepo.NewPostgresCartRepository(c.DB.Pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(c.DB.Pool)

	// 4. Services
	c.Resolver = promotionService.NewResolver(c.PromotionRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.PromotionService = promotionService.NewPromotionService(c.PromotionRepo)
	c.CatalogService = catalogService.NewCatalogService(c.ProductRepo, c.CategoryRepo, c.Resolver, c.Cache)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductRepo, c.Resolver)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.CartRepo, c.PromotionRepo)

	// 5. Handlers
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.CatalogAdminHandler = catalogHandler.NewAdminHandler(c.CatalogService)
	c.PromotionHandler = promotionHandler.NewHandler(c.PromotionService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if redisCache, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := redisCache.Close(); err != nil {
			log.Printf("[CONTAINER] Redis close failed: %v", err)
		}
	}
}
