package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"souvenir-shop-backend/internal/shared/middleware"
	"souvenir-shop-backend/pkg/container"
)

// SetupRouter wires every route group. Catalog and promotion reads use
// optional auth so anonymous visitors get ALL-audience prices; cart and
// orders require auth; the admin group additionally requires the admin
// role.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
	}

	catalog := v1.Group("")
	catalog.Use(middleware.OptionalAuthMiddleware(c.JWTManager))
	{
		catalog.GET("/products", c.CatalogHandler.ListProducts)
		catalog.GET("/products/:id", c.CatalogHandler.GetProduct)
		catalog.GET("/categories", c.CatalogHandler.ListCategories)
		catalog.GET("/promotions", c.PromotionHandler.ListActive)
	}

	cart := v1.Group("/cart")
	cart.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:id", c.CartHandler.UpdateItem)
		cart.DELETE("/items/:id", c.CartHandler.RemoveItem)
	}

	orders := v1.Group("/orders")
	orders.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		orders.POST("/checkout", c.OrderHandler.Checkout)
		orders.GET("", c.OrderHandler.ListOrders)
		orders.GET("/:id", c.OrderHandler.GetOrder)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/products", c.CatalogAdminHandler.CreateProduct)
		admin.PUT("/products/:id", c.CatalogAdminHandler.UpdateProduct)
		admin.DELETE("/products/:id", c.CatalogAdminHandler.DeleteProduct)

		admin.POST("/categories", c.CatalogAdminHandler.CreateCategory)
		admin.DELETE("/categories/:id", c.CatalogAdminHandler.DeleteCategory)

		admin.GET("/promotions", c.PromotionHandler.List)
		admin.POST("/promotions", c.PromotionHandler.Create)
		admin.GET("/promotions/:id", c.PromotionHandler.Get)
		admin.PUT("/promotions/:id", c.PromotionHandler.Update)
		admin.PATCH("/promotions/:id/status", c.PromotionHandler.UpdateStatus)
		admin.DELETE("/promotions/:id", c.PromotionHandler.Delete)
	}

	return router
}
