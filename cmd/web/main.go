package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/EduardKrecmer/pizzeria/internal/catalog"
	"github.com/EduardKrecmer/pizzeria/internal/database"
	"github.com/EduardKrecmer/pizzeria/internal/handlers"
	"github.com/EduardKrecmer/pizzeria/internal/services"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	dataDir := os.Getenv("PIZZERIA_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	cat, err := catalog.Load(dataDir)
	if err != nil {
		log.Fatalf("Katalóg sa nepodarilo načítať: %v", err)
	}

	cartStore, err := database.NewCartStore(filepath.Join(dataDir, "carts.json"))
	if err != nil {
		log.Fatalf("Úložisko košíkov sa nepodarilo otvoriť: %v", err)
	}

	orderStore, err := database.NewOrderStore(filepath.Join(dataDir, "orders.db"))
	if err != nil {
		log.Fatalf("Databázu objednávok sa nepodarilo otvoriť: %v", err)
	}
	defer orderStore.Close()

	cartService := services.NewCartService(cartStore)
	emailService := services.NewEmailService()
	checkoutService := services.NewCheckoutService(cartService, orderStore, emailService)

	h := handlers.NewHandler(cat, cartService, checkoutService, cartStore, orderStore)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.GET("/health", h.Health)

	// Verejné API obchodu
	api := r.Group("/api")
	{
		api.GET("/pizzas", h.GetPizzas)
		api.GET("/pizzas/:id", h.GetPizza)
		api.GET("/extras", h.GetExtras)
		api.GET("/extras/categories", h.GetExtraCategories)
		api.GET("/sizes", h.GetSizes)
		api.GET("/localities", h.GetLocalities)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddCartItem)
		api.PATCH("/cart/items/:index", h.UpdateCartItem)
		api.DELETE("/cart/items/:index", h.RemoveCartItem)
		api.DELETE("/cart", h.ClearCart)
		api.PUT("/cart/customer", h.SetCustomerInfo)

		api.GET("/customer", h.GetSavedCustomer)
		api.PUT("/customer", h.SaveCustomer)
		api.DELETE("/customer", h.ForgetCustomer)

		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/cancel", h.CancelOrder)
	}

	// Administrácia (prihlásenie nechránené, zvyšok za middleware)
	r.POST("/admin/login", h.AdminLogin)
	r.GET("/admin/logout", h.AdminLogout)

	admin := r.Group("/admin")
	admin.Use(h.AdminAuthMiddleware())
	{
		admin.GET("/orders", h.AdminGetOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PUT("/orders/:id", h.AdminUpdateOrderStatus)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	log.Printf("🍕 Pizzeria Janíček server štartuje...")
	log.Printf("🌐 HTTP server beží na porte %s", port)
	log.Printf("📱 Prístup: http://localhost:%s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("HTTP server sa nepodarilo spustiť: %v", err)
	}
}
