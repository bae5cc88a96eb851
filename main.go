package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopmall/internal/config"
	"shopmall/internal/database"
	"shopmall/internal/handlers"
	"shopmall/internal/middleware"
	"shopmall/internal/payment"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("⚠️ cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	gateway := payment.NewClient(
		config.AppEnv.PaymentAPIURL,
		config.AppEnv.PaymentAPIKey,
		config.AppEnv.PaymentAPISecret,
	)

	r := gin.Default()

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	})

	api.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
	api.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	api.POST("/users", handlers.CreateUser(db))

	users := api.Group("/users")
	users.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		users.GET("", handlers.GetUsers(db))
		users.GET("/:id", handlers.GetUserByID(db))
		users.PUT("/:id", handlers.UpdateUser(db))
		users.DELETE("/:id", handlers.DeleteUser(db))
	}

	api.GET("/products", handlers.GetProducts(db))
	api.GET("/products/code/:code", handlers.GetProductByCode(db))

	productAdmin := api.Group("/products")
	productAdmin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		productAdmin.POST("", handlers.CreateProduct(db))
		productAdmin.GET("/generate-code", handlers.GenerateProductCode(db))
		productAdmin.PUT("/:id", handlers.UpdateProduct(db))
		productAdmin.DELETE("/:id", handlers.DeleteProduct(db))
	}

	api.GET("/products/:id", handlers.GetProductByID(db))

	cart := api.Group("/cart")
	cart.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		cart.GET("", handlers.GetCart(db))
		cart.POST("/items", handlers.AddCartItem(db))
		cart.PUT("/items/:productId", handlers.UpdateCartItem(db))
		cart.DELETE("/items/:productId", handlers.RemoveCartItem(db))
		cart.DELETE("", handlers.ClearCart(db))
	}

	orders := api.Group("/orders")
	orders.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		orders.POST("", handlers.CreateOrder(db, gateway))
		orders.GET("/my", handlers.GetMyOrders(db))
		orders.GET("/number/:orderNumber", handlers.GetOrderByNumber(db))
		orders.GET("/:id", handlers.GetOrderByID(db))
		orders.PUT("/:id/cancel", handlers.CancelOrder(db))
	}

	orderAdmin := api.Group("/orders")
	orderAdmin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		orderAdmin.GET("", handlers.GetAllOrders(db))
		orderAdmin.PUT("/:id", handlers.UpdateOrder(db))
		orderAdmin.PUT("/:id/status", handlers.UpdateOrderStatus(db))
		orderAdmin.DELETE("/:id", handlers.DeleteOrder(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
