package api

import (
	"shop-service/internal/api/handlers"
	"shop-service/internal/api/middleware"
	"shop-service/internal/auth"
	"shop-service/internal/session"
	"shop-service/internal/store"

	"github.com/gin-gonic/gin"
)

// SetupRouter настраивает все маршруты сервера
func SetupRouter(guard auth.GuardInterface, products store.ProductStoreInterface, users store.UserStoreInterface, sessions *session.Store) *gin.Engine {
	router := gin.Default()

	productHandler := handlers.NewProductHandler(products)
	userHandler := handlers.NewUserHandler(users, sessions)

	// Публичные маршруты (без проверки токена)
	router.GET("/products", productHandler.ListProducts)
	router.GET("/products/:id", productHandler.GetProduct)
	router.GET("/users", userHandler.ListUsers)
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)

	// Маршруты, требующие действительного performer_token
	authorized := router.Group("", middleware.RequireToken(guard))
	{
		authorized.GET("/logout/:login", userHandler.Logout)
		authorized.GET("/check_token/:login", userHandler.CheckToken)
	}

	// Маршруты, требующие флага admin у владельца сессии
	admin := router.Group("", middleware.RequireAdmin(guard))
	{
		admin.POST("/add_product", productHandler.AddProduct)
		admin.POST("/remove_product/:target", productHandler.RemoveProduct)
		admin.POST("/remuser/:login", userHandler.RemoveUser)
	}

	return router
}
