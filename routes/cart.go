package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/controllers/cart"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
)

// SetupCartRoutes registers /api/cart. Everything requires a session.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired(db))
	{
		cart.POST("", cartControllers.AddCartItemHandler(db))
		cart.GET("/my", cartControllers.GetMyCartItemsHandler(db))
		cart.PUT("/:id", cartControllers.UpdateCartItemHandler(db))
		cart.DELETE("/:id", cartControllers.DeleteCartItemHandler(db))
		cart.DELETE("/:id/clear", cartControllers.ClearCartHandler(db))
	}

	admin := api.Group("/cart")
	admin.Use(middleware.AuthRequired(db), middleware.AdminOnly())
	{
		admin.GET("", cartControllers.GetAllCartItemsHandler(db))
	}
}
