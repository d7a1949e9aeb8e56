package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/controllers/user"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
)

// SetupUserRoutes registers /api/users. Profile endpoints belong to the
// session owner; account management is admin.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	users.Use(middleware.AuthRequired(db))
	{
		users.GET("/me", userControllers.Me())
		users.PUT("/me", userControllers.UpdateProfile(db))
	}

	admin := api.Group("/users")
	admin.Use(middleware.AuthRequired(db), middleware.AdminOnly())
	{
		admin.GET("", userControllers.GetAllUsers(db))
		admin.GET("/search", userControllers.SearchUsers(db))
		admin.GET("/role/:role", userControllers.GetUsersByRole(db))
		admin.GET("/:id", userControllers.GetUserByID(db))
		admin.GET("/:id/orders", userControllers.GetUserOrders(db))
		admin.GET("/:id/comments", userControllers.GetUserComments(db))
		admin.PUT("/:id", userControllers.UpdateUser(db))
		admin.DELETE("/:id", userControllers.DeleteUser(db))
	}
}
