package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/controllers/order"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
)

// SetupOrderRoutes registers /api/orders. Checkout and order history need a
// session; everything else is admin.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(db))
	{
		orders.POST("", orderControllers.CreateOrderHandler(db))
		orders.GET("/my", orderControllers.GetMyOrdersHandler(db))
	}

	admin := api.Group("/orders")
	admin.Use(middleware.AuthRequired(db), middleware.AdminOnly())
	{
		admin.GET("", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/stats", orderControllers.GetOrderStatsHandler(db))
		admin.GET("/status/:status", orderControllers.GetOrdersByStatusHandler(db))
		admin.GET("/date-range", orderControllers.GetOrdersByDateRangeHandler(db))
		admin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/ws", orderControllers.OrderWebSocketHandler)
		admin.GET("/:id", orderControllers.GetOrderByIDHandler(db))
		admin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
	}
}
