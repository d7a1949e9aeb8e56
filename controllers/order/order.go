package orderControllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/httperr"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

// -------- Request Structs --------

type ShippingAddressInput struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

type OrderItemInput struct {
	BookID string `json:"bookId" binding:"required"`
	// Title and Price are accepted for wire compatibility but ignored; the
	// snapshots are always taken from the catalog inside the transaction.
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName    string               `json:"customerName"`
	Status          string               `json:"status"`
	Total           float64              `json:"total"` // client value, ignored; see CreateOrder
	ShippingAddress ShippingAddressInput `json:"shippingAddress" binding:"required"`
	Items           []OrderItemInput     `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Core Logic --------

// CreateOrder builds the whole order aggregate in one transaction: stock is
// validated AND decremented here, the shipping address and order rows are
// created, and the items are bulk-inserted with title/price snapshots taken
// from the catalog. Any failure rolls everything back, so a rejected line
// item leaves no order, no address and no stock change behind.
//
// The total is recomputed from the snapshots; the client-supplied value is
// never trusted.
func CreateOrder(db *gorm.DB, userID string, req CreateOrderRequest) (*models.Order, error) {
	status := models.OrderStatusPending
	if req.Status != "" {
		mapped, ok := models.ValidOrderStatus(req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown order status %q", httperr.ErrValidation, req.Status)
		}
		status = mapped
	}

	var created models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var orderItems []models.OrderItem

		for _, item := range req.Items {
			var book models.Book
			if err := tx.First(&book, "id = ?", item.BookID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: book %s", httperr.ErrNotFound, item.BookID)
				}
				return err
			}

			if book.Stock < item.Quantity {
				return fmt.Errorf("%w for %q (available: %d)",
					httperr.ErrInsufficientStock, book.Title, book.Stock)
			}

			// Guarded decrement: the WHERE clause re-checks stock at write
			// time so two concurrent checkouts cannot both take the last
			// copies.
			res := tx.Model(&models.Book{}).
				Where("id = ? AND stock >= ?", book.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %q (available: %d)",
					httperr.ErrInsufficientStock, book.Title, book.Stock)
			}

			total += book.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				BookID:   book.ID,
				Title:    book.Title,
				Price:    book.Price,
				Quantity: item.Quantity,
			})
		}

		shipping := models.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Phone:   req.ShippingAddress.Phone,
		}
		if err := tx.Create(&shipping).Error; err != nil {
			return err
		}

		order := models.Order{
			UserID:            userID,
			CustomerName:      req.CustomerName,
			Total:             total,
			Status:            status,
			ShippingAddressID: shipping.ID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		return tx.Preload("Items").Preload("ShippingAddress").
			First(&created, "id = ?", order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteOrder removes the order aggregate in one transaction: each book's
// stock is restored by the item quantity, the items and the order go away,
// and shipping addresses no longer referenced by any order are cleaned up.
func DeleteOrder(db *gorm.DB, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: order %s", httperr.ErrNotFound, orderID)
			}
			return err
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Book{}).
				Where("id = ?", item.BookID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, "id = ?", order.ID).Error; err != nil {
			return err
		}

		// Orphan cleanup: no order references these addresses anymore.
		return tx.Exec(
			"DELETE FROM shipping_addresses WHERE id NOT IN (SELECT shipping_address_id FROM orders)",
		).Error
	})
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.CustomerName == "" {
			req.CustomerName = user.Name
		}

		order, err := CreateOrder(db, user.ID, req)
		if err != nil {
			httperr.JSON(c, err)
			return
		}

		BroadcastOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders/my
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", user.ID).
			Preload("Items").
			Preload("ShippingAddress").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"orders": orders}})
	}
}

// GET /api/orders?page=1&limit=20 (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 {
			limit = 20
		}

		var total int64
		if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("ShippingAddress").
			Preload("User").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    orders,
			"meta": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + int64(limit) - 1) / int64(limit),
			},
		})
	}
}

// GET /api/orders/:id (admin)
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.
			Preload("Items").
			Preload("ShippingAddress").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/orders/status/:status (admin)
func GetOrdersByStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, ok := models.ValidOrderStatus(c.Param("status"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("status = ?", status).
			Preload("Items").
			Preload("ShippingAddress").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/date-range?start=YYYY-MM-DD&end=YYYY-MM-DD (admin)
func GetOrdersByDateRangeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		startStr := c.Query("start")
		endStr := c.Query("end")
		if startStr == "" || endStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start and end parameters are required"})
			return
		}

		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
			return
		}
		// Make end inclusive of the whole day.
		end = end.Add(24*time.Hour - time.Nanosecond)

		var orders []models.Order
		if err := db.
			Where("created_at BETWEEN ? AND ?", start, end).
			Preload("Items").
			Preload("ShippingAddress").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/stats (admin)
func GetOrderStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type statusCount struct {
			Status models.OrderStatus `json:"status"`
			Count  int64              `json:"count"`
		}

		counts := make([]statusCount, 0, len(models.AllOrderStatuses))
		for _, status := range models.AllOrderStatuses {
			var n int64
			if err := db.Model(&models.Order{}).Where("status = ?", status).Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order stats"})
				return
			}
			counts = append(counts, statusCount{Status: status, Count: n})
		}
		c.JSON(http.StatusOK, counts)
	}
}

// PUT /api/orders/:id/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		status, ok := models.ValidOrderStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", c.Param("id")).Update("status", status)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Preload("ShippingAddress").
			First(&order, "id = ?", c.Param("id")).Error; err == nil {
			BroadcastOrder(&order)
			c.JSON(http.StatusOK, order)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

// DELETE /api/orders/:id (admin)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteOrder(db, c.Param("id")); err != nil {
			httperr.JSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted and orphan shipping addresses cleaned"})
	}
}
