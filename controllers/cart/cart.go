package cartControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/httperr"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

type AddCartItemRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// -------- Core Logic --------

// AddToCart finds-or-creates the (user, book) row. A repeat add increments
// the quantity, and the stock check always covers the summed quantity so the
// cart can never hold more than the shelf does.
func AddToCart(db *gorm.DB, userID string, req AddCartItemRequest) (*models.CartItem, error) {
	var book models.Book
	if err := db.First(&book, "id = ?", req.BookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: book %s", httperr.ErrNotFound, req.BookID)
		}
		return nil, err
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND book_id = ?", userID, req.BookID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if book.Stock < req.Quantity {
			return nil, fmt.Errorf("%w for %q (available: %d)",
				httperr.ErrInsufficientStock, book.Title, book.Stock)
		}
		item = models.CartItem{
			UserID:   userID,
			BookID:   req.BookID,
			Quantity: req.Quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	newQuantity := item.Quantity + req.Quantity
	if book.Stock < newQuantity {
		return nil, fmt.Errorf("%w for %q (requested total: %d, available: %d)",
			httperr.ErrInsufficientStock, book.Title, newQuantity, book.Stock)
	}
	item.Quantity = newQuantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity directly; a quantity of zero or less
// removes the row. Returns nil when the row was deleted.
func UpdateCartItem(db *gorm.DB, itemID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item %s", httperr.ErrNotFound, itemID)
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := db.Delete(&item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// -------- Handlers --------

// POST /api/cart
func AddCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, user.ID, req)
		if err != nil {
			httperr.JSON(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// GET /api/cart/my
func GetMyCartItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var items []models.CartItem
		if err := db.
			Where("user_id = ?", user.ID).
			Preload("Book").
			Order("created_at DESC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /api/cart (admin)
func GetAllCartItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.CartItem
		if err := db.Preload("Book").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /api/cart/:id
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
			return
		}

		if !ownsCartItem(db, c, user, c.Param("id")) {
			return
		}

		item, err := UpdateCartItem(db, c.Param("id"), *req.Quantity)
		if err != nil {
			httperr.JSON(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/:id
func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		if !ownsCartItem(db, c, user, c.Param("id")) {
			return
		}

		res := db.Delete(&models.CartItem{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart/:id/clear — :id is the user ID here; used by the client
// right after checkout.
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		targetID := c.Param("id")
		if targetID != user.ID && !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		if err := db.Where("user_id = ?", targetID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// ownsCartItem rejects access to someone else's cart row. Writes the error
// response itself and reports whether the handler may continue.
func ownsCartItem(db *gorm.DB, c *gin.Context, user *models.User, itemID string) bool {
	if user.IsAdmin() {
		return true
	}
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		}
		return false
	}
	if item.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return false
	}
	return true
}
