package bookController

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/httperr"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

type UpdateStockRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// -------- Core Logic --------

// AdjustStock subtracts quantity from the book's stock (a negative quantity
// restocks). The guarded UPDATE re-checks the level at write time, so the
// ledger can never go below zero even under concurrent calls.
//
// Order creation no longer calls this: checkout validates and decrements
// inside its own transaction. This remains the manual adjustment path.
func AdjustStock(db *gorm.DB, bookID string, quantity int) (*models.Book, error) {
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: book %s", httperr.ErrNotFound, bookID)
		}
		return nil, err
	}

	res := db.Model(&models.Book{}).
		Where("id = ? AND stock >= ?", bookID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w for %q (available: %d)",
			httperr.ErrInsufficientStock, book.Title, book.Stock)
	}

	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// -------- Handlers --------

// PUT /api/books/:id/MultiStocks (admin)
func UpdateBookStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}

		book, err := AdjustStock(db, c.Param("id"), *req.Quantity)
		if err != nil {
			httperr.JSON(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": book})
	}
}
