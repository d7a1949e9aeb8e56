package bookController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

// Pointer fields so absent keys leave the stored value alone.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Category      *string  `json:"category"`
	Language      *string  `json:"language"`
	Stock         *int     `json:"stock"`
	Rating        *float64 `json:"rating"`
	TotalRatings  *int     `json:"totalRatings"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image"`
	Featured      *bool    `json:"featured"`
	IsNew         *bool    `json:"isNew"`
}

// PUT /api/books/:id (admin)
func UpdateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var book models.Book
		if err := db.First(&book, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}

		var req UpdateBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Author != nil {
			updates["author"] = *req.Author
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.OriginalPrice != nil {
			updates["original_price"] = *req.OriginalPrice
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Language != nil {
			updates["language"] = *req.Language
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
				return
			}
			updates["stock"] = *req.Stock
		}
		if req.Rating != nil {
			updates["rating"] = *req.Rating
		}
		if req.TotalRatings != nil {
			updates["total_ratings"] = *req.TotalRatings
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Image != nil {
			updates["image"] = *req.Image
		}
		if req.Featured != nil {
			updates["featured"] = *req.Featured
		}
		if req.IsNew != nil {
			updates["is_new"] = *req.IsNew
		}

		if len(updates) > 0 {
			if err := db.Model(&book).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
				return
			}
		}

		c.JSON(http.StatusOK, book)
	}
}
