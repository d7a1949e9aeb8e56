package bookController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice"`
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	Stock         int      `json:"stock" binding:"min=0"`
	Rating        float64  `json:"rating"`
	TotalRatings  int      `json:"totalRatings"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Featured      bool     `json:"featured"`
	IsNew         bool     `json:"isNew"`
}

// POST /api/books (admin)
func CreateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		book := models.Book{
			Title:         req.Title,
			Author:        req.Author,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Category:      req.Category,
			Language:      req.Language,
			Stock:         req.Stock,
			Rating:        req.Rating,
			TotalRatings:  req.TotalRatings,
			Description:   req.Description,
			Image:         req.Image,
			Featured:      req.Featured,
			IsNew:         req.IsNew,
		}

		if err := db.Create(&book).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
			return
		}
		c.JSON(http.StatusCreated, book)
	}
}
