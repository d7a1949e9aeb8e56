package bookController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

// GET /api/books
func GetAllBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		var books []models.Book
		if err := db.Order("created_at DESC").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}
		c.JSON(http.StatusOK, books)
	}
}

// GET /api/books/paged?page=&limit=&title=&author=&category=&minPrice=&maxPrice=&search=
func GetBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 {
			limit = 20
		}

		query := db.Model(&models.Book{})
		if title := c.Query("title"); title != "" {
			query = query.Where("title LIKE ?", "%"+title+"%")
		}
		if author := c.Query("author"); author != "" {
			query = query.Where("author LIKE ?", "%"+author+"%")
		}
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if minPrice := c.Query("minPrice"); minPrice != "" {
			if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
				query = query.Where("price >= ?", v)
			}
		}
		if maxPrice := c.Query("maxPrice"); maxPrice != "" {
			if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				query = query.Where("price <= ?", v)
			}
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("title LIKE ? OR author LIKE ?", "%"+search+"%", "%"+search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		var books []models.Book
		if err := query.
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    books,
			"meta": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + int64(limit) - 1) / int64(limit),
			},
		})
	}
}

// GET /api/books/:id
func GetBookByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var book models.Book
		if err := db.First(&book, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book"})
			}
			return
		}
		c.JSON(http.StatusOK, book)
	}
}

// GET /api/books/featured
func GetFeaturedBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.Where("featured = ?", true).Order("created_at DESC").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured books"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"books": books}})
	}
}

// GET /api/books/new
func GetNewBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.Where("is_new = ?", true).Order("created_at DESC").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch new books"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"books": books}})
	}
}

// GET /api/books/search?q=
func SearchBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
			return
		}

		var books []models.Book
		pattern := "%" + q + "%"
		if err := db.
			Where("title LIKE ? OR author LIKE ? OR category LIKE ?", pattern, pattern, pattern).
			Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search books"})
			return
		}
		c.JSON(http.StatusOK, books)
	}
}

// GET /api/books/category/:category
func GetBooksByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.
			Where("category = ?", c.Param("category")).
			Order("created_at DESC").
			Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}
		c.JSON(http.StatusOK, books)
	}
}

// GET /api/books/:id/stock
func GetBookStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var book models.Book
		if err := db.Select("id", "stock").First(&book, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"stock": book.Stock})
	}
}

// GET /api/books/:id/comments
func GetBookComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comments []models.Comment
		if err := db.
			Where("book_id = ?", c.Param("id")).
			Order("created_at DESC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"comments": comments}})
	}
}
