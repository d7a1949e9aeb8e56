package bookController

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

// DELETE /api/books/:id (admin)
// Dependent cart rows, order items and comments go first so the delete never
// trips a foreign key; the image file is unlinked after the commit.
func DeleteBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var book models.Book
		if err := db.First(&book, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book"})
			}
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("book_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("book_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Book{}, "id = ?", id).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
			return
		}

		if book.Image != "" {
			imagePath := filepath.Join(uploadDir(), filepath.Base(book.Image))
			if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
				log.Printf("⚠️ Failed to delete image file %s: %v", imagePath, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
	}
}
