package bookController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

// GET /api/books/export-excel (admin)
func ExportBooksToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.Order("created_at DESC").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Books")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Title", "Author", "Price", "OriginalPrice", "Category",
			"Language", "Stock", "Rating", "TotalRatings", "Featured", "IsNew",
			"CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, b := range books {
			row := sheet.AddRow()
			row.AddCell().SetValue(b.ID)
			row.AddCell().SetValue(b.Title)
			row.AddCell().SetValue(b.Author)
			row.AddCell().SetValue(b.Price)
			if b.OriginalPrice != nil {
				row.AddCell().SetValue(*b.OriginalPrice)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(b.Category)
			row.AddCell().SetValue(b.Language)
			row.AddCell().SetValue(b.Stock)
			row.AddCell().SetValue(b.Rating)
			row.AddCell().SetValue(b.TotalRatings)
			row.AddCell().SetValue(b.Featured)
			row.AddCell().SetValue(b.IsNew)
			row.AddCell().SetValue(b.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=books.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
