package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bookController "github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/controllers/book"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
)

// SetupBookRoutes registers /api/books. Reads are public; catalog mutation
// is admin-only behind one uniform gate.
func SetupBookRoutes(api *gin.RouterGroup, db *gorm.DB) {
	books := api.Group("/books")
	{
		books.GET("", bookController.GetAllBooks(db))
		books.GET("/paged", bookController.GetBooks(db))
		books.GET("/featured", bookController.GetFeaturedBooks(db))
		books.GET("/new", bookController.GetNewBooks(db))
		books.GET("/search", bookController.SearchBooks(db))
		books.GET("/category/:category", bookController.GetBooksByCategory(db))
		books.GET("/:id", bookController.GetBookByID(db))
		books.GET("/:id/stock", bookController.GetBookStock(db))
		books.GET("/:id/comments", bookController.GetBookComments(db))
	}

	admin := api.Group("/books")
	admin.Use(middleware.AuthRequired(db), middleware.AdminOnly())
	{
		admin.POST("", bookController.CreateBook(db))
		admin.PUT("/:id", bookController.UpdateBook(db))
		admin.DELETE("/:id", bookController.DeleteBook(db))
		admin.PUT("/:id/MultiStocks", bookController.UpdateBookStock(db))
		admin.POST("/uploads", bookController.UploadBookImage())
		admin.GET("/export-excel", bookController.ExportBooksToExcel(db))
	}
}
