package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	commentControllers "github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/controllers/comment"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/middleware"
)

// SetupCommentRoutes registers /api/comments. Reads are public, posting
// needs a session, moderation is admin.
func SetupCommentRoutes(api *gin.RouterGroup, db *gorm.DB) {
	comments := api.Group("/comments")
	{
		comments.GET("", commentControllers.GetAllComments(db))
		comments.GET("/book/:bookId", commentControllers.GetCommentsByBook(db))
		comments.GET("/:id", commentControllers.GetCommentByID(db))
	}

	authed := api.Group("/comments")
	authed.Use(middleware.AuthRequired(db))
	{
		authed.POST("", commentControllers.CreateComment(db))
	}

	admin := api.Group("/comments")
	admin.Use(middleware.AuthRequired(db), middleware.AdminOnly())
	{
		admin.PUT("/:id", commentControllers.UpdateComment(db))
		admin.DELETE("/:id", commentControllers.DeleteComment(db))
	}
}
