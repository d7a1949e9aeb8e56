package bookController

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/httperr"
	"github.com/ABDOURAHMAN-ILTIREH/book-shoop-web/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Book{}))
	return db
}

func TestAdjustStock_Decrements(t *testing.T) {
	db := setupTestDB(t)
	book := models.Book{Title: "Book", Author: "A", Price: 10, Stock: 5}
	require.NoError(t, db.Create(&book).Error)

	updated, err := AdjustStock(db, book.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Stock)
}

func TestAdjustStock_NeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	book := models.Book{Title: "Book", Author: "A", Price: 10, Stock: 2}
	require.NoError(t, db.Create(&book).Error)

	_, err := AdjustStock(db, book.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrInsufficientStock)

	var b models.Book
	require.NoError(t, db.First(&b, "id = ?", book.ID).Error)
	assert.Equal(t, 2, b.Stock)
}

func TestAdjustStock_NegativeQuantityRestocks(t *testing.T) {
	db := setupTestDB(t)
	book := models.Book{Title: "Book", Author: "A", Price: 10, Stock: 2}
	require.NoError(t, db.Create(&book).Error)

	updated, err := AdjustStock(db, book.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)
}

func TestAdjustStock_UnknownBook(t *testing.T) {
	db := setupTestDB(t)

	_, err := AdjustStock(db, "missing", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}
