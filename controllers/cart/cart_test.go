package cartControllers

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.CartItem{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, stock int) (models.User, models.Book) {
	t.Helper()
	user := models.User{Name: "Awa", Email: "awa@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	book := models.Book{Title: "Le Petit Prince", Author: "Saint-Exupery", Price: 10, Stock: stock}
	require.NoError(t, db.Create(&book).Error)
	return user, book
}

func TestAddToCart_RepeatAddMergesIntoOneRow(t *testing.T) {
	db := setupTestDB(t)
	user, book := seed(t, db, 10)

	first, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)
	second, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddToCart_ChecksSummedQuantityAgainstStock(t *testing.T) {
	db := setupTestDB(t)
	user, book := seed(t, db, 3)

	_, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrInsufficientStock)

	// Quantity unchanged by the rejected add.
	var item models.CartItem
	require.NoError(t, db.First(&item, "user_id = ? AND book_id = ?", user.ID, book.ID).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCart_RejectsMoreThanStockOnFirstAdd(t *testing.T) {
	db := setupTestDB(t)
	user, book := seed(t, db, 1)

	_, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrInsufficientStock)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestAddToCart_UnknownBook(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seed(t, db, 5)

	_, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: "missing", Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestUpdateCartItem_SetsQuantity(t *testing.T) {
	db := setupTestDB(t)
	user, book := seed(t, db, 10)

	item, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := UpdateCartItem(db, item.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7, updated.Quantity)
}

func TestUpdateCartItem_ZeroQuantityDeletesRow(t *testing.T) {
	db := setupTestDB(t)
	user, book := seed(t, db, 10)

	item, err := AddToCart(db, user.ID, AddCartItemRequest{BookID: book.ID, Quantity: 2})
	require.NoError(t, err)

	updated, err := UpdateCartItem(db, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, updated)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateCartItem(db, "missing", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}
