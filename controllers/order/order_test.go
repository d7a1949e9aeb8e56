package orderControllers

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
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ShippingAddress{},
		&models.Comment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Name: "Awa", Email: "awa@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title string, price float64, stock int) models.Book {
	t.Helper()
	book := models.Book{Title: title, Author: "Author", Price: price, Stock: stock}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func shippingInput() ShippingAddressInput {
	return ShippingAddressInput{
		Street:  "12 Rue de la Paix",
		City:    "Djibouti",
		State:   "DJ",
		ZipCode: "1000",
		Phone:   "77000000",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	bookA := seedBook(t, db, "Le Petit Prince", 10.5, 5)
	bookB := seedBook(t, db, "L'Etranger", 20, 3)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		CustomerName:    "Awa",
		Total:           999, // bogus client total, must be ignored
		ShippingAddress: shippingInput(),
		Items: []OrderItemInput{
			{BookID: bookA.ID, Quantity: 3},
			{BookID: bookB.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 3*10.5+20, order.Total)
	assert.Equal(t, user.ID, order.UserID)
	require.Len(t, order.Items, 2)

	// Snapshots come from the catalog, not the request.
	byBook := map[string]models.OrderItem{}
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		byBook[item.BookID] = item
	}
	assert.Equal(t, "Le Petit Prince", byBook[bookA.ID].Title)
	assert.Equal(t, 10.5, byBook[bookA.ID].Price)
	assert.Equal(t, "L'Etranger", byBook[bookB.ID].Title)

	// Address created and referenced.
	assert.Equal(t, order.ShippingAddress.ID, order.ShippingAddressID)
	assert.Equal(t, "Djibouti", order.ShippingAddress.City)

	// Stock decremented inside the same transaction.
	var a, b models.Book
	require.NoError(t, db.First(&a, "id = ?", bookA.ID).Error)
	require.NoError(t, db.First(&b, "id = ?", bookB.ID).Error)
	assert.Equal(t, 2, a.Stock)
	assert.Equal(t, 2, b.Stock)

	// Exactly one of each aggregate row.
	var orders, items, addresses int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.ShippingAddress{}).Count(&addresses)
	assert.Equal(t, int64(1), orders)
	assert.Equal(t, int64(2), items)
	assert.Equal(t, int64(1), addresses)
}

func TestCreateOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	bookA := seedBook(t, db, "Book A", 10, 5)
	bookB := seedBook(t, db, "Book B", 15, 1)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items: []OrderItemInput{
			{BookID: bookA.ID, Quantity: 2},
			{BookID: bookB.ID, Quantity: 4}, // only 1 on the shelf
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrInsufficientStock)

	// The first line's decrement must have been rolled back too.
	var a models.Book
	require.NoError(t, db.First(&a, "id = ?", bookA.ID).Error)
	assert.Equal(t, 5, a.Stock)

	var orders, items, addresses int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.ShippingAddress{}).Count(&addresses)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Zero(t, addresses)
}

func TestCreateOrder_UnknownBook(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: "missing", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestCreateOrder_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, "Book", 10, 5)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		Status:          "CANCELLED",
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrValidation)
}

func TestCreateOrder_SecondCheckoutCannotOversell(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, "Book", 10, 5)

	_, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	// Stock is now 2; another checkout for 3 must fail at creation time
	// since validation and decrement share the transaction.
	_, err = CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrInsufficientStock)

	var b models.Book
	require.NoError(t, db.First(&b, "id = ?", book.ID).Error)
	assert.Equal(t, 2, b.Stock)
}

func TestDeleteOrder_RestoresStockAndCleansAddress(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, "Book", 10, 5)

	order, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, DeleteOrder(db, order.ID))

	var b models.Book
	require.NoError(t, db.First(&b, "id = ?", book.ID).Error)
	assert.Equal(t, 5, b.Stock)

	var orders, items, addresses int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	db.Model(&models.ShippingAddress{}).Count(&addresses)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Zero(t, addresses)
}

func TestDeleteOrder_KeepsAddressesStillReferenced(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	book := seedBook(t, db, "Book", 10, 10)

	first, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := CreateOrder(db, user.ID, CreateOrderRequest{
		ShippingAddress: shippingInput(),
		Items:           []OrderItemInput{{BookID: book.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, DeleteOrder(db, first.ID))

	// The second order's address survives the orphan sweep.
	var addr models.ShippingAddress
	assert.NoError(t, db.First(&addr, "id = ?", second.ShippingAddressID).Error)

	var addresses int64
	db.Model(&models.ShippingAddress{}).Count(&addresses)
	assert.Equal(t, int64(1), addresses)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	db := setupTestDB(t)

	err := DeleteOrder(db, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}
