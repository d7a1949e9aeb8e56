package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one (user, book) line in a cart. The unique index keeps a
// single row per pair; repeat adds increment Quantity instead.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"userId"`
	BookID    string    `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"bookId"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
