package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// Order is the aggregate header. Items and the shipping address are created
// with it in one transaction and deleted with it.
type Order struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	UserID            string          `gorm:"not null;index" json:"userId"`
	User              User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomerName      string          `json:"customerName"`
	Total             float64         `gorm:"not null" json:"total"`
	Status            OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING';index" json:"status"`
	ShippingAddressID string          `gorm:"not null" json:"shippingAddressId"`
	ShippingAddress   ShippingAddress `gorm:"foreignKey:ShippingAddressID" json:"shippingAddress"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// OrderItem snapshots title and price at order time so later catalog edits
// never alter historical orders.
type OrderItem struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	OrderID  string  `gorm:"not null;index" json:"orderId"`
	BookID   string  `gorm:"not null" json:"bookId"`
	Title    string  `gorm:"not null" json:"title"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
}

type ShippingAddress struct {
	ID      string `gorm:"primaryKey" json:"id"`
	Street  string `gorm:"not null" json:"street"`
	City    string `gorm:"not null" json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

func (sa *ShippingAddress) BeforeCreate(tx *gorm.DB) error {
	if sa.ID == "" {
		sa.ID = uuid.NewString()
	}
	return nil
}

// ValidOrderStatus maps a raw string to an OrderStatus.
func ValidOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// AllOrderStatuses is used by the admin stats endpoint.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}
