package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	Title         string   `gorm:"not null;index" json:"title"`
	Author        string   `gorm:"not null;index" json:"author"`
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Category      string   `gorm:"index" json:"category"`
	Language      string   `json:"language"`
	Stock         int      `gorm:"not null;default:0" json:"stock"`
	Rating        float64  `json:"rating"`
	TotalRatings  int      `json:"totalRatings"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Featured      bool     `gorm:"default:false;index" json:"featured"`
	IsNew         bool     `gorm:"default:false;index" json:"isNew"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
