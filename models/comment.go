package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	BookID    string    `gorm:"not null;index" json:"bookId"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (cm *Comment) BeforeCreate(tx *gorm.DB) error {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	return nil
}
