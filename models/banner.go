package models

import (
	"time"

	"gorm.io/gorm"
)

type Banner struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	ImageURL  string         `json:"image_url" gorm:"not null"`
	Link      string         `json:"link"` // optional click-through target
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
