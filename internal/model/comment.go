package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	CardID    uint      `gorm:"not null;index"`
	AuthorID  uint      `gorm:"not null;index"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}
