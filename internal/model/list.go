package model

import "time"

type List struct {
	ID        uint      `gorm:"primaryKey"`
	BoardID   uint      `gorm:"not null;index"`
	Title     string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`

	Cards []Card `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
