package model

import "time"

type Card struct {
	ID          uint   `gorm:"primaryKey"`
	ListID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Priority    string    `gorm:"not null;default:'None'"`
	IsCompleted bool      `gorm:"not null;default:false"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	Comments  []Comment   `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Labels    []CardLabel `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Assignees []UserCard  `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
}
