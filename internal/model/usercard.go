package model

// UserCard assigns a user to a card.
type UserCard struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`
	CardID uint `gorm:"primaryKey;autoIncrement:false;index"`
}
