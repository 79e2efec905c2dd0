package repository

import (
	"taskboard/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate creates or widens the tables for every entity. Production schemas
// are managed outside the service; this exists for local runs and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.UserBoard{},
		&model.List{},
		&model.Card{},
		&model.Label{},
		&model.CardLabel{},
		&model.UserCard{},
		&model.Comment{},
	)
}
