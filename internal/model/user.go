package model

import "time"

type User struct {
	ID                    uint   `gorm:"primaryKey"`
	Email                 string `gorm:"uniqueIndex;not null"`
	Username              string `gorm:"not null"`
	PasswordHash          string `gorm:"not null"`
	Theme                 string `gorm:"not null;default:'System'"`
	RefreshToken          *string `gorm:"uniqueIndex"`
	RefreshTokenExpiresAt *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`

	Boards      []UserBoard `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Assignments []UserCard  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments    []Comment   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// RefreshValid reports whether token matches the stored refresh token and has
// not expired at now.
func (u *User) RefreshValid(token string, now time.Time) bool {
	if u.RefreshToken == nil || u.RefreshTokenExpiresAt == nil {
		return false
	}
	return *u.RefreshToken == token && now.Before(*u.RefreshTokenExpiresAt)
}
