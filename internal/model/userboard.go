package model

// UserBoard is the membership edge between a user and a board. Its existence
// is what grants access to the board and everything beneath it.
type UserBoard struct {
	UserID  uint   `gorm:"primaryKey;autoIncrement:false"`
	BoardID uint   `gorm:"primaryKey;autoIncrement:false;index"`
	Role    string `gorm:"not null;default:'Member'"`
}

// Membership roles. The role is stored with the edge but access checks do not
// distinguish between them.
const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)
