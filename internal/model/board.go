package model

import "time"

type Board struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"not null"`
	Description string
	Background  string     `gorm:"not null;default:'Blue'"`
	IsArchived  bool       `gorm:"not null;default:false;index"`
	ArchivedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	Lists   []List      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Labels  []Label     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Members []UserBoard `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// Archive moves the board into the archived state. ArchivedAt only changes on
// the transition itself.
func (b *Board) Archive(at time.Time) {
	if b.IsArchived {
		return
	}
	b.IsArchived = true
	b.ArchivedAt = &at
}

// Restore makes the board active again. ArchivedAt keeps the last archive time.
func (b *Board) Restore() {
	b.IsArchived = false
}
