package model

type Label struct {
	ID      uint   `gorm:"primaryKey"`
	BoardID uint   `gorm:"not null;index"`
	Title   string `gorm:"not null"`
	Color   string `gorm:"not null"`

	Cards []CardLabel `gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`
}
