package model

// CardLabel tags a card with one of its board's labels.
type CardLabel struct {
	CardID  uint `gorm:"primaryKey;autoIncrement:false"`
	LabelID uint `gorm:"primaryKey;autoIncrement:false;index"`
}
