package models

// Category groups a user's transactions under a label.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user"`
	Name   string `gorm:"size:255;not null" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
