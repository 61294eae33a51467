package models

import "finledger/internal/money"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category"`
	Amount     money.Amount    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Date       Date            `gorm:"type:date;not null;index" json:"date"`
	Type       TransactionType `gorm:"size:10;not null" json:"type"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// CategoryName returns the name of the preloaded category, or "" when the
// category was not loaded.
func (t Transaction) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}
