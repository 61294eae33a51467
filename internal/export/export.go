// Package export renders transactions as downloadable tables.
package export

import (
	"finledger/internal/models"
)

// Row is one exported transaction in column order.
type Row struct {
	Date     string
	Category string
	Amount   string
	Type     string
}

// Fields returns the row as a slice in column order.
func (r Row) Fields() []string {
	return []string{r.Date, r.Category, r.Amount, r.Type}
}

// Header holds the column labels written as the first row.
type Header [4]string

var (
	// HeaderRU is the header used by the original product.
	HeaderRU = Header{"Дата", "Категория", "Сумма", "Тип"}
	// HeaderEN is the English header.
	HeaderEN = Header{"Date", "Category", "Amount", "Type"}
)

// HeaderFor returns the header for a locale, defaulting to HeaderRU.
func HeaderFor(locale string) Header {
	if locale == "en" {
		return HeaderEN
	}
	return HeaderRU
}

// RowsFromTransactions converts transactions to rows, keeping their order.
// Transactions must have their Category preloaded.
func RowsFromTransactions(transactions []models.Transaction) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, Row{
			Date:     t.Date.String(),
			Category: t.CategoryName(),
			Amount:   t.Amount.String(),
			Type:     string(t.Type),
		})
	}
	return rows
}
