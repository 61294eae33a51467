// Package analytics aggregates a user's transactions into income and expense
// totals and per-category sums.
package analytics

import (
	"sort"

	"finledger/internal/models"
	"finledger/internal/money"
)

// CategoryTotal is the sum of all transactions in one category, regardless
// of their type.
type CategoryTotal struct {
	CategoryName string       `json:"category__name"`
	Total        money.Amount `json:"total"`
}

// Summary is the analytics view of a transaction set.
type Summary struct {
	TotalIncome     money.Amount    `json:"total_income"`
	TotalExpense    money.Amount    `json:"total_expense"`
	CategorySummary []CategoryTotal `json:"category_summary"`
}

// Summarize computes totals over transactions. Transactions are expected to
// have their Category preloaded; the category name is the grouping key.
// CategorySummary is sorted by category name and is never nil.
func Summarize(transactions []models.Transaction) Summary {
	s := Summary{
		TotalIncome:     money.Zero,
		TotalExpense:    money.Zero,
		CategorySummary: []CategoryTotal{},
	}

	byName := make(map[string]money.Amount)
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case models.TransactionTypeExpense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}

		name := t.CategoryName()
		total, ok := byName[name]
		if !ok {
			total = money.Zero
		}
		byName[name] = total.Add(t.Amount)
	}

	for name, total := range byName {
		s.CategorySummary = append(s.CategorySummary, CategoryTotal{CategoryName: name, Total: total})
	}
	sort.Slice(s.CategorySummary, func(i, j int) bool {
		return s.CategorySummary[i].CategoryName < s.CategorySummary[j].CategoryName
	})

	return s
}

// Total returns the sum of every transaction amount.
func Total(transactions []models.Transaction) money.Amount {
	sum := money.Zero
	for _, t := range transactions {
		sum = sum.Add(t.Amount)
	}
	return sum
}
