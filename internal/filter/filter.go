// Package filter turns transaction list query parameters into a predicate.
// The same predicate is available in memory (Match, Apply) and as a GORM
// scope (Scope) so the database and the in-process view always agree.
package filter

import (
	"net/url"
	"strings"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/uuid"
)

// Query parameter names accepted on the transaction list endpoint.
const (
	ParamCategory   = "category"
	ParamType       = "type"
	ParamMinAmount  = "min_amount"
	ParamMaxAmount  = "max_amount"
	ParamDateAfter  = "date_after"
	ParamDateBefore = "date_before"
)

// TransactionParams holds the optional constraints on a transaction list.
// A nil field imposes no constraint; all non-nil fields must hold (AND).
// Amount and date bounds are inclusive.
type TransactionParams struct {
	Category   *string
	Type       *models.TransactionType
	MinAmount  *money.Amount
	MaxAmount  *money.Amount
	DateAfter  *models.Date
	DateBefore *models.Date
}

// Parse reads TransactionParams from query values. Every malformed parameter
// is reported in a single validation error.
func Parse(values url.Values) (TransactionParams, error) {
	var p TransactionParams
	fields := make(map[string]string)

	if v := get(values, ParamCategory); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			fields[ParamCategory] = "must be a valid category id"
		} else {
			p.Category = &id
		}
	}

	if v := get(values, ParamType); v != "" {
		t := models.TransactionType(v)
		if !t.Valid() {
			fields[ParamType] = "must be income or expense"
		} else {
			p.Type = &t
		}
	}

	p.MinAmount = parseAmount(values, ParamMinAmount, fields)
	p.MaxAmount = parseAmount(values, ParamMaxAmount, fields)
	p.DateAfter = parseDate(values, ParamDateAfter, fields)
	p.DateBefore = parseDate(values, ParamDateBefore, fields)

	if len(fields) > 0 {
		return TransactionParams{}, apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	return p, nil
}

func get(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func parseAmount(values url.Values, key string, fields map[string]string) *money.Amount {
	v := get(values, key)
	if v == "" {
		return nil
	}
	a, err := money.Parse(v)
	if err != nil {
		fields[key] = err.Error()
		return nil
	}
	return &a
}

func parseDate(values url.Values, key string, fields map[string]string) *models.Date {
	v := get(values, key)
	if v == "" {
		return nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		fields[key] = "must be a date in YYYY-MM-DD format"
		return nil
	}
	return &d
}

// IsEmpty reports whether no constraint is set.
func (p TransactionParams) IsEmpty() bool {
	return p.Category == nil && p.Type == nil &&
		p.MinAmount == nil && p.MaxAmount == nil &&
		p.DateAfter == nil && p.DateBefore == nil
}

// Match reports whether t satisfies every constraint in p.
func (p TransactionParams) Match(t models.Transaction) bool {
	if p.Category != nil && t.CategoryID != *p.Category {
		return false
	}
	if p.Type != nil && t.Type != *p.Type {
		return false
	}
	if p.MinAmount != nil && t.Amount.Cmp(*p.MinAmount) < 0 {
		return false
	}
	if p.MaxAmount != nil && t.Amount.Cmp(*p.MaxAmount) > 0 {
		return false
	}
	if p.DateAfter != nil && t.Date.Before(*p.DateAfter) {
		return false
	}
	if p.DateBefore != nil && t.Date.After(*p.DateBefore) {
		return false
	}
	return true
}

// Apply returns the transactions matching p, preserving their order.
func Apply(transactions []models.Transaction, p TransactionParams) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if p.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Scope returns a GORM scope applying p as SQL conditions on the
// transactions table.
func (p TransactionParams) Scope() func(db *gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if p.Category != nil {
			q = q.Where("transactions.category_id = ?", *p.Category)
		}
		if p.Type != nil {
			q = q.Where("transactions.type = ?", *p.Type)
		}
		if p.MinAmount != nil {
			q = q.Where("transactions.amount >= ?", *p.MinAmount)
		}
		if p.MaxAmount != nil {
			q = q.Where("transactions.amount <= ?", *p.MaxAmount)
		}
		if p.DateAfter != nil {
			q = q.Where("transactions.date >= ?", *p.DateAfter)
		}
		if p.DateBefore != nil {
			q = q.Where("transactions.date <= ?", *p.DateBefore)
		}
		return q
	}
}
