package filter

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/money"
)

const (
	groceriesID = "0190f2a4-1b2c-7d3e-8f40-000000000001"
	salaryID    = "0190f2a4-1b2c-7d3e-8f40-000000000002"
)

func tx(id, categoryID string, amount string, date models.Date, txType models.TransactionType) models.Transaction {
	return models.Transaction{
		Base:       models.Base{ID: id},
		CategoryID: categoryID,
		Amount:     money.MustParse(amount),
		Date:       date,
		Type:       txType,
	}
}

func sample() []models.Transaction {
	return []models.Transaction{
		tx("t1", groceriesID, "50.00", models.NewDate(2024, time.January, 5), models.TransactionTypeExpense),
		tx("t2", salaryID, "2000.00", models.NewDate(2024, time.January, 10), models.TransactionTypeIncome),
		tx("t3", groceriesID, "100.00", models.NewDate(2024, time.February, 1), models.TransactionTypeExpense),
		tx("t4", salaryID, "99.99", models.NewDate(2024, time.February, 15), models.TransactionTypeIncome),
	}
}

func ids(transactions []models.Transaction) []string {
	out := make([]string, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.ID)
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("empty_values_impose_no_constraint", func(t *testing.T) {
		p, err := Parse(url.Values{})
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("blank_values_are_ignored", func(t *testing.T) {
		p, err := Parse(url.Values{"type": {""}, "min_amount": {"  "}})
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("all_parameters", func(t *testing.T) {
		p, err := Parse(url.Values{
			"category":    {groceriesID},
			"type":        {"expense"},
			"min_amount":  {"10"},
			"max_amount":  {"100.5"},
			"date_after":  {"2024-01-01"},
			"date_before": {"2024-01-31"},
		})
		require.NoError(t, err)

		require.NotNil(t, p.Category)
		assert.Equal(t, groceriesID, *p.Category)
		require.NotNil(t, p.Type)
		assert.Equal(t, models.TransactionTypeExpense, *p.Type)
		require.NotNil(t, p.MinAmount)
		assert.Equal(t, "10.00", p.MinAmount.String())
		require.NotNil(t, p.MaxAmount)
		assert.Equal(t, "100.50", p.MaxAmount.String())
		require.NotNil(t, p.DateAfter)
		assert.Equal(t, "2024-01-01", p.DateAfter.String())
		require.NotNil(t, p.DateBefore)
		assert.Equal(t, "2024-01-31", p.DateBefore.String())
	})

	t.Run("malformed_values_report_every_field", func(t *testing.T) {
		_, err := Parse(url.Values{
			"category":    {"42"},
			"type":        {"transfer"},
			"min_amount":  {"abc"},
			"max_amount":  {"1.234"},
			"date_after":  {"05/01/2024"},
			"date_before": {"2024-13-01"},
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Len(t, appErr.Fields, 6)
		for _, key := range []string{ParamCategory, ParamType, ParamMinAmount, ParamMaxAmount, ParamDateAfter, ParamDateBefore} {
			assert.Contains(t, appErr.Fields, key)
		}
	})
}

func TestMatch(t *testing.T) {
	expense := models.TransactionTypeExpense
	minAmount := money.MustParse("100")
	maxAmount := money.MustParse("100")
	after := models.NewDate(2024, time.January, 10)
	before := models.NewDate(2024, time.January, 10)
	category := salaryID

	tests := []struct {
		name   string
		params TransactionParams
		want   []string
	}{
		{name: "no_constraints", params: TransactionParams{}, want: []string{"t1", "t2", "t3", "t4"}},
		{name: "type", params: TransactionParams{Type: &expense}, want: []string{"t1", "t3"}},
		{name: "category", params: TransactionParams{Category: &category}, want: []string{"t2", "t4"}},
		{name: "min_amount_inclusive", params: TransactionParams{MinAmount: &minAmount}, want: []string{"t2", "t3"}},
		{name: "max_amount_inclusive", params: TransactionParams{MaxAmount: &maxAmount}, want: []string{"t1", "t3", "t4"}},
		{name: "date_after_inclusive", params: TransactionParams{DateAfter: &after}, want: []string{"t2", "t3", "t4"}},
		{name: "date_before_inclusive", params: TransactionParams{DateBefore: &before}, want: []string{"t1", "t2"}},
		{name: "and_semantics", params: TransactionParams{Type: &expense, MinAmount: &minAmount}, want: []string{"t3"}},
		{name: "inverted_range_is_empty", params: TransactionParams{DateAfter: &after, DateBefore: ptrDate(models.NewDate(2024, time.January, 1))}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.params)))
		})
	}
}

func ptrDate(d models.Date) *models.Date { return &d }

func TestApplyCommutativeAndIdempotent(t *testing.T) {
	a, err := Parse(url.Values{"type": {"income"}, "min_amount": {"100"}})
	require.NoError(t, err)
	b, err := Parse(url.Values{"min_amount": {"100"}, "type": {"income"}})
	require.NoError(t, err)

	first := Apply(sample(), a)
	assert.Equal(t, ids(first), ids(Apply(sample(), b)))
	assert.Equal(t, []string{"t2"}, ids(first))

	// Re-applying to its own result changes nothing.
	assert.Equal(t, ids(first), ids(Apply(first, a)))

	// Applying the two single-parameter filters in either order gives the same set.
	income := models.TransactionTypeIncome
	minAmount := money.MustParse("100")
	typeOnly := TransactionParams{Type: &income}
	minOnly := TransactionParams{MinAmount: &minAmount}
	assert.Equal(t,
		ids(Apply(Apply(sample(), typeOnly), minOnly)),
		ids(Apply(Apply(sample(), minOnly), typeOnly)),
	)
}

func TestScenarioMinAmount(t *testing.T) {
	p, err := Parse(url.Values{"min_amount": {"100"}})
	require.NoError(t, err)

	user := sample()[:2]
	assert.Equal(t, []string{"t2"}, ids(Apply(user, p)))
}
