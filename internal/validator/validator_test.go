package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/models"
	"finledger/internal/money"
)

type transactionInput struct {
	Amount *money.Amount          `validate:"required,money"`
	Date   *models.Date           `validate:"required"`
	Type   models.TransactionType `validate:"required,transaction_type"`
	Name   string                 `validate:"omitempty,notblank"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func ptrAmount(s string) *money.Amount {
	a := money.MustParse(s)
	return &a
}

func ptrDate(d models.Date) *models.Date { return &d }

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Field()+":"+fe.Tag())
	}
	return out
}

func TestValidInput(t *testing.T) {
	in := transactionInput{
		Amount: ptrAmount("50.00"),
		Date:   ptrDate(models.NewDate(2024, 1, 5)),
		Type:   models.TransactionTypeExpense,
		Name:   "Groceries",
	}
	assert.NoError(t, newValidate().Struct(in))
}

func TestZeroAmountIsAllowed(t *testing.T) {
	in := transactionInput{Amount: ptrAmount("0"), Date: ptrDate(models.NewDate(2024, 1, 5)), Type: models.TransactionTypeIncome}
	assert.NoError(t, newValidate().Struct(in))
}

func TestMissingFields(t *testing.T) {
	fields := failedFields(t, newValidate().Struct(transactionInput{}))
	assert.ElementsMatch(t, []string{"Amount:required", "Date:required", "Type:required"}, fields)
}

func TestNegativeAmount(t *testing.T) {
	in := transactionInput{Amount: ptrAmount("-1.00"), Date: ptrDate(models.NewDate(2024, 1, 5)), Type: models.TransactionTypeIncome}
	assert.Equal(t, []string{"Amount:money"}, failedFields(t, newValidate().Struct(in)))
}

func TestUnknownTransactionType(t *testing.T) {
	in := transactionInput{Amount: ptrAmount("1"), Date: ptrDate(models.NewDate(2024, 1, 5)), Type: "transfer"}
	assert.Equal(t, []string{"Type:transaction_type"}, failedFields(t, newValidate().Struct(in)))
}

func TestBlankName(t *testing.T) {
	in := transactionInput{Amount: ptrAmount("1"), Date: ptrDate(models.NewDate(2024, 1, 5)), Type: "income", Name: "  \t"}
	assert.Equal(t, []string{"Name:notblank"}, failedFields(t, newValidate().Struct(in)))
}

func TestFieldNamesFollowJSONTags(t *testing.T) {
	type payload struct {
		CategoryID string `json:"category" validate:"required"`
	}
	assert.Equal(t, []string{"category:required"}, failedFields(t, newValidate().Struct(payload{})))
}
