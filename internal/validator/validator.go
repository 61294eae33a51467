// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finledger/internal/models"
	"finledger/internal/money"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure installs the custom types and tags on v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(amountValue, money.Amount{})
	v.RegisterCustomTypeFunc(dateValue, models.Date{})
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

// jsonFieldName reports fields by their JSON or form name so error details
// match the request.
func jsonFieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return ""
}

// amountValue exposes an Amount to tags as its 2dp text.
func amountValue(field reflect.Value) interface{} {
	if a, ok := field.Interface().(money.Amount); ok {
		return a.String()
	}
	return nil
}

// dateValue exposes a Date to tags as YYYY-MM-DD, or "" for the zero date.
func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(models.Date); ok {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

// validateMoney accepts non-negative amounts that fit numeric(10,2).
func validateMoney(fl validator.FieldLevel) bool {
	a, err := money.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return !a.IsNegative()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
