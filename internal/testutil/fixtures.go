package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"finledger/internal/models"
	"finledger/internal/money"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("%d.%s", nextID(), strings.ToLower(gofakeit.Email()))
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category. An empty name gets a unique generated one.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	if name == "" {
		name = fmt.Sprintf("%s %d", gofakeit.ProductCategory(), nextID())
	}
	category := &models.Category{
		UserID: userID,
		Name:   name,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given amount (decimal text) and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, categoryID, amount string, date models.Date, txType models.TransactionType) *models.Transaction {
	t.Helper()

	value, err := money.Parse(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}
	tx := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     value,
		Date:       date,
		Type:       txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// RandomAmount returns a fake positive amount in 2dp text form.
func RandomAmount(faker *gofakeit.Faker) string {
	return money.MustParse(fmt.Sprintf("%.2f", faker.Price(0.01, 5000))).String()
}
