package services

import (
	"testing"
	"time"

	"finledger/internal/models"
	"finledger/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnalyticsService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	groceries := testutil.CreateTestCategory(t, db, alice.ID, "Groceries")
	salary := testutil.CreateTestCategory(t, db, alice.ID, "Salary")
	bobCat := testutil.CreateTestCategory(t, db, bob.ID, "Groceries")

	testutil.CreateTestTransaction(t, db, alice.ID, groceries.ID, "50", models.NewDate(2024, time.January, 5), models.TransactionTypeExpense)
	testutil.CreateTestTransaction(t, db, alice.ID, salary.ID, "2000", models.NewDate(2024, time.January, 10), models.TransactionTypeIncome)
	testutil.CreateTestTransaction(t, db, bob.ID, bobCat.ID, "999", models.NewDate(2024, time.January, 7), models.TransactionTypeExpense)

	summary, err := svc.GetSummary(alice.ID)
	testutil.AssertNoError(t, err)

	if summary.TotalIncome.String() != "2000.00" {
		t.Errorf("expected total income 2000.00, got %s", summary.TotalIncome)
	}
	if summary.TotalExpense.String() != "50.00" {
		t.Errorf("expected total expense 50.00, got %s", summary.TotalExpense)
	}
	if len(summary.CategorySummary) != 2 {
		t.Fatalf("expected 2 category totals, got %+v", summary.CategorySummary)
	}
	if summary.CategorySummary[0].CategoryName != "Groceries" || summary.CategorySummary[0].Total.String() != "50.00" {
		t.Errorf("unexpected first category total: %+v", summary.CategorySummary[0])
	}
	if summary.CategorySummary[1].CategoryName != "Salary" || summary.CategorySummary[1].Total.String() != "2000.00" {
		t.Errorf("unexpected second category total: %+v", summary.CategorySummary[1])
	}
}

func TestGetSummaryEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnalyticsService(db)
	user := testutil.CreateTestUser(t, db)

	summary, err := svc.GetSummary(user.ID)
	testutil.AssertNoError(t, err)

	if summary.TotalIncome.String() != "0.00" || summary.TotalExpense.String() != "0.00" {
		t.Errorf("expected zero totals, got %s / %s", summary.TotalIncome, summary.TotalExpense)
	}
	if summary.CategorySummary == nil || len(summary.CategorySummary) != 0 {
		t.Errorf("expected empty category summary, got %v", summary.CategorySummary)
	}
}
