package services

import (
	"testing"

	"finledger/internal/models"
	"finledger/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, user.ID, "Groceries")

	svc.Log(user.ID, AuditCreateCategory, "category", cat.ID, "127.0.0.1", map[string]interface{}{"name": "Groceries"})

	var entries []models.AuditLog
	if err := db.Where("user_id = ?", user.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load audit logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Action != AuditCreateCategory || entry.ResourceID != cat.ID || entry.IPAddress != "127.0.0.1" {
		t.Errorf("unexpected audit entry: %+v", entry)
	}
	if entry.Changes != `{"name":"Groceries"}` {
		t.Errorf("unexpected changes: %s", entry.Changes)
	}
}

func TestAuditLogStoreFailureIsSwallowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	testutil.TeardownTestDB(t, db)

	// Must not panic even though the database is closed.
	svc.Log("user", AuditDeleteTransaction, "transaction", "tx", "127.0.0.1", nil)
}
