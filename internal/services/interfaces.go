package services

import (
	"finledger/internal/analytics"
	"finledger/internal/filter"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
// Every method is scoped to the owner passed as userID.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, name *string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionInput holds the fields of a new transaction.
type TransactionInput struct {
	CategoryID string
	Amount     money.Amount
	Date       models.Date
	Type       models.TransactionType
}

// TransactionPatch holds the fields to change on an existing transaction.
// Nil fields are left as they are.
type TransactionPatch struct {
	CategoryID *string
	Amount     *money.Amount
	Date       *models.Date
	Type       *models.TransactionType
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, params filter.TransactionParams) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListForExport(userID string) ([]models.Transaction, error)
}

// AnalyticsServicer defines the contract for the per-user summary.
type AnalyticsServicer interface {
	GetSummary(userID string) (*analytics.Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
