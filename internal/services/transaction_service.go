package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/filter"
	"finledger/internal/models"
	"finledger/internal/money"
	"finledger/internal/pagination"
	"finledger/internal/uuid"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// checkCategory verifies that categoryID names a category owned by userID.
// A foreign category is indistinguishable from a missing one.
func (s *transactionService) checkCategory(userID, categoryID string) error {
	if !uuid.IsValid(categoryID) {
		return apperrors.Field("category", "Invalid category id.")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.Field("category", "Category does not exist.")
	}
	return nil
}

func validateTransactionFields(amount money.Amount, txType models.TransactionType, date models.Date) error {
	fields := make(map[string]string)
	if amount.IsNegative() {
		fields["amount"] = "Ensure this value is greater than or equal to 0."
	}
	if !txType.Valid() {
		fields["type"] = "Must be income or expense."
	}
	if date.IsZero() {
		fields["date"] = "This field is required."
	}
	if len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	return nil
}

// CreateTransaction records a new transaction for the user.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := validateTransactionFields(in.Amount, in.Type, in.Date); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, in.CategoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     userID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Date:       in.Date,
		Type:       in.Type,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions retrieves a filtered, paginated list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, params filter.TransactionParams) (*pagination.PageResponse[models.Transaction], error) {
	query := func() *gorm.DB {
		return s.db.Model(&models.Transaction{}).
			Where("transactions.user_id = ?", userID).
			Scopes(params.Scope())
	}

	result, err := pagination.Find[models.Transaction](query, page,
		"transactions.date DESC", "transactions.created_at DESC", "transactions.id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies patch to one of the user's transactions.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		transaction.Amount = *patch.Amount
	}
	if patch.Date != nil {
		transaction.Date = *patch.Date
	}
	if patch.Type != nil {
		transaction.Type = *patch.Type
	}
	if err := validateTransactionFields(transaction.Amount, transaction.Type, transaction.Date); err != nil {
		return nil, err
	}
	if patch.CategoryID != nil && *patch.CategoryID != transaction.CategoryID {
		if err := s.checkCategory(userID, *patch.CategoryID); err != nil {
			return nil, err
		}
		transaction.CategoryID = *patch.CategoryID
	}

	if err := s.db.Model(transaction).
		Select("category_id", "amount", "date", "type").
		Updates(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListForExport returns all of the user's transactions with their category,
// oldest first. Transactions on the same day keep their creation order.
func (s *transactionService) ListForExport(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
