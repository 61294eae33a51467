package services

import (
	"gorm.io/gorm"

	"finledger/internal/analytics"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// analyticsService builds the per-user income/expense summary.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// GetSummary summarizes every transaction the user owns. List filters do not apply.
func (s *analyticsService) GetSummary(userID string) (*analytics.Summary, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Category").Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := analytics.Summarize(transactions)
	return &summary, nil
}
