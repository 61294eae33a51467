package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

// maxCategoryNameLength matches the size of categories.name.
const maxCategoryNameLength = 255

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Field("name", "This field may not be blank.")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return "", apperrors.Field("name", "Ensure this field has no more than 255 characters.")
	}
	return name, nil
}

// checkNameAvailable fails when another category of the user already has name.
func (s *categoryService) checkNameAvailable(userID, name, exceptID string) error {
	q := s.db.Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategoryName
	}
	return nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID, name string) (*models.Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(userID, name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves a paginated list of categories for a user.
func (s *categoryService) GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	query := func() *gorm.DB {
		return s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	}

	result, err := pagination.Find[models.Category](query, page, "name ASC", "id ASC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetCategoryByID retrieves a category by ID for a specific user. A category
// owned by someone else is reported as not found.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory renames a category. A nil name leaves it unchanged.
func (s *categoryService) UpdateCategory(userID, categoryID string, name *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return category, nil
	}

	newName, err := validateCategoryName(*name)
	if err != nil {
		return nil, err
	}
	if newName == category.Name {
		return category, nil
	}
	if err := s.checkNameAvailable(userID, newName, category.ID); err != nil {
		return nil, err
	}

	category.Name = newName
	if err := s.db.Model(category).Updates(map[string]interface{}{"name": newName}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// DeleteCategory deletes a category together with every transaction filed under it.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
