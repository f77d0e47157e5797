package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kitchenos/models"
)

// ListCategories returns the categories of an outlet in display order.
func (s *Gorm) ListCategories(ctx context.Context, outletID string) ([]models.Category, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := db.Where("outlet_id = ?", outletID).Order("sort_order asc, name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory loads one category.
func (s *Gorm) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// CreateCategory inserts a category. Without an explicit sortOrder the
// category is appended after the outlet's existing ones.
func (s *Gorm) CreateCategory(ctx context.Context, category *models.Category, sortOrder *int) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var outlets int64
		if err := tx.Model(&models.Outlet{}).Where("id = ?", category.OutletID).Count(&outlets).Error; err != nil {
			return fmt.Errorf("check outlet: %w", err)
		}
		if outlets == 0 {
			return fmt.Errorf("outlet %s: %w", category.OutletID, ErrInvalidReference)
		}

		if sortOrder != nil {
			category.SortOrder = *sortOrder
		} else {
			var existing int64
			if err := tx.Model(&models.Category{}).Where("outlet_id = ?", category.OutletID).Count(&existing).Error; err != nil {
				return fmt.Errorf("count categories: %w", err)
			}
			category.SortOrder = int(existing)
		}
		if err := tx.Omit("Outlet").Create(category).Error; err != nil {
			return fmt.Errorf("create category: %w", translate(err))
		}
		return nil
	})
}

// UpdateCategory renames a category and optionally moves it.
func (s *Gorm) UpdateCategory(ctx context.Context, id, name string, sortOrder *int) (*models.Category, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if sortOrder != nil {
		category.SortOrder = *sortOrder
	}
	if err := db.Model(category).Select("name", "sort_order", "updated_at").Updates(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", translate(err))
	}
	return category, nil
}

// ReorderCategories assigns sort_order by position in orderedIDs. Every id
// must belong to the outlet.
func (s *Gorm) ReorderCategories(ctx context.Context, outletID string, orderedIDs []string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&models.Category{}).
				Where("id = ? AND outlet_id = ?", id, outletID).
				Update("sort_order", i)
			if result.Error != nil {
				return fmt.Errorf("reorder category %s: %w", id, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("category %s: %w", id, ErrInvalidReference)
			}
		}
		return nil
	})
}

// DeleteCategory detaches the category's recipes (they become uncategorized)
// and deletes the category in one transaction.
func (s *Gorm) DeleteCategory(ctx context.Context, id string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach recipes: %w", err)
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
