package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kitchenos/models"
)

type outletCount struct {
	OutletID string
	Total    int64
}

// ListOutlets returns every outlet, newest first, with recipe and category counts.
func (s *Gorm) ListOutlets(ctx context.Context) ([]OutletSummary, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var outlets []models.Outlet
	if err := db.Order("created_at desc").Find(&outlets).Error; err != nil {
		return nil, fmt.Errorf("list outlets: %w", err)
	}

	recipes, err := countByOutlet(db, &models.Recipe{})
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	categories, err := countByOutlet(db, &models.Category{})
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	summaries := make([]OutletSummary, 0, len(outlets))
	for _, outlet := range outlets {
		summaries = append(summaries, OutletSummary{
			Outlet:        outlet,
			RecipeCount:   recipes[outlet.ID],
			CategoryCount: categories[outlet.ID],
		})
	}
	return summaries, nil
}

func countByOutlet(db *gorm.DB, model any) (map[string]int64, error) {
	var rows []outletCount
	if err := db.Model(model).Select("outlet_id, count(*) as total").Group("outlet_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.OutletID] = row.Total
	}
	return counts, nil
}

// GetOutlet loads one outlet.
func (s *Gorm) GetOutlet(ctx context.Context, id string) (*models.Outlet, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var outlet models.Outlet
	if err := db.First(&outlet, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &outlet, nil
}

// CreateOutlet inserts an outlet. A blank status becomes active.
func (s *Gorm) CreateOutlet(ctx context.Context, outlet *models.Outlet) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if outlet.Status == "" {
		outlet.Status = models.OutletActive
	}
	if err := db.Omit("Categories", "Recipes").Create(outlet).Error; err != nil {
		return fmt.Errorf("create outlet: %w", translate(err))
	}
	return nil
}

// UpdateOutlet overwrites the editable columns of an outlet.
func (s *Gorm) UpdateOutlet(ctx context.Context, id string, outlet models.Outlet) (*models.Outlet, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.GetOutlet(ctx, id)
	if err != nil {
		return nil, err
	}
	if outlet.Status == "" {
		outlet.Status = models.OutletActive
	}
	err = db.Model(existing).
		Select("name", "type", "location", "status", "updated_at").
		Updates(models.Outlet{Name: outlet.Name, Type: outlet.Type, Location: outlet.Location, Status: outlet.Status}).Error
	if err != nil {
		return nil, fmt.Errorf("update outlet: %w", translate(err))
	}
	return s.GetOutlet(ctx, id)
}

// DeleteOutlet removes an outlet together with its categories, recipes and
// recipe lines.
func (s *Gorm) DeleteOutlet(ctx context.Context, id string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Outlet{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete outlet: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		recipeIDs := tx.Model(&models.Recipe{}).Select("id").Where("outlet_id = ?", id)
		if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete outlet recipe lines: %w", err)
		}
		if err := tx.Where("outlet_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return fmt.Errorf("delete outlet recipes: %w", err)
		}
		if err := tx.Where("outlet_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("delete outlet categories: %w", err)
		}
		return nil
	})
}
