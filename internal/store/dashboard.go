package store

import (
	"context"
	"fmt"

	"kitchenos/internal/costing"
	"kitchenos/models"
)

// dashboardSample caps how many recent recipes feed the average cost figure.
const dashboardSample = 100

// DashboardStats counts outlets, recipes and ingredients and averages the cost
// per yield unit over the most recent recipes.
func (s *Gorm) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	db, err := s.conn(ctx)
	if err != nil {
		return stats, err
	}
	if err := db.Model(&models.Outlet{}).Count(&stats.Outlets).Error; err != nil {
		return stats, fmt.Errorf("count outlets: %w", err)
	}
	if err := db.Model(&models.Recipe{}).Count(&stats.Recipes).Error; err != nil {
		return stats, fmt.Errorf("count recipes: %w", err)
	}
	if err := db.Model(&models.Ingredient{}).Count(&stats.Ingredients).Error; err != nil {
		return stats, fmt.Errorf("count ingredients: %w", err)
	}

	var recipes []models.Recipe
	err = db.Preload("Ingredients.Ingredient").
		Order("created_at desc").
		Limit(dashboardSample).
		Find(&recipes).Error
	if err != nil {
		return stats, fmt.Errorf("load recipes: %w", err)
	}
	breakdowns := make([]costing.Breakdown, 0, len(recipes))
	for _, recipe := range recipes {
		breakdowns = append(breakdowns, costing.ForRecipe(recipe))
	}
	stats.AverageCostPerUnit = costing.Summarize(breakdowns).AverageCostPerUnit
	return stats, nil
}
