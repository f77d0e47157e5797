package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kitchenos/models"
)

const defaultSuggestLimit = 10

// ListIngredients returns the library ordered by name.
func (s *Gorm) ListIngredients(ctx context.Context, filter IngredientFilter) ([]models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := db.Model(&models.Ingredient{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		query = query.Where("lower(name) LIKE ? OR lower(ingredient_no) LIKE ? OR lower(category) LIKE ?", pattern, pattern, pattern)
	}
	var ingredients []models.Ingredient
	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// SuggestIngredients returns up to limit ingredients whose name contains query,
// names starting with query first.
func (s *Gorm) SuggestIngredients(ctx context.Context, query string, limit int) ([]models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Ingredient{}, nil
	}
	var ingredients []models.Ingredient
	err = db.Where("lower(name) LIKE ?", "%"+query+"%").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN lower(name) LIKE ? THEN 0 ELSE 1 END, name asc",
			Vars:               []any{query + "%"},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&ingredients).Error
	if err != nil {
		return nil, fmt.Errorf("suggest ingredients: %w", err)
	}
	return ingredients, nil
}

// GetIngredient loads one ingredient.
func (s *Gorm) GetIngredient(ctx context.Context, id string) (*models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ingredient models.Ingredient
	if err := db.First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

// CreateIngredient inserts an ingredient.
func (s *Gorm) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", translate(err))
	}
	return nil
}

// UpdateIngredient overwrites the editable columns of an ingredient.
func (s *Gorm) UpdateIngredient(ctx context.Context, id string, ingredient models.Ingredient) (*models.Ingredient, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	err = db.Model(existing).
		Select("name", "ingredient_no", "category", "supplier", "base_unit", "cost_per_unit", "updated_at").
		Updates(models.Ingredient{
			Name:         ingredient.Name,
			IngredientNo: ingredient.IngredientNo,
			Category:     ingredient.Category,
			Supplier:     ingredient.Supplier,
			BaseUnit:     ingredient.BaseUnit,
			CostPerUnit:  ingredient.CostPerUnit,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update ingredient: %w", translate(err))
	}
	return s.GetIngredient(ctx, id)
}

// UpsertIngredient matches an existing ingredient by ingredient number, then
// by case-insensitive name, and updates it; otherwise it inserts. The boolean
// reports whether a new row was created.
func (s *Gorm) UpsertIngredient(ctx context.Context, ingredient *models.Ingredient) (bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}
	created := false
	err = db.Transaction(func(tx *gorm.DB) error {
		existing, err := matchIngredient(tx, ingredient)
		if err != nil {
			return err
		}
		if existing == nil {
			created = true
			return translate(tx.Create(ingredient).Error)
		}

		existing.Name = ingredient.Name
		existing.BaseUnit = ingredient.BaseUnit
		existing.CostPerUnit = ingredient.CostPerUnit
		if ingredient.IngredientNo != "" {
			existing.IngredientNo = ingredient.IngredientNo
		}
		if ingredient.Category != "" {
			existing.Category = ingredient.Category
		}
		if ingredient.Supplier != "" {
			existing.Supplier = ingredient.Supplier
		}
		if err := tx.Save(existing).Error; err != nil {
			return translate(err)
		}
		*ingredient = *existing
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("upsert ingredient %q: %w", ingredient.Name, err)
	}
	return created, nil
}

func matchIngredient(tx *gorm.DB, ingredient *models.Ingredient) (*models.Ingredient, error) {
	var existing models.Ingredient
	if ingredient.IngredientNo != "" {
		err := tx.Where("ingredient_no = ?", ingredient.IngredientNo).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	found, err := findIngredientByName(tx, ingredient.Name)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func findIngredientByName(tx *gorm.DB, name string) (*models.Ingredient, error) {
	var existing models.Ingredient
	err := tx.Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).Order("created_at asc").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteIngredient removes an ingredient that no recipe line references.
func (s *Gorm) DeleteIngredient(ctx context.Context, id string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var uses int64
		if err := tx.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&uses).Error; err != nil {
			return fmt.Errorf("count ingredient uses: %w", err)
		}
		if uses > 0 {
			return fmt.Errorf("ingredient used by %d recipe lines: %w", uses, ErrInUse)
		}
		result := tx.Delete(&models.Ingredient{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete ingredient: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
