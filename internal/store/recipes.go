package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kitchenos/models"
)

// recipeNumberAttempts bounds the retries after a generated recipe number
// collides with a concurrent insert.
const recipeNumberAttempts = 3

const defaultLineUnit = "kg"

var (
	nowFunc = time.Now

	errRecipeNumberTaken = fmt.Errorf("recipe number taken: %w", ErrDuplicate)
)

func orderedLines(tx *gorm.DB) *gorm.DB {
	return tx.Order("sort_order asc")
}

func recipeQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Recipe{}).
		Preload("Outlet").
		Preload("Category").
		Preload("Ingredients", orderedLines).
		Preload("Ingredients.Ingredient")
}

// ListRecipes returns recipes matching filter, newest first, with outlet,
// category and ordered lines preloaded.
func (s *Gorm) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	query := recipeQuery(db)
	if filter.OutletID != "" {
		query = query.Where("outlet_id = ?", filter.OutletID)
	}
	switch {
	case filter.Uncategorized:
		query = query.Where("category_id IS NULL")
	case filter.CategoryID != "":
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		outlets := db.Model(&models.Outlet{}).Select("id").Where("lower(name) LIKE ?", pattern)
		query = query.Where("lower(name) LIKE ? OR lower(recipe_no) LIKE ? OR outlet_id IN (?)", pattern, pattern, outlets)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at desc, recipe_no desc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe loads one recipe with its relations.
func (s *Gorm) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var recipe models.Recipe
	if err := recipeQuery(db).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// NextRecipeNumber previews the number the next created recipe would receive.
func (s *Gorm) NextRecipeNumber(ctx context.Context, now time.Time) (string, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return "", err
	}
	return nextStoredRecipeNumber(db, now)
}

// SaveRecipe creates or updates a recipe and replaces its lines in a single
// transaction. Lines naming an unknown ingredient add it to the library.
func (s *Gorm) SaveRecipe(ctx context.Context, draft RecipeDraft) (*models.Recipe, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var id string
	for attempt := 1; ; attempt++ {
		id, err = saveRecipe(db, draft)
		if err == nil {
			break
		}
		if errors.Is(err, errRecipeNumberTaken) && attempt < recipeNumberAttempts {
			continue
		}
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

func saveRecipe(db *gorm.DB, draft RecipeDraft) (string, error) {
	recipe := draft.Recipe
	recipe.Outlet, recipe.Category, recipe.Ingredients = nil, nil, nil
	if recipe.Status == "" {
		recipe.Status = models.RecipeActive
	}
	if !recipe.WastePercentage.Valid {
		recipe.WastePercentage.Decimal = models.DefaultWastePercentage
		recipe.WastePercentage.Valid = true
	}
	if recipe.CategoryID != nil && *recipe.CategoryID == "" {
		recipe.CategoryID = nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		updating := recipe.ID != ""
		if updating {
			var existing models.Recipe
			if err := tx.First(&existing, "id = ?", recipe.ID).Error; err != nil {
				return translate(err)
			}
			if recipe.OutletID == "" {
				recipe.OutletID = existing.OutletID
			}
			if recipe.RecipeNo == "" {
				recipe.RecipeNo = existing.RecipeNo
			}
			recipe.CreatedAt = existing.CreatedAt
		}

		if err := checkRecipeReferences(tx, recipe); err != nil {
			return err
		}

		generated := false
		if recipe.RecipeNo == "" {
			now := nowFunc()
			number, err := nextStoredRecipeNumber(tx, now)
			if err != nil {
				return err
			}
			recipe.RecipeNo = number
			generated = true
		}

		var err error
		if updating {
			err = tx.Omit(clause.Associations).Save(&recipe).Error
		} else {
			err = tx.Omit(clause.Associations).Create(&recipe).Error
		}
		if err != nil {
			if generated && errors.Is(err, gorm.ErrDuplicatedKey) {
				return errRecipeNumberTaken
			}
			return fmt.Errorf("save recipe: %w", translate(err))
		}

		return replaceLines(tx, recipe.ID, draft.Lines)
	})
	if err != nil {
		return "", err
	}
	return recipe.ID, nil
}

func checkRecipeReferences(tx *gorm.DB, recipe models.Recipe) error {
	var count int64
	if err := tx.Model(&models.Outlet{}).Where("id = ?", recipe.OutletID).Count(&count).Error; err != nil {
		return fmt.Errorf("check outlet: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("outlet %q: %w", recipe.OutletID, ErrInvalidReference)
	}
	if recipe.CategoryID == nil {
		return nil
	}
	if err := tx.Model(&models.Category{}).Where("id = ? AND outlet_id = ?", *recipe.CategoryID, recipe.OutletID).Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("category %q: %w", *recipe.CategoryID, ErrInvalidReference)
	}
	return nil
}

func replaceLines(tx *gorm.DB, recipeID string, drafts []LineDraft) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	if len(drafts) == 0 {
		return nil
	}

	created := make(map[string]string)
	lines := make([]models.RecipeIngredient, 0, len(drafts))
	for i, draft := range drafts {
		ingredientID, err := resolveIngredient(tx, draft, created)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Quantity:     draft.Quantity,
			Unit:         draft.Unit,
			PrepDetail:   draft.PrepDetail,
			SortOrder:    i,
		})
	}
	if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
		return fmt.Errorf("insert recipe lines: %w", translate(err))
	}
	return nil
}

// resolveIngredient returns the library id for a line. created caches
// ingredients added during the current save, keyed by lower-cased name.
func resolveIngredient(tx *gorm.DB, draft LineDraft, created map[string]string) (string, error) {
	if draft.IngredientID != "" {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", draft.IngredientID).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check ingredient: %w", err)
		}
		if count == 0 {
			return "", fmt.Errorf("ingredient %q: %w", draft.IngredientID, ErrInvalidReference)
		}
		return draft.IngredientID, nil
	}

	name := strings.TrimSpace(draft.IngredientName)
	if name == "" {
		return "", fmt.Errorf("ingredient without id or name: %w", ErrInvalidReference)
	}
	key := strings.ToLower(name)
	if id, ok := created[key]; ok {
		return id, nil
	}
	existing, err := findIngredientByName(tx, name)
	if err != nil {
		return "", fmt.Errorf("find ingredient %q: %w", name, err)
	}
	if existing != nil {
		created[key] = existing.ID
		return existing.ID, nil
	}

	unit := draft.Unit
	if unit == "" {
		unit = defaultLineUnit
	}
	ingredient := models.Ingredient{Name: name, BaseUnit: unit, CostPerUnit: draft.CostPerUnit}
	if err := tx.Create(&ingredient).Error; err != nil {
		return "", fmt.Errorf("create ingredient %q: %w", name, translate(err))
	}
	created[key] = ingredient.ID
	return ingredient.ID, nil
}

// DeleteRecipe removes a recipe and its lines in one transaction.
func (s *Gorm) DeleteRecipe(ctx context.Context, id string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete recipe lines: %w", err)
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
